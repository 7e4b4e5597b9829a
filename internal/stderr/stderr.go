//go:build unix

// Package stderr captures output that C audio libraries (ALSA through oto)
// write straight to file descriptor 2 and forwards it to the log, so it
// cannot tear the terminal UI.
package stderr

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

var (
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start redirects fd 2 to a pipe and logs every non-empty line at warn
// level. Must be called before the audio device is opened. On error the
// program can continue with the original stderr.
func Start(log *slog.Logger) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	// Save original stderr file descriptor
	origStderr, err = unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = unix.Close(origStderr)
		origStderr = -1
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go forward(r, log, done)
	return nil
}

func forward(r *os.File, log *slog.Logger, done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			log.Warn("native stderr", "line", line)
		}
	}
}

// Stop restores the original stderr and waits for captured lines to be
// logged.
func Stop() {
	if !started {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	// Closing the write end ends the forwarder once the pipe drains.
	pipeWrite.Close()
	<-done
	pipeRead.Close()
	started = false
}
