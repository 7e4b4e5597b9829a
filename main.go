package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tilawa/internal/app"
	"github.com/llehouerou/tilawa/internal/config"
	"github.com/llehouerou/tilawa/internal/icons"
	"github.com/llehouerou/tilawa/internal/logger"
	"github.com/llehouerou/tilawa/internal/mpris"
	"github.com/llehouerou/tilawa/internal/notify"
	"github.com/llehouerou/tilawa/internal/player"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/state"
	"github.com/llehouerou/tilawa/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	icons.Init(cfg.Icons)

	logFile, err := logger.OpenFile(cfg.GetLogFile())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := logger.New(logger.Config{
		Writer: logFile,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	})
	slog.SetDefault(log)

	// The audio backend writes to fd 2, which would corrupt the TUI.
	if err := stderr.Start(log.With("component", "stderr")); err != nil {
		log.Warn("redirect stderr", "err", err)
	}
	defer stderr.Stop()

	store, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer store.Close()

	cacheDir := cfg.GetCacheDir()
	client := quran.NewClient(cfg.GetAPIBaseURL(), quran.WithRateLimit(cfg.GetRequestsPerSecond(), 2))
	source := quran.NewSource(client, filepath.Join(cacheDir, "chapters"), log.With("component", "quran"))

	cache := player.NewCache(filepath.Join(cacheDir, "audio"), log.With("component", "cache"))
	p := player.New(cache, log.With("component", "player"))
	defer p.Close()

	notifier, err := notify.New()
	if err != nil {
		log.Warn("desktop notifications unavailable", "err", err)
	}

	// MPRIS requests arrive before the program exists; they are dropped
	// until it does.
	var program atomic.Pointer[tea.Program]
	var publisher app.Publisher
	adapter, err := mpris.New(func(r mpris.Request) {
		if prog := program.Load(); prog != nil {
			prog.Send(app.MPRISMsg(r))
		}
	})
	if err != nil {
		log.Warn("mpris unavailable", "err", err)
	} else {
		defer adapter.Close()
		publisher = adapter
	}

	m := app.New(app.Deps{
		Config:   cfg,
		Source:   source,
		State:    store,
		Player:   p,
		Exporter: cache,
		Notifier: notifier,
		MPRIS:    publisher,
		Log:      log,
	})

	prog := tea.NewProgram(m, tea.WithAltScreen())
	program.Store(prog)

	final, err := prog.Run()
	program.Store(nil)
	if fm, ok := final.(app.Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	log.Info("exiting")
	return nil
}
