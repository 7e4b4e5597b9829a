//go:build !unix

package stderr

import "log/slog"

// Start is a no-op where audio libraries do not write to fd 2.
func Start(_ *slog.Logger) error {
	return nil
}

// Stop is a no-op.
func Stop() {}
