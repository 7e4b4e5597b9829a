//go:build !linux

package notify

// New returns Discard; desktop notifications need a freedesktop daemon.
func New() (Notifier, error) {
	return Discard{}, nil
}
