//go:build linux

package notify

import (
	"html"
	"slices"

	"github.com/godbus/dbus/v5"
)

const (
	busName = "org.freedesktop.Notifications"
	busPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	appName = "Tilawa"
)

// caller is the part of dbus.BusObject the notifier needs.
type caller interface {
	Call(method string, flags dbus.Flags, args ...any) *dbus.Call
}

// Server sends notifications to the session's notification daemon.
type Server struct {
	obj    caller
	markup bool // daemon parses body markup, so text must be escaped
}

// New connects to the notification daemon over the session bus. Without a
// bus it returns Discard, so notifications are simply not shown.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return Discard{}, nil //nolint:nilerr // notifications are optional
	}
	return newServer(conn.Object(busName, busPath)), nil
}

func newServer(obj caller) *Server {
	s := &Server{obj: obj}
	var caps []string
	if err := obj.Call(busName+".GetCapabilities", 0).Store(&caps); err == nil {
		s.markup = slices.Contains(caps, "body-markup")
	}
	return s
}

// Notify shows n and returns the id the daemon assigned to it.
func (s *Server) Notify(n Notification) (uint32, error) {
	body := n.Body
	if s.markup {
		body = html.EscapeString(body)
	}
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant("tilawa"),
		"category":      dbus.MakeVariant("x-tilawa.recitation"),
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := s.obj.Call(busName+".Notify", 0,
		appName, n.ReplacesID, n.Icon, n.Title, body, []string{}, hints, n.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Close removes the notification with the given id.
func (s *Server) Close(id uint32) error {
	return s.obj.Call(busName+".CloseNotification", 0, id).Err
}
