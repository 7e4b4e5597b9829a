// Package notify shows desktop notifications through the freedesktop
// notification daemon.
package notify

// Urgency is the freedesktop notification urgency level.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification is a single desktop notification.
type Notification struct {
	Title      string
	Body       string // plain text
	Icon       string // icon name or image path
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // id of a notification to update in place, 0 for a new one
	Urgency    Urgency
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its id, 0 when nothing was shown.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}

// Discard is a Notifier that shows nothing.
type Discard struct{}

func (Discard) Notify(Notification) (uint32, error) { return 0, nil }
func (Discard) Close(uint32) error                  { return nil }

// recitationTimeout is how long the "now reciting" notification stays up, in ms.
const recitationTimeout = 4000

// Recitation builds the notification shown when a recitation starts.
// replaces is the id of the previous one so only one stays on screen.
func Recitation(chapter, arabic, reciter string, replaces uint32) Notification {
	title := chapter
	if arabic != "" {
		title += " (" + arabic + ")"
	}
	return Notification{
		Title:      title,
		Body:       reciter,
		Icon:       "audio-x-generic",
		Timeout:    recitationTimeout,
		ReplacesID: replaces,
		Urgency:    UrgencyLow,
	}
}
