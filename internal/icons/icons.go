package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play     string
	Pause    string
	Loading  string
	Volume   string
	Muted    string
	Repeat   string
	Chapter  string
	Reciter  string
	Download string
	Bookmark string
}

var (
	nerdIcons = Icons{
		Play:     "\uf04b",     // nf-fa-play
		Pause:    "\uf04c",     // nf-fa-pause
		Loading:  "\uf110",     // nf-fa-spinner
		Volume:   "\uf028",     // nf-fa-volume_up
		Muted:    "\uf026",     // nf-fa-volume_off
		Repeat:   "\U000f0456", // nf-md-repeat
		Chapter:  "\uf02d ",    // nf-fa-book
		Reciter:  "\uf130 ",    // nf-fa-microphone
		Download: "\uf019",     // nf-fa-download
		Bookmark: "\uf02e ",    // nf-fa-bookmark
	}

	unicodeIcons = Icons{
		Play:     "▶",
		Pause:    "⏸",
		Loading:  "⋯",
		Volume:   "🔊",
		Muted:    "🔇",
		Repeat:   "🔁",
		Chapter:  "📖 ",
		Reciter:  "🎙 ",
		Download: "⬇",
		Bookmark: "🔖 ",
	}

	noneIcons = Icons{
		Play:     ">",
		Pause:    "||",
		Loading:  "...",
		Volume:   "vol",
		Muted:    "mute",
		Repeat:   "[R]",
		Chapter:  "",
		Reciter:  "",
		Download: "[D]",
		Bookmark: "",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	case StyleNone:
		current = noneIcons
	default:
		current = noneIcons
	}
}

// Play returns the play icon.
func Play() string {
	return current.Play
}

// Pause returns the pause icon.
func Pause() string {
	return current.Pause
}

// Loading returns the icon shown while a recitation buffers.
func Loading() string {
	return current.Loading
}

// Volume returns the volume icon for the given mute state.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}

// Repeat returns the repeat icon.
func Repeat() string {
	return current.Repeat
}

// Download returns the download icon.
func Download() string {
	return current.Download
}

// FormatChapter formats a chapter name with the appropriate icon.
func FormatChapter(name string) string {
	return current.Chapter + name
}

// FormatReciter formats a reciter name with the appropriate icon.
func FormatReciter(name string) string {
	return current.Reciter + name
}

// FormatBookmark formats the continue-reading label with the appropriate icon.
func FormatBookmark(label string) string {
	return current.Bookmark + label
}
