//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
		{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
		{ActionPrevChapter, []string{"k"}, "Previous chapter", "reader"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		name     string
		key      string
		contexts []string
		expected Action
	}{
		{"global without contexts", "q", nil, ActionQuit},
		{"global alias", "ctrl+c", []string{"list"}, ActionQuit},
		{"playback", " ", []string{"list", "playback"}, ActionPlayPause},
		{"playback not in scope", " ", []string{"list"}, ""},
		{"list key", "k", []string{"list"}, ActionMoveUp},
		{"same key in reader", "k", []string{"reader"}, ActionPrevChapter},
		{"first context wins", "k", []string{"reader", "list"}, ActionPrevChapter},
		{"list key outside list", "j", []string{"reader"}, ""},
		{"unknown", "unknown", []string{"list"}, ""},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Resolve(tt.key, tt.contexts...)
			if result != tt.expected {
				t.Errorf("Resolve(%q, %v) = %q, want %q", tt.key, tt.contexts, result, tt.expected)
			}
		})
	}
}

func TestResolver_KeysFor(t *testing.T) {
	bindings := []Binding{
		{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
		{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
		{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
		{ActionMoveDown, []string{"j"}, "Scroll down", "reader"},
	}

	r := NewResolver(bindings)

	tests := []struct {
		action   Action
		expected []string
	}{
		{ActionQuit, []string{"q", "ctrl+c"}},
		{ActionPlayPause, []string{" "}},
		{ActionMoveDown, []string{"j", "down"}},
		{Action("unknown"), nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			result := r.KeysFor(tt.action)
			if tt.expected == nil {
				if result != nil {
					t.Errorf("KeysFor(%q) = %v, want nil", tt.action, result)
				}
				return
			}
			if !slices.Equal(result, tt.expected) {
				t.Errorf("KeysFor(%q) = %v, want %v", tt.action, result, tt.expected)
			}
		})
	}
}

func TestResolver_Hint(t *testing.T) {
	r := NewResolver(Bindings)

	tests := []struct {
		action   Action
		expected string
	}{
		{ActionHelp, "?"},
		{ActionQuit, "q"},
		{ActionPlayPause, "space"},
		{Action("unknown"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := r.Hint(tt.action); got != tt.expected {
				t.Errorf("Hint(%q) = %q, want %q", tt.action, got, tt.expected)
			}
		})
	}
}

func TestResolver_WithGlobalBindings(t *testing.T) {
	r := NewResolver(Bindings)

	if action := r.Resolve("q", "list", "playback"); action != ActionQuit {
		t.Errorf("Resolve('q') = %q, want %q", action, ActionQuit)
	}
	if action := r.Resolve("[", "reader", "playback"); action != ActionPrevChapter {
		t.Errorf("Resolve('[') in reader = %q, want %q", action, ActionPrevChapter)
	}
	if action := r.Resolve("[", "list", "playback"); action != "" {
		t.Errorf("Resolve('[') in list = %q, want unbound", action)
	}
	if action := r.Resolve("c", "list", "playback"); action != ActionContinueReading {
		t.Errorf("Resolve('c') in list = %q, want %q", action, ActionContinueReading)
	}
	if action := r.Resolve(" ", "list", "playback"); action != ActionPlayPause {
		t.Errorf("Resolve(' ') = %q, want %q", action, ActionPlayPause)
	}
}

func TestDisplayKey(t *testing.T) {
	if got := DisplayKey(" "); got != "space" {
		t.Errorf("DisplayKey(' ') = %q, want space", got)
	}
	if got := DisplayKey("ctrl+c"); got != "ctrl+c" {
		t.Errorf("DisplayKey(ctrl+c) = %q", got)
	}
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no duplicates", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"with duplicates", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"all duplicates", []string{"a", "a", "a"}, []string{"a"}},
		{"empty slice", []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := dedupe(tt.input); !slices.Equal(result, tt.expected) {
				t.Errorf("dedupe(%v) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver([]Binding{})

	if action := r.Resolve("q", "list"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor on empty resolver should return nil, got %v", keys)
	}
}
