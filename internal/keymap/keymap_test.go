//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"testing"
)

func TestByContext(t *testing.T) {
	tests := []struct {
		name            string
		context         string
		expectNonEmpty  bool
		expectMinLength int
	}{
		{"global context", "global", true, 3},
		{"list context", "list", true, 5},
		{"reader context", "reader", true, 5},
		{"playback context", "playback", true, 5},
		{"unknown context returns empty", "unknown", false, 0},
		{"empty context returns empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByContext(tt.context)

			if tt.expectNonEmpty && len(result) == 0 {
				t.Errorf("ByContext(%q) returned empty, expected non-empty", tt.context)
			}

			if !tt.expectNonEmpty && len(result) != 0 {
				t.Errorf("ByContext(%q) returned %d items, expected empty", tt.context, len(result))
			}

			if len(result) < tt.expectMinLength {
				t.Errorf("ByContext(%q) returned %d items, expected at least %d", tt.context, len(result), tt.expectMinLength)
			}

			for _, binding := range result {
				if binding.Context != tt.context {
					t.Errorf("binding context = %q, want %q", binding.Context, tt.context)
				}
			}
		})
	}
}

func TestByContextPlaybackBindings(t *testing.T) {
	playbackBindings := ByContext("playback")

	expectedActions := []Action{
		ActionPlayPause,
		ActionSeekForward,
		ActionSeekBack,
		ActionToggleMute,
		ActionToggleRepeat,
		ActionNextReciter,
	}

	for _, action := range expectedActions {
		found := false
		for _, b := range playbackBindings {
			if b.Action == action {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected action %q in playback bindings", action)
		}
	}
}

func TestBindingsHaveRequiredFields(t *testing.T) {
	for i, b := range Bindings {
		if b.Action == "" {
			t.Errorf("binding[%d] has empty Action", i)
		}
		if len(b.Keys) == 0 {
			t.Errorf("binding[%d] (%s) has no Keys", i, b.Action)
		}
		if b.Description == "" {
			t.Errorf("binding[%d] (%s) has empty Description", i, b.Action)
		}
		if b.Context == "" {
			t.Errorf("binding[%d] (%s) has empty Context", i, b.Action)
		}
	}
}

func TestBindingsHaveValidContexts(t *testing.T) {
	valid := make(map[string]bool)
	for _, c := range Contexts() {
		valid[c] = true
	}

	for i, b := range Bindings {
		if !valid[b.Context] {
			t.Errorf("binding[%d] (%s) has invalid context: %q", i, b.Action, b.Context)
		}
	}
}

// Within a context a key means one action, and view keys never shadow
// global or playback keys since views resolve before them.
func TestBindingsKeysAreUnambiguous(t *testing.T) {
	seen := make(map[string]map[string]Action)
	for _, b := range Bindings {
		if seen[b.Context] == nil {
			seen[b.Context] = make(map[string]Action)
		}
		for _, k := range b.Keys {
			if prev, ok := seen[b.Context][k]; ok && prev != b.Action {
				t.Errorf("key %q bound to both %q and %q in %s", k, prev, b.Action, b.Context)
			}
			seen[b.Context][k] = b.Action
		}
	}

	for _, view := range []string{"list", "reader"} {
		for k, a := range seen[view] {
			for _, shared := range []string{ContextGlobal, "playback"} {
				if prev, ok := seen[shared][k]; ok && prev != a {
					t.Errorf("%s key %q (%q) shadows %s action %q", view, k, a, shared, prev)
				}
			}
		}
	}
}

func TestSeekPercentKeys(t *testing.T) {
	r := NewResolver(Bindings)
	for _, k := range []string{"0", "5", "9"} {
		if got := r.Resolve(k, "reader", "playback"); got != ActionSeekPercent {
			t.Errorf("Resolve(%q) = %q, want %q", k, got, ActionSeekPercent)
		}
	}
}
