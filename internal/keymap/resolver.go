package keymap

// ContextGlobal bindings apply in every view.
const ContextGlobal = "global"

// Resolver maps key strings to actions, scoped by binding context.
type Resolver struct {
	byContext map[string]map[string]Action // context -> key -> action
	byAction  map[Action][]string          // action -> keys, in binding order
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		byContext: make(map[string]map[string]Action),
		byAction:  make(map[Action][]string),
	}
	for _, b := range bindings {
		keys := r.byContext[b.Context]
		if keys == nil {
			keys = make(map[string]Action)
			r.byContext[b.Context] = keys
		}
		for _, key := range b.Keys {
			keys[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action bound to key in the first matching context,
// falling back to global bindings. It returns "" if the key is unbound.
func (r *Resolver) Resolve(key string, contexts ...string) Action {
	for _, ctx := range contexts {
		if a, ok := r.byContext[ctx][key]; ok {
			return a
		}
	}
	return r.byContext[ContextGlobal][key]
}

// KeysFor returns the keys bound to an action across all contexts.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

// Hint returns the first key bound to action in display form, "" if unbound.
func (r *Resolver) Hint(action Action) string {
	keys := r.KeysFor(action)
	if len(keys) == 0 {
		return ""
	}
	return DisplayKey(keys[0])
}

// DisplayKey returns key the way the help view shows it.
func DisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
