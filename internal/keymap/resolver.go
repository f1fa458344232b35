package keymap

import (
	"slices"
	"strings"
)

// Resolver maps pressed keys to actions and actions back to their keys.
type Resolver struct {
	actions map[string]Action
	keys    map[Action][]string
}

// NewResolver indexes bindings. A key bound twice resolves to its last
// binding; keys shared by several contexts are listed once per action.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions: make(map[string]Action),
		keys:    make(map[Action][]string),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if !slices.Contains(r.keys[b.Action], key) {
				r.keys[b.Action] = append(r.keys[b.Action], key)
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "" when there is none.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys bound to action in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	return r.keys[action]
}

// Hint is an action shown in a key hint line.
type Hint struct {
	Action Action
	Label  string
}

// Hints renders "key label" pairs separated by sep, using the first key of
// each action. Unbound actions are left out.
func (r *Resolver) Hints(sep string, hints ...Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		keys := r.keys[h.Action]
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+h.Label)
	}
	return strings.Join(parts, sep)
}
