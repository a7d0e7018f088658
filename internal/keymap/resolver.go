package keymap

import "strings"

// Resolver looks up the action bound to a key or to a two-key sequence such
// as "g p". Sequences are bound as space-separated strings.
type Resolver struct {
	actions  map[string]Action
	prefixes map[string]bool
}

func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		actions:  make(map[string]Action),
		prefixes: make(map[string]bool),
	}
	for _, b := range bindings {
		for _, key := range b.Keys {
			r.actions[key] = b.Action
			if first, _, ok := strings.Cut(key, " "); ok && first != "" {
				r.prefixes[first] = true
			}
		}
	}
	return r
}

// Resolve returns the action bound to key, or "".
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// IsPrefix reports whether key opens a sequence.
func (r *Resolver) IsPrefix(key string) bool {
	return r.prefixes[key]
}

// ResolveSequence returns the action bound to prefix then key, or "".
func (r *Resolver) ResolveSequence(prefix, key string) Action {
	return r.actions[prefix+" "+key]
}

// Conflicts lists the keys bound to more than one action.
func Conflicts(bindings []Binding) []string {
	owner := make(map[string]Action)
	var dup []string
	for _, b := range bindings {
		for _, key := range b.Keys {
			if a, ok := owner[key]; ok && a != b.Action {
				dup = append(dup, key)
				continue
			}
			owner[key] = b.Action
		}
	}
	return dup
}
