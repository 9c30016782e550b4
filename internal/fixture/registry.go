package fixture

import "github.com/PaoloLupo/rcsection/internal/corpus"

type claim struct {
	identity string
	source   string
}

// Registry remembers which example claimed each fixture identity during a run.
type Registry struct {
	claims     map[string]claim
	identities map[string]struct{}
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		claims:     map[string]claim{},
		identities: map[string]struct{}{},
	}
}

// Claim records source as the owner of identity. It returns the previous owner
// when a different example already claimed the same directory.
func (r *Registry) Claim(identity string, source string) (string, bool) {
	key := corpus.FoldKey(identity)
	prev, ok := r.claims[key]
	r.claims[key] = claim{identity: identity, source: source}
	r.identities[identity] = struct{}{}
	if !ok || prev.source == source {
		return "", false
	}
	return prev.source, true
}

// Identities returns every exact identity claimed so far.
func (r *Registry) Identities() map[string]struct{} {
	ids := make(map[string]struct{}, len(r.identities))
	for id := range r.identities {
		ids[id] = struct{}{}
	}
	return ids
}
