package skill

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is the static skill catalog: a name-keyed map of definitions
// populated once at startup from the configuration file.
type Registry struct {
	skills  map[string]*Skill
	effects map[string]CustomEffect
}

// NewRegistry returns an empty catalog with the built-in custom effects
// (block, charge) pre-registered.
func NewRegistry() *Registry {
	r := &Registry{
		skills:  make(map[string]*Skill),
		effects: make(map[string]CustomEffect),
	}
	registerBuiltinEffects(r)
	return r
}

// RegisterEffect installs a custom effect under key. Later registrations
// replace earlier ones.
func (r *Registry) RegisterEffect(key string, fn CustomEffect) {
	r.effects[strings.ToLower(key)] = fn
}

// Register validates the definition, resolves its custom effect key and
// inserts it keyed by lowercase name. Re-registering a name overwrites the
// previous definition on purpose (tests patch skills this way).
func (r *Registry) Register(s *Skill) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.EffectKey != "" {
		fn, ok := r.effects[strings.ToLower(s.EffectKey)]
		if !ok {
			return fmt.Errorf("skill %q: unknown effect key %q", s.Name, s.EffectKey)
		}
		s.Effect = fn
	}
	r.skills[strings.ToLower(s.Name)] = s
	return nil
}

// Get returns the definition for name (case-insensitive).
func (r *Registry) Get(name string) (*Skill, bool) {
	s, ok := r.skills[strings.ToLower(name)]
	return s, ok
}

// Has reports whether a skill is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// ByType returns all definitions of the given type, sorted by name.
func (r *Registry) ByType(t Type) []*Skill {
	out := make([]*Skill, 0, len(r.skills))
	for _, s := range r.skills {
		if s.Type == t {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// All returns every registered definition, sorted by name.
func (r *Registry) All() []*Skill {
	out := make([]*Skill, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Unregister removes a skill by name and reports whether it existed.
func (r *Registry) Unregister(name string) bool {
	key := strings.ToLower(name)
	_, ok := r.skills[key]
	delete(r.skills, key)
	return ok
}
