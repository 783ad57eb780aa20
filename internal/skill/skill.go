package skill

import (
	"fmt"
	"math/rand"

	"github.com/MackZumarraga/zodiax-game/internal/game"
)

// Type categorizes a skill. Passive skills are accepted by the catalog but
// never dispatched by the battle loop.
type Type string

const (
	TypeOffensive Type = "offensive"
	TypeDefensive Type = "defensive"
	TypeSupport   Type = "support"
	TypeUtility   Type = "utility"
	TypePassive   Type = "passive"
)

// Target selects which combatant receives a skill's damage or healing.
type Target string

const (
	TargetSelf  Target = "self"
	TargetEnemy Target = "enemy"
)

// EffectKind tags the shape of an EffectSpec.
type EffectKind string

const (
	EffectNone EffectKind = ""
	// EffectFixed always produces Value.
	EffectFixed EffectKind = "fixed"
	// EffectRange draws an integer uniformly in [Min, Max] inclusive.
	EffectRange EffectKind = "range"
	// EffectPercentOfMax draws a percentage uniformly in
	// [PercentMin, PercentMax] and applies it to the relevant combatant's
	// MaxHP (target's for damage, caster's for healing), floored.
	EffectPercentOfMax EffectKind = "percent_of_max"
)

// EffectSpec is a data-only description of a numeric effect. Keeping this a
// tagged variant (instead of arbitrary callbacks) lets the calculator handle
// every case exhaustively and lets skills live in the config file.
type EffectSpec struct {
	Kind       EffectKind `json:"kind"`
	Value      int        `json:"value,omitempty"`
	Min        int        `json:"min,omitempty"`
	Max        int        `json:"max,omitempty"`
	PercentMin int        `json:"percent_min,omitempty"`
	PercentMax int        `json:"percent_max,omitempty"`
}

// IsZero reports whether the spec describes no effect at all.
func (e EffectSpec) IsZero() bool { return e.Kind == EffectNone }

// Validate checks internal consistency of the spec.
func (e EffectSpec) Validate() error {
	switch e.Kind {
	case EffectNone:
		return nil
	case EffectFixed:
		if e.Value < 0 {
			return fmt.Errorf("fixed effect value must be >= 0, got %d", e.Value)
		}
	case EffectRange:
		if e.Min < 0 || e.Max < e.Min {
			return fmt.Errorf("invalid range [%d, %d]", e.Min, e.Max)
		}
	case EffectPercentOfMax:
		if e.PercentMin < 0 || e.PercentMax < e.PercentMin {
			return fmt.Errorf("invalid percent range [%d, %d]", e.PercentMin, e.PercentMax)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Roll evaluates the spec to a concrete integer. maxHP is the pool the
// percent variant applies to (the target's for damage, the caster's for
// healing).
func (e EffectSpec) Roll(maxHP int) int {
	switch e.Kind {
	case EffectFixed:
		return e.Value
	case EffectRange:
		return rand.Intn(e.Max-e.Min+1) + e.Min
	case EffectPercentOfMax:
		pct := rand.Intn(e.PercentMax-e.PercentMin+1) + e.PercentMin
		return maxHP * pct / 100
	}
	return 0
}

// CustomEffect is a side-effecting hook attached to skills whose behavior is
// not pure damage/healing (block, charge). It runs after the base numeric
// effect has been applied and may finalize the result message.
type CustomEffect func(s *Skill, caster, target *game.Combatant, res *game.SkillResult)

// Skill is an immutable, catalog-registered action definition.
type Skill struct {
	Name        string
	Type        Type
	MPCost      int
	Target      Target
	Damage      EffectSpec
	Healing     EffectSpec
	Description string
	// MPRestore is consumed by the charge custom effect.
	MPRestore EffectSpec
	// EffectKey names a registered CustomEffect; empty for plain skills.
	EffectKey string
	// Effect is resolved from EffectKey when the skill is registered.
	Effect CustomEffect
}

// Validate checks the definition for catalog admission.
func (s *Skill) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("skill missing name")
	}
	switch s.Type {
	case TypeOffensive, TypeDefensive, TypeSupport, TypeUtility, TypePassive:
	default:
		return fmt.Errorf("skill %q: unknown type %q", s.Name, s.Type)
	}
	switch s.Target {
	case TargetSelf, TargetEnemy:
	default:
		return fmt.Errorf("skill %q: unknown target %q", s.Name, s.Target)
	}
	if s.MPCost < 0 {
		return fmt.Errorf("skill %q: mp cost must be >= 0", s.Name)
	}
	if err := s.Damage.Validate(); err != nil {
		return fmt.Errorf("skill %q damage: %w", s.Name, err)
	}
	if err := s.Healing.Validate(); err != nil {
		return fmt.Errorf("skill %q healing: %w", s.Name, err)
	}
	if err := s.MPRestore.Validate(); err != nil {
		return fmt.Errorf("skill %q mp restore: %w", s.Name, err)
	}
	return nil
}

// CanUse reports whether the caster has enough MP for this skill.
func (s *Skill) CanUse(caster *game.Combatant) bool {
	return caster.MP >= s.MPCost
}
