package engine

import (
	"fmt"

	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

// Rules holds the configurable battle arithmetic. Percents are integers in
// [0, 100] and applied with floor semantics.
type Rules struct {
	// BlockReductionPercent of incoming damage is removed when the hit
	// target is blocking.
	BlockReductionPercent int
	// ReflectPercent of the original (pre-mitigation) damage is returned to
	// the attacker when the blocking target also has reflection armed.
	ReflectPercent int
}

// DefaultRules mirrors the classic balance: block halves, reflect returns a
// quarter of the raw damage.
func DefaultRules() Rules {
	return Rules{BlockReductionPercent: 50, ReflectPercent: 25}
}

// Dispatcher applies calculated skill results to combatants and runs the
// hook pipeline around each application.
type Dispatcher struct {
	rules Rules
	hooks map[Stage][]Hook
}

// NewDispatcher returns a dispatcher with no hooks registered.
func NewDispatcher(rules Rules) *Dispatcher {
	return &Dispatcher{rules: rules, hooks: make(map[Stage][]Hook)}
}

// AddHook appends a callback to the given stage. Hooks run in registration
// order.
func (d *Dispatcher) AddHook(stage Stage, h Hook) {
	d.hooks[stage] = append(d.hooks[stage], h)
}

// ClearHooks removes every registered hook.
func (d *Dispatcher) ClearHooks() {
	d.hooks = make(map[Stage][]Hook)
}

// Execute runs one full skill invocation: before hooks, calculation, effect
// application, custom effect and after hooks. Caster and target are mutated
// in place. A soft failure (not enough MP) returns Success=false after the
// before hooks without touching either combatant.
func (d *Dispatcher) Execute(sk *skill.Skill, caster, target *game.Combatant) *game.SkillResult {
	d.runHooks(StageBeforeSkillUse, &HookContext{SkillName: sk.Name, Caster: caster, Target: target})

	res := Calculate(sk, caster, target)
	res.SkillName = sk.Name
	if !res.Success {
		return &res
	}

	caster.SpendMP(res.MPCost)

	// Mitigation notes are appended after the message is finalized so a
	// blocked attack still reads "X uses attack ... (Y blocked ...)".
	var notes string
	if res.Damage > 0 {
		notes = d.applyDamage(sk, &res, caster, target)
	}
	if res.Healing > 0 {
		d.applyHealing(sk, &res, caster, target)
	}

	if sk.Effect != nil {
		sk.Effect(sk, caster, target, &res)
	}

	d.runHooks(StageAfterSkillUse, &HookContext{SkillName: sk.Name, Caster: caster, Target: target, Result: &res})

	if res.Message == "" {
		res.Message = defaultMessage(sk, caster, target, &res)
	}
	res.Message += notes
	return &res
}

// applyDamage resolves the hit target, block mitigation and reflection, then
// fires the onDamage hooks with the damage actually dealt. The returned
// string describes any mitigation that occurred.
func (d *Dispatcher) applyDamage(sk *skill.Skill, res *game.SkillResult, caster, target *game.Combatant) string {
	hit := target
	if sk.Target == skill.TargetSelf {
		hit = caster
	}

	var notes string
	actual := res.Damage
	if hit.IsBlocking {
		actual = actual * (100 - d.rules.BlockReductionPercent) / 100
		notes += fmt.Sprintf(" (%s blocked for %d%% damage reduction!)", hit.Name, d.rules.BlockReductionPercent)

		if hit.ReflectDamage {
			reflected := res.Damage * d.rules.ReflectPercent / 100
			caster.ApplyDamage(reflected)
			notes += fmt.Sprintf(" Reflected %d damage back to %s!", reflected, caster.Name)
		}

		// Both flags are consumed by the hit, whatever the outcome.
		hit.IsBlocking = false
		hit.ReflectDamage = false
	}

	hit.ApplyDamage(actual)

	d.runHooks(StageOnDamage, &HookContext{
		SkillName:      sk.Name,
		Caster:         caster,
		Target:         hit,
		Damage:         actual,
		OriginalDamage: res.Damage,
		Result:         res,
	})
	return notes
}

// applyHealing resolves the heal target (self unless the skill explicitly
// targets the enemy), caps at MaxHP and fires the onHealing hooks.
func (d *Dispatcher) applyHealing(sk *skill.Skill, res *game.SkillResult, caster, target *game.Combatant) {
	heal := caster
	if sk.Target == skill.TargetEnemy {
		heal = target
	}
	heal.ApplyHealing(res.Healing)

	d.runHooks(StageOnHealing, &HookContext{
		SkillName: sk.Name,
		Caster:    caster,
		Target:    heal,
		Healing:   res.Healing,
		Result:    res,
	})
}

func defaultMessage(sk *skill.Skill, caster, target *game.Combatant, res *game.SkillResult) string {
	switch {
	case res.Damage > 0:
		return fmt.Sprintf("%s uses %s and deals %d damage to %s!", caster.Name, sk.Name, res.Damage, target.Name)
	case res.Healing > 0:
		return fmt.Sprintf("%s uses %s and heals for %d HP!", caster.Name, sk.Name, res.Healing)
	}
	return fmt.Sprintf("%s uses %s!", caster.Name, sk.Name)
}
