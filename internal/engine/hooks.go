package engine

import (
	"fmt"

	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/logging"
)

// Stage identifies a fixed point in the effect application pipeline where
// externally registered hooks run.
type Stage string

const (
	StageBeforeSkillUse Stage = "beforeSkillUse"
	StageAfterSkillUse  Stage = "afterSkillUse"
	StageOnDamage       Stage = "onDamage"
	StageOnHealing      Stage = "onHealing"
)

// Stages lists every pipeline stage in invocation order.
var Stages = []Stage{StageBeforeSkillUse, StageAfterSkillUse, StageOnDamage, StageOnHealing}

// HookContext carries the state of the in-flight action to a hook. Damage
// fields are populated for StageOnDamage (Damage is the post-mitigation
// amount actually applied), Healing for StageOnHealing.
type HookContext struct {
	Stage          Stage
	SkillName      string
	Caster         *game.Combatant
	Target         *game.Combatant
	Damage         int
	OriginalDamage int
	Healing        int
	Result         *game.SkillResult
}

// Hook is an externally registered pipeline callback. Returning an error
// marks the hook as failed; failures are logged and never abort the
// remaining pipeline or the battle. The before stage is informational only:
// it cannot cancel the action. Hooks run synchronously and there is no
// per-hook timeout, so a hanging hook stalls the action's resolution.
type Hook func(ctx *HookContext) error

func (d *Dispatcher) runHooks(stage Stage, ctx *HookContext) {
	ctx.Stage = stage
	for _, h := range d.hooks[stage] {
		if err := safeHook(h, ctx); err != nil {
			logging.Warn("battle hook failed", err, logging.Fields{"stage": string(stage), "skill": ctx.SkillName})
		}
	}
}

// safeHook converts a hook panic into an error so one misbehaving callback
// cannot take down the action.
func safeHook(h Hook, ctx *HookContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()
	return h(ctx)
}
