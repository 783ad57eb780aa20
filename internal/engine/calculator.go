package engine

import (
	"fmt"

	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

// Calculate produces the numeric outcome of one skill invocation without
// mutating either combatant. The MP gate runs before any random draw, so
// repeated calls with insufficient mana are side-effect-free and always
// yield the same failed outcome.
func Calculate(sk *skill.Skill, caster, target *game.Combatant) game.SkillResult {
	res := game.SkillResult{SkillName: sk.Name, MPCost: sk.MPCost}

	if !sk.CanUse(caster) {
		res.Message = fmt.Sprintf("Not enough MP to use %s!", sk.Name)
		return res
	}

	// Damage percentages scale off the target's pool, healing off the
	// caster's. Nothing forbids a skill defining both.
	if !sk.Damage.IsZero() {
		res.Damage = sk.Damage.Roll(target.MaxHP)
	}
	if !sk.Healing.IsZero() {
		res.Healing = sk.Healing.Roll(caster.MaxHP)
	}

	res.Success = true
	return res
}
