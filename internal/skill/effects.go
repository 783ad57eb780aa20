package skill

import (
	"fmt"

	"github.com/MackZumarraga/zodiax-game/internal/game"
)

// Built-in custom effect keys referenced from the config file.
const (
	EffectKeyBlock  = "block"
	EffectKeyCharge = "charge"
)

func registerBuiltinEffects(r *Registry) {
	r.RegisterEffect(EffectKeyBlock, blockEffect)
	r.RegisterEffect(EffectKeyCharge, chargeEffect)
}

// blockEffect arms the caster's one-hit damage reduction and reflection.
// Both flags are cleared by the dispatcher the next time the caster is hit.
func blockEffect(s *Skill, caster, _ *game.Combatant, res *game.SkillResult) {
	caster.IsBlocking = true
	caster.ReflectDamage = true
	res.Message = fmt.Sprintf("%s blocks and prepares for defense with damage reflection!", caster.Name)
}

// chargeEffect restores MP according to the skill's MPRestore spec, capped
// at the caster's MaxMP.
func chargeEffect(s *Skill, caster, _ *game.Combatant, res *game.SkillResult) {
	gain := caster.RestoreMP(s.MPRestore.Roll(caster.MaxHP))
	res.Message = fmt.Sprintf("%s charges and gains %d MP!", caster.Name, gain)
}
