package skill

// RegisterDefaults installs the classic five-action catalog. The config
// file can override or extend any of these; last registration wins.
func RegisterDefaults(r *Registry) error {
	defaults := []*Skill{
		{
			Name:        "attack",
			Type:        TypeOffensive,
			Target:      TargetEnemy,
			Damage:      EffectSpec{Kind: EffectRange, Min: 1, Max: 35},
			Description: "Attacks the enemy for 1-35 damage",
		},
		{
			Name:        "heal",
			Type:        TypeSupport,
			MPCost:      6,
			Target:      TargetSelf,
			Healing:     EffectSpec{Kind: EffectPercentOfMax, PercentMin: 20, PercentMax: 40},
			Description: "Heals for 20-40% of max HP, costs 6 MP",
		},
		{
			Name:        "curse",
			Type:        TypeOffensive,
			MPCost:      6,
			Target:      TargetEnemy,
			Damage:      EffectSpec{Kind: EffectPercentOfMax, PercentMin: 25, PercentMax: 40},
			Description: "Deals 25-40% of enemy's max HP as damage, costs 6 MP",
		},
		{
			Name:        "block",
			Type:        TypeDefensive,
			Target:      TargetSelf,
			EffectKey:   EffectKeyBlock,
			Description: "Blocks incoming damage (50% reduction + 25% reflection)",
		},
		{
			Name:        "charge",
			Type:        TypeUtility,
			Target:      TargetSelf,
			MPRestore:   EffectSpec{Kind: EffectRange, Min: 2, Max: 3},
			EffectKey:   EffectKeyCharge,
			Description: "Gains 2-3 MP",
		},
	}
	for _, s := range defaults {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCatalog returns a registry pre-loaded with the default skills.
func DefaultCatalog() *Registry {
	r := NewRegistry()
	if err := RegisterDefaults(r); err != nil {
		// The defaults are static; a failure here is a programming error.
		panic(err)
	}
	return r
}
