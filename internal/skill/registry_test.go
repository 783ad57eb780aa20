package skill

import (
	"testing"
)

func TestRegister_ValidatesDefinition(t *testing.T) {
	r := NewRegistry()

	bad := []*Skill{
		{Name: "", Type: TypeOffensive, Target: TargetEnemy},
		{Name: "x", Type: "mystery", Target: TargetEnemy},
		{Name: "x", Type: TypeOffensive, Target: "everyone"},
		{Name: "x", Type: TypeOffensive, Target: TargetEnemy, MPCost: -1},
		{Name: "x", Type: TypeOffensive, Target: TargetEnemy, Damage: EffectSpec{Kind: EffectRange, Min: 10, Max: 5}},
		{Name: "x", Type: TypeOffensive, Target: TargetEnemy, EffectKey: "nonexistent"},
	}
	for i, s := range bad {
		if err := r.Register(s); err == nil {
			t.Fatalf("case %d: expected registration to fail for %+v", i, s)
		}
	}
}

func TestRegister_LastWins(t *testing.T) {
	r := NewRegistry()
	first := &Skill{Name: "attack", Type: TypeOffensive, Target: TargetEnemy, Damage: EffectSpec{Kind: EffectFixed, Value: 1}}
	second := &Skill{Name: "Attack", Type: TypeOffensive, Target: TargetEnemy, Damage: EffectSpec{Kind: EffectFixed, Value: 99}}

	if err := r.Register(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := r.Get("ATTACK")
	if !ok {
		t.Fatalf("expected lookup to be case-insensitive")
	}
	if got.Damage.Value != 99 {
		t.Fatalf("expected later registration to win, got damage value %d", got.Damage.Value)
	}
}

func TestRegister_ResolvesEffectKey(t *testing.T) {
	r := NewRegistry()
	s := &Skill{Name: "block", Type: TypeDefensive, Target: TargetSelf, EffectKey: EffectKeyBlock}
	if err := r.Register(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := r.Get("block")
	if got.Effect == nil {
		t.Fatalf("expected effect key %q to resolve to a function", EffectKeyBlock)
	}
}

func TestByType_SortedByName(t *testing.T) {
	r := DefaultCatalog()
	off := r.ByType(TypeOffensive)
	if len(off) != 2 {
		t.Fatalf("expected 2 offensive defaults, got %d", len(off))
	}
	if off[0].Name != "attack" || off[1].Name != "curse" {
		t.Fatalf("expected [attack curse], got [%s %s]", off[0].Name, off[1].Name)
	}
}

func TestUnregister(t *testing.T) {
	r := DefaultCatalog()
	if !r.Unregister("Charge") {
		t.Fatalf("expected charge to be registered")
	}
	if r.Has("charge") {
		t.Fatalf("expected charge to be gone")
	}
	if r.Unregister("charge") {
		t.Fatalf("expected second unregister to report absence")
	}
}

func TestEffectSpec_RollBounds(t *testing.T) {
	spec := EffectSpec{Kind: EffectRange, Min: 1, Max: 35}
	for i := 0; i < 200; i++ {
		v := spec.Roll(100)
		if v < 1 || v > 35 {
			t.Fatalf("range roll out of bounds: %d", v)
		}
	}

	pct := EffectSpec{Kind: EffectPercentOfMax, PercentMin: 20, PercentMax: 40}
	for i := 0; i < 200; i++ {
		v := pct.Roll(100)
		if v < 20 || v > 40 {
			t.Fatalf("percent roll out of bounds: %d", v)
		}
	}

	// Percent math floors: 33% of 50 is 16.
	exact := EffectSpec{Kind: EffectPercentOfMax, PercentMin: 33, PercentMax: 33}
	if v := exact.Roll(50); v != 16 {
		t.Fatalf("expected floor(50*33/100)=16, got %d", v)
	}

	fixed := EffectSpec{Kind: EffectFixed, Value: 7}
	if v := fixed.Roll(100); v != 7 {
		t.Fatalf("expected fixed roll 7, got %d", v)
	}

	if v := (EffectSpec{}).Roll(100); v != 0 {
		t.Fatalf("expected zero spec to roll 0, got %d", v)
	}
}
