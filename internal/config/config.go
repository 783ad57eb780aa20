package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MackZumarraga/zodiax-game/internal/game"
	"github.com/MackZumarraga/zodiax-game/internal/skill"
)

type skillEntry struct {
	Name        string           `json:"name"`
	Type        string           `json:"type"`
	MPCost      int              `json:"mp_cost"`
	Target      string           `json:"target"`
	Description string           `json:"description"`
	Damage      skill.EffectSpec `json:"damage"`
	Healing     skill.EffectSpec `json:"healing"`
	MPRestore   skill.EffectSpec `json:"mp_restore"`
	EffectKey   string           `json:"effect_key"`
}

type rawConfig struct {
	// SkillList overrides the default catalog when present. When omitted
	// the built-in five skills (attack/block/heal/curse/charge) are used.
	SkillList     []skillEntry     `json:"skill_list"`
	CharacterList []game.Character `json:"character_list"`
	Server        *struct {
		Address string `json:"address"`
	} `json:"server"`
	Battle *struct {
		BlockReductionPercent *int  `json:"block_reduction_percent"`
		ReflectPercent        *int  `json:"reflect_percent"`
		RandomizeFirstTurn    *bool `json:"randomize_first_turn"`
		DefaultMaxHP          *int  `json:"default_max_hp"`
		DefaultMaxMP          *int  `json:"default_max_mp"`
	} `json:"battle"`
}

// LoadedConfig is the validated runtime configuration. Numeric balance is
// deliberately configuration, not hard-coded constants.
type LoadedConfig struct {
	Skills     []*skill.Skill
	Characters []game.Character

	ServerAddress string

	BlockReductionPercent int
	ReflectPercent        int
	RandomizeFirstTurn    bool
	DefaultMaxHP          int
	DefaultMaxMP          int
}

// LoadConfig reads and validates the configuration file at path.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	out := &LoadedConfig{
		ServerAddress:         ":4000",
		BlockReductionPercent: 50,
		ReflectPercent:        25,
		RandomizeFirstTurn:    true,
		DefaultMaxHP:          100,
		DefaultMaxMP:          15,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Battle != nil {
		if v := rc.Battle.BlockReductionPercent; v != nil {
			out.BlockReductionPercent = *v
		}
		if v := rc.Battle.ReflectPercent; v != nil {
			out.ReflectPercent = *v
		}
		if v := rc.Battle.RandomizeFirstTurn; v != nil {
			out.RandomizeFirstTurn = *v
		}
		if v := rc.Battle.DefaultMaxHP; v != nil {
			out.DefaultMaxHP = *v
		}
		if v := rc.Battle.DefaultMaxMP; v != nil {
			out.DefaultMaxMP = *v
		}
	}
	if out.BlockReductionPercent < 0 || out.BlockReductionPercent > 100 {
		return nil, fmt.Errorf("config file %s: block_reduction_percent must be in [0,100]", path)
	}
	if out.ReflectPercent < 0 || out.ReflectPercent > 100 {
		return nil, fmt.Errorf("config file %s: reflect_percent must be in [0,100]", path)
	}
	if out.DefaultMaxHP <= 0 || out.DefaultMaxMP < 0 {
		return nil, fmt.Errorf("config file %s: default pools must be positive", path)
	}

	// Cross-entry validation: unique skill names (case-insensitive).
	seen := make(map[string]struct{}, len(rc.SkillList))
	for _, e := range rc.SkillList {
		if e.Name == "" {
			return nil, fmt.Errorf("config file %s: skill entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(e.Name))
		if _, exists := seen[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate skill name '%s'", path, e.Name)
		}
		seen[ln] = struct{}{}
		out.Skills = append(out.Skills, &skill.Skill{
			Name:        e.Name,
			Type:        skill.Type(e.Type),
			MPCost:      e.MPCost,
			Target:      skill.Target(e.Target),
			Description: e.Description,
			Damage:      e.Damage,
			Healing:     e.Healing,
			MPRestore:   e.MPRestore,
			EffectKey:   e.EffectKey,
		})
	}

	if len(rc.CharacterList) == 0 {
		return nil, fmt.Errorf("config file %s: character_list is empty (provide a 'character_list' array)", path)
	}
	names := make(map[string]struct{}, len(rc.CharacterList))
	for _, ch := range rc.CharacterList {
		if strings.TrimSpace(ch.Name) == "" {
			return nil, fmt.Errorf("config file %s: character entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(ch.Name))
		if _, exists := names[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate character name '%s'", path, ch.Name)
		}
		names[ln] = struct{}{}
		if ch.MaxHP == 0 {
			ch.MaxHP = out.DefaultMaxHP
		}
		if ch.MaxMP == 0 {
			ch.MaxMP = out.DefaultMaxMP
		}
		if ch.MaxHP < 1 || ch.MaxMP < 0 {
			return nil, fmt.Errorf("config file %s: character '%s' has invalid pools", path, ch.Name)
		}
		out.Characters = append(out.Characters, ch)
	}

	return out, nil
}

// BuildCatalog assembles the skill registry: defaults first, then config
// overrides (last registration wins).
func (c *LoadedConfig) BuildCatalog() (*skill.Registry, error) {
	reg := skill.NewRegistry()
	if err := skill.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	for _, s := range c.Skills {
		if err := reg.Register(s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
