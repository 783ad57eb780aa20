package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zodiax_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `{"character_list":[{"name":"Shay Shay"},{"name":"Charlotte"}]}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":4000" {
		t.Fatalf("expected default address :4000, got %q", cfg.ServerAddress)
	}
	if cfg.BlockReductionPercent != 50 || cfg.ReflectPercent != 25 {
		t.Fatalf("expected default battle rules, got %d/%d", cfg.BlockReductionPercent, cfg.ReflectPercent)
	}
	if !cfg.RandomizeFirstTurn {
		t.Fatalf("expected randomized first turn by default")
	}
	// Characters with no pools inherit the defaults.
	for _, ch := range cfg.Characters {
		if ch.MaxHP != 100 || ch.MaxMP != 15 {
			t.Fatalf("expected default pools for %q, got %d/%d", ch.Name, ch.MaxHP, ch.MaxMP)
		}
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `{
		"character_list":[{"name":"Orion","max_hp":150,"max_mp":20}],
		"server":{"address":":9999"},
		"battle":{"block_reduction_percent":75,"reflect_percent":0,"randomize_first_turn":false,"default_max_hp":80,"default_max_mp":10}
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9999" {
		t.Fatalf("expected address override, got %q", cfg.ServerAddress)
	}
	if cfg.BlockReductionPercent != 75 || cfg.ReflectPercent != 0 || cfg.RandomizeFirstTurn {
		t.Fatalf("expected battle overrides, got %+v", cfg)
	}
	if cfg.Characters[0].MaxHP != 150 || cfg.Characters[0].MaxMP != 20 {
		t.Fatalf("expected explicit pools kept, got %+v", cfg.Characters[0])
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing file is an error", ""},
		{"empty character list", `{"character_list":[]}`},
		{"duplicate characters", `{"character_list":[{"name":"Orion"},{"name":"ORION"}]}`},
		{"unnamed character", `{"character_list":[{"name":"  "}]}`},
		{"duplicate skills", `{"character_list":[{"name":"Orion"}],"skill_list":[{"name":"zap","type":"offensive","target":"enemy"},{"name":"Zap","type":"offensive","target":"enemy"}]}`},
		{"unnamed skill", `{"character_list":[{"name":"Orion"}],"skill_list":[{"type":"offensive","target":"enemy"}]}`},
		{"percent out of range", `{"character_list":[{"name":"Orion"}],"battle":{"block_reduction_percent":101}}`},
		{"negative reflect", `{"character_list":[{"name":"Orion"}],"battle":{"reflect_percent":-1}}`},
		{"zero max hp default", `{"character_list":[{"name":"Orion"}],"battle":{"default_max_hp":0}}`},
		{"not json", `{"character_list":`},
	}
	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "missing.json")
		if tc.body != "" {
			path = writeConfig(t, tc.body)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestBuildCatalog_ConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"character_list":[{"name":"Orion"}],
		"skill_list":[
			{"name":"attack","type":"offensive","target":"enemy","damage":{"kind":"fixed","value":12}},
			{"name":"drain","type":"offensive","mp_cost":4,"target":"enemy","damage":{"kind":"percent_of_max","percent_min":10,"percent_max":15}}
		]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reg, err := cfg.BuildCatalog()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The config's attack replaced the default range roll.
	atk, ok := reg.Get("attack")
	if !ok || atk.Damage.Value != 12 {
		t.Fatalf("expected overridden attack, got %+v", atk)
	}
	// New skills join the defaults instead of replacing the catalog.
	if !reg.Has("drain") || !reg.Has("block") || !reg.Has("charge") {
		t.Fatalf("expected merged catalog")
	}
}

func TestBuildCatalog_RejectsBadSkill(t *testing.T) {
	path := writeConfig(t, `{
		"character_list":[{"name":"Orion"}],
		"skill_list":[{"name":"zap","type":"offensive","target":"enemy","effect_key":"nope"}]
	}`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cfg.BuildCatalog(); err == nil {
		t.Fatalf("expected unknown effect key to fail catalog build")
	}
}
