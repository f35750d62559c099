package config

import (
	"errors"
	"testing"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		EnvLogLevel:    "warn",
		EnvProvider:    "anthropic",
		EnvModel:       "claude-x",
		EnvPaletteFile: "/tmp/p.yaml",
		EnvSeed:        "99",
		EnvAPIKey:      "generic",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}
	g := cfg.Generator
	if cfg.Log.Level != "warn" || g.Provider != "anthropic" || g.Model != "claude-x" || g.Seed != 99 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Log, g)
	}
	if cfg.Palette.File != "/tmp/p.yaml" {
		t.Errorf("Palette.File = %q", cfg.Palette.File)
	}
	if g.APIKey != "generic" {
		t.Errorf("APIKey = %q, want generic fallback", g.APIKey)
	}
}

func TestApplyEnvKeyPrecedence(t *testing.T) {
	env := map[string]string{
		"CUSTOM_KEY":     "custom",
		"OPENAI_API_KEY": "openai",
		"GEMINI_API_KEY": "gemini",
		EnvAPIKey:        "generic",
	}
	tests := []struct {
		name     string
		provider string
		keyEnv   string
		fileKey  string
		want     string
	}{
		{"file key wins", "openai", "CUSTOM_KEY", "file", "file"},
		{"named env", "openai", "CUSTOM_KEY", "", "custom"},
		{"provider env", "openai", "", "", "openai"},
		{"default provider", "gemini", "", "", "gemini"},
		{"generic fallback", "anthropic", "", "", "generic"},
		{"named env unset", "anthropic", "UNSET", "", "generic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Generator.Provider = tt.provider
			cfg.Generator.APIKeyEnv = tt.keyEnv
			cfg.Generator.APIKey = tt.fileKey
			if err := cfg.ApplyEnv(envMap(env)); err != nil {
				t.Fatal(err)
			}
			if cfg.Generator.APIKey != tt.want {
				t.Errorf("APIKey = %q, want %q", cfg.Generator.APIKey, tt.want)
			}
		})
	}
}

func TestApplyEnvIgnoresBlank(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyEnv(envMap(map[string]string{EnvProvider: "  "})); err != nil {
		t.Fatal(err)
	}
	if cfg.Generator.Provider != "gemini" {
		t.Errorf("Provider = %q, blank env should not override", cfg.Generator.Provider)
	}
}

func TestApplyEnvBadSeed(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{EnvSeed: "abc"}))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ApplyEnv() error = %v, want ErrInvalidConfig", err)
	}
}
