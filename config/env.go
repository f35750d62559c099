package config

import (
	"strconv"
	"strings"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel    = "PIART_LOG_LEVEL"
	EnvProvider    = "PIART_PROVIDER"
	EnvModel       = "PIART_MODEL"
	EnvPaletteFile = "PIART_PALETTE_FILE"
	EnvSeed        = "PIART_SEED"

	// EnvAPIKey is the generic key variable, used for any provider.
	EnvAPIKey = "API_KEY"
)

// providerKeyEnv maps providers to their conventional key variable.
var providerKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// ApplyEnv overrides c from environment variables read through lookup,
// usually os.LookupEnv. The API key is resolved only when the file did
// not set one: first Generator.APIKeyEnv, then the provider's own
// variable, then API_KEY.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := nonEmpty(lookup, EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := nonEmpty(lookup, EnvProvider); ok {
		c.Generator.Provider = v
	}
	if v, ok := nonEmpty(lookup, EnvModel); ok {
		c.Generator.Model = v
	}
	if v, ok := nonEmpty(lookup, EnvPaletteFile); ok {
		c.Palette.File = v
	}
	if v, ok := nonEmpty(lookup, EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return invalid(EnvSeed, "%v", err)
		}
		c.Generator.Seed = seed
	}

	if c.Generator.APIKey != "" {
		return nil
	}
	var names []string
	if c.Generator.APIKeyEnv != "" {
		names = append(names, c.Generator.APIKeyEnv)
	}
	if name, ok := providerKeyEnv[strings.ToLower(c.Generator.Provider)]; ok {
		names = append(names, name)
	}
	names = append(names, EnvAPIKey)
	for _, name := range names {
		if v, ok := nonEmpty(lookup, name); ok {
			c.Generator.APIKey = v
			break
		}
	}
	return nil
}

func nonEmpty(lookup func(string) (string, bool), name string) (string, bool) {
	v, ok := lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
