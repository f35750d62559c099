package palettegen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

// ErrUnknownProvider is returned by New for an unsupported provider name.
var ErrUnknownProvider = errors.New("palettegen: unknown provider")

// Provider names accepted by New.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderScript    = "script"
	ProviderRandom    = "random"
)

// Default models per remote provider.
const (
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-haiku-latest"
)

// DefaultTimeout bounds a single generation request.
const DefaultTimeout = 30 * time.Second

// Config selects and configures a provider.
type Config struct {
	Provider string
	Model    string // empty selects the provider default
	APIKey   string
	BaseURL  string // overrides the API endpoint (openai, anthropic)

	// Timeout bounds each request; zero means DefaultTimeout and a negative
	// value disables the bound.
	Timeout time.Duration

	// MaxRetries is passed to the SDK clients; negative keeps SDK defaults.
	MaxRetries int

	HTTPClient *http.Client

	Script string // Lua source for the script provider
	Seed   int64  // seed for the random provider
}

// Providers returns the supported provider names in sorted order.
func Providers() []string {
	p := []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderScript, ProviderRandom}
	slices.Sort(p)
	return p
}

// New returns the generator named by cfg.Provider.
func New(cfg Config) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini, "":
		return NewGemini(cfg), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderAnthropic:
		return NewAnthropic(cfg), nil
	case ProviderScript:
		s, err := NewScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ProviderRandom:
		return NewRandom(cfg.Seed), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func (c Config) model(def string) string {
	if c.Model != "" {
		return c.Model
	}
	return def
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// withTimeout applies d to ctx unless d is negative.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d < 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
