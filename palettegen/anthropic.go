package palettegen

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/gogpu/piart"
)

// anthropicMaxTokens comfortably fits ten "#rrggbb" entries.
const anthropicMaxTokens = 512

// Anthropic generates palettes with the Anthropic Messages API.
type Anthropic struct {
	client  anthropic.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewAnthropic creates an Anthropic generator.
func NewAnthropic(cfg Config) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.MaxRetries >= 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}
	return &Anthropic{
		client:  anthropic.NewClient(opts...),
		apiKey:  cfg.APIKey,
		model:   cfg.model(DefaultAnthropicModel),
		timeout: cfg.timeout(),
	}
}

// Generate implements Generator.
func (a *Anthropic) Generate(ctx context.Context, req Request) (piart.Palette, error) {
	if blankTheme(req) {
		return piart.Palette{}, ErrEmptyTheme
	}
	if a.apiKey == "" {
		return piart.Palette{}, newError(ProviderAnthropic, req, KindCredentials, ErrMissingCredentials)
	}

	ctx, cancel := withTimeout(ctx, a.timeout)
	defer cancel()

	piart.Logger().Debug("generating palette",
		slog.String("provider", ProviderAnthropic),
		slog.String("request", req.ID),
		slog.String("model", a.model))

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(req.Theme))),
		},
	})
	if err != nil {
		return piart.Palette{}, newError(ProviderAnthropic, req, anthropicKind(err), err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	pal, err := ParseResponse(sb.String())
	if err != nil {
		return piart.Palette{}, newError(ProviderAnthropic, req, KindResponse, err)
	}
	return pal, nil
}

func anthropicKind(err error) ErrorKind {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) && isAuthStatus(apiErr.StatusCode) {
		return KindCredentials
	}
	return KindTransport
}
