package palettegen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/gogpu/piart"
)

// OpenAI generates palettes with the OpenAI chat completions API in JSON
// object mode.
type OpenAI struct {
	client  openai.Client
	apiKey  string
	model   string
	timeout time.Duration
}

// NewOpenAI creates an OpenAI generator.
func NewOpenAI(cfg Config) *OpenAI {
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
	return &OpenAI{
		client:  openai.NewClient(opts...),
		apiKey:  cfg.APIKey,
		model:   cfg.model(DefaultOpenAIModel),
		timeout: cfg.timeout(),
	}
}

// Generate implements Generator.
func (o *OpenAI) Generate(ctx context.Context, req Request) (piart.Palette, error) {
	if blankTheme(req) {
		return piart.Palette{}, ErrEmptyTheme
	}
	if o.apiKey == "" {
		return piart.Palette{}, newError(ProviderOpenAI, req, KindCredentials, ErrMissingCredentials)
	}

	ctx, cancel := withTimeout(ctx, o.timeout)
	defer cancel()

	piart.Logger().Debug("generating palette",
		slog.String("provider", ProviderOpenAI),
		slog.String("request", req.ID),
		slog.String("model", o.model))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(Prompt(req.Theme)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return piart.Palette{}, newError(ProviderOpenAI, req, openaiKind(err), err)
	}
	if len(resp.Choices) == 0 {
		return piart.Palette{}, newError(ProviderOpenAI, req, KindResponse, ErrMalformedResponse)
	}

	pal, err := ParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return piart.Palette{}, newError(ProviderOpenAI, req, KindResponse, err)
	}
	return pal, nil
}

func openaiKind(err error) ErrorKind {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) && isAuthStatus(apiErr.StatusCode) {
		return KindCredentials
	}
	return KindTransport
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
