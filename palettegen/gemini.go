package palettegen

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gogpu/piart"
)

// Gemini generates palettes with Google's Gemini models, constraining the
// reply with a JSON response schema.
type Gemini struct {
	apiKey  string
	model   string
	timeout time.Duration
	opts    []option.ClientOption
}

// NewGemini creates a Gemini generator. The API key is checked on each
// request, so a generator can be created before the key is configured.
func NewGemini(cfg Config) *Gemini {
	var opts []option.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	return &Gemini{
		apiKey:  cfg.APIKey,
		model:   cfg.model(DefaultGeminiModel),
		timeout: cfg.timeout(),
		opts:    opts,
	}
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, req Request) (piart.Palette, error) {
	if blankTheme(req) {
		return piart.Palette{}, ErrEmptyTheme
	}
	if g.apiKey == "" {
		return piart.Palette{}, newError(ProviderGemini, req, KindCredentials, ErrMissingCredentials)
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	log := piart.Logger().With(slog.String("provider", ProviderGemini), slog.String("request", req.ID))
	log.Debug("generating palette", slog.String("model", g.model))

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(g.apiKey)}, g.opts...)...)
	if err != nil {
		return piart.Palette{}, newError(ProviderGemini, req, KindTransport, err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(g.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = paletteSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(Prompt(req.Theme)))
	if err != nil {
		return piart.Palette{}, newError(ProviderGemini, req, KindTransport, err)
	}

	pal, err := ParseResponse(geminiText(resp))
	if err != nil {
		return piart.Palette{}, newError(ProviderGemini, req, KindResponse, err)
	}
	return pal, nil
}

// paletteSchema requires an object with a string for each digit key.
func paletteSchema() *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, 10),
		Required:   make([]string, 0, 10),
	}
	for d := range 10 {
		key := strconv.Itoa(d)
		s.Properties[key] = &genai.Schema{Type: genai.TypeString}
		s.Required = append(s.Required, key)
	}
	return s
}

// geminiText concatenates the text parts of the first candidate.
func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}
