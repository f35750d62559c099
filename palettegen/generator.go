// Package palettegen produces digit palettes from a natural-language theme.
//
// A Generator turns a Request into a piart.Palette. Remote providers ask a
// text model for a JSON object mapping "0".."9" to hex colors; local
// providers compute the palette from a Lua script or a seeded random
// source. Every failure is returned as a *GenerationError so callers can
// show a message and keep the current palette.
package palettegen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gogpu/piart"
)

// Sentinel errors wrapped by GenerationError.
var (
	// ErrEmptyTheme is returned by NewRequest and the remote providers for a
	// blank theme.
	ErrEmptyTheme = errors.New("palettegen: theme is empty")

	// ErrMissingCredentials is returned when a remote provider has no API key.
	ErrMissingCredentials = errors.New("palettegen: API key is missing")

	// ErrMalformedResponse is returned when a response does not contain a
	// complete palette.
	ErrMalformedResponse = errors.New("palettegen: malformed palette response")
)

// Generator produces a palette for a theme.
type Generator interface {
	Generate(ctx context.Context, req Request) (piart.Palette, error)
}

// Request is one palette generation request.
type Request struct {
	ID    string // unique per request, used in logs and errors
	Theme string
}

// NewRequest validates theme and assigns a fresh request ID.
func NewRequest(theme string) (Request, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return Request{}, ErrEmptyTheme
	}
	return Request{ID: uuid.NewString(), Theme: theme}, nil
}

// blankTheme reports whether req has no theme to send to a model.
func blankTheme(req Request) bool {
	return strings.TrimSpace(req.Theme) == ""
}

// ErrorKind classifies generation failures.
type ErrorKind int

const (
	// KindTransport covers network failures, timeouts and API errors.
	KindTransport ErrorKind = iota

	// KindCredentials means the API key is missing or was rejected.
	KindCredentials

	// KindResponse means the provider answered but the answer was unusable.
	KindResponse
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCredentials:
		return "credentials"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// GenerationError reports a failed generation request.
type GenerationError struct {
	Provider  string
	RequestID string
	Kind      ErrorKind
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("palettegen: %s request %s: %s: %v", e.Provider, e.RequestID, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	var genErr *GenerationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyTheme):
		return "Enter a theme first."
	case errors.As(err, &genErr) && genErr.Kind == KindCredentials:
		return "API key is missing or invalid. Set it in the config or environment."
	default:
		return "Failed to generate palette. Try again."
	}
}

func newError(provider string, req Request, kind ErrorKind, err error) *GenerationError {
	return &GenerationError{Provider: provider, RequestID: req.ID, Kind: kind, Err: err}
}

// Prompt returns the instruction sent to text models for theme.
func Prompt(theme string) string {
	return fmt.Sprintf(`Create a color palette of 10 distinct hex codes corresponding to digits 0-9 based on the theme: %q.
Ensure the colors are visually appealing together.
Return strictly a JSON object where keys are "0" through "9" and values are hex color strings (e.g. "#FF0000").`, theme)
}

// systemPrompt is sent as the system message by providers that support one.
const systemPrompt = "You are a color designer. Reply with a single JSON object and nothing else."
