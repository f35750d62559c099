package palettegen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func anthropicServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v1/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":            "msg_1",
			"type":          "message",
			"role":          "assistant",
			"model":         DefaultAnthropicModel,
			"stop_reason":   "end_turn",
			"stop_sequence": nil,
			"content":       []map[string]any{{"type": "text", "text": text}},
			"usage":         map[string]any{"input_tokens": 10, "output_tokens": 50},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicGenerate(t *testing.T) {
	srv := anthropicServer(t, http.StatusOK, "Sure!\n```json\n"+validReply+"\n```")
	g := NewAnthropic(Config{APIKey: "test-key", BaseURL: srv.URL, MaxRetries: 0})

	p, err := g.Generate(context.Background(), Request{ID: "r", Theme: "greys"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := p[7].Hex(); got != "#777777" {
		t.Errorf("digit 7 = %s", got)
	}
}

func TestAnthropicErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		text   string
		want   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, "", KindCredentials},
		{"forbidden", http.StatusForbidden, "", KindCredentials},
		{"incomplete", http.StatusOK, `{"0":"#000000"}`, KindResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := anthropicServer(t, tt.status, tt.text)
			g := NewAnthropic(Config{APIKey: "test-key", BaseURL: srv.URL, MaxRetries: 0})

			_, err := g.Generate(context.Background(), Request{ID: "r", Theme: "greys"})
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("error = %v, want *GenerationError", err)
			}
			if genErr.Kind != tt.want {
				t.Errorf("Kind = %s, want %s (err %v)", genErr.Kind, tt.want, err)
			}
		})
	}
}

func TestAnthropicMissingKey(t *testing.T) {
	g := NewAnthropic(Config{})
	_, err := g.Generate(context.Background(), Request{Theme: "x"})
	if UserMessage(err) == UserMessage(ErrMalformedResponse) {
		t.Errorf("missing key reported as generic failure: %v", err)
	}
}
