package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/piart"
)

func runTest(t *testing.T, env map[string]string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		stdout: &out,
		stderr: &errOut,
		lookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	}
	code = a.run(args)
	t.Cleanup(func() { piart.SetLogger(nil) })
	return code, out.String(), errOut.String()
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.toml")
}

func TestVersionAndUsage(t *testing.T) {
	code, out, _ := runTest(t, nil, "version")
	if code != 0 || !strings.HasPrefix(out, "piart ") {
		t.Errorf("version: code=%d out=%q", code, out)
	}
	if code, _, _ := runTest(t, nil); code != 2 {
		t.Errorf("no args: code=%d, want 2", code)
	}
	code, _, errOut := runTest(t, nil, "paint")
	if code != 2 || !strings.Contains(errOut, `unknown command "paint"`) {
		t.Errorf("unknown: code=%d stderr=%q", code, errOut)
	}
	if code, _, _ := runTest(t, nil, "render", "-h"); code != 0 {
		t.Errorf("render -h: code=%d, want 0", code)
	}
	if code, _, _ := runTest(t, nil, "render", "-bogus"); code != 2 {
		t.Errorf("bad flag: code=%d, want 2", code)
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "grid.png")
	code, stdout, stderr := runTest(t, nil, "render", "-config", noConfig(t),
		"-count", "100", "-width", "10", "-cell", "4", "-palette", "pastel", "-scale", "2", "-o", out)
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(stdout, "Grid: 10x10 • 100 Digits") {
		t.Errorf("stdout = %q", stdout)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("png not written: %v", err)
	}
}

func TestRenderInvalidView(t *testing.T) {
	code, _, stderr := runTest(t, nil, "render", "-config", noConfig(t), "-width", "-3")
	if code != 1 || !strings.Contains(stderr, "grid width") {
		t.Errorf("code=%d stderr=%q", code, stderr)
	}
}

func TestHit(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first cell", []string{"-x", "1", "-y", "1"}, "digit 3 at #1"},
		{"second cell", []string{"-x", "13", "-y", "1"}, "digit 1 at #2"},
		{"second row", []string{"-x", "1", "-y", "13", "-width", "10"}, "digit 5 at #11"},
		{"outside", []string{"-x", "-1", "-y", "1"}, "no digit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"hit", "-config", noConfig(t)}, tt.args...)
			code, out, stderr := runTest(t, nil, args...)
			if code != 0 {
				t.Fatalf("code=%d stderr=%q", code, stderr)
			}
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("out = %q, want prefix %q", out, tt.want)
			}
		})
	}
}

func TestPaletteList(t *testing.T) {
	code, out, _ := runTest(t, nil, "palette", "list")
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	for _, name := range piart.PresetNames() {
		if !strings.Contains(out, name) {
			t.Errorf("list missing %q", name)
		}
	}
}

func TestPaletteShow(t *testing.T) {
	code, out, stderr := runTest(t, nil, "palette", "show", "-config", noConfig(t), "-palette", "monochrome", "-format", "yaml")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	p, err := piart.DecodePalette([]byte(out), ".yaml")
	if err != nil {
		t.Fatalf("output is not a palette: %v\n%s", err, out)
	}
	if mono, _ := piart.Preset("monochrome"); p != mono {
		t.Error("shown palette is not monochrome")
	}
}

func TestPaletteGenerateRandom(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.yaml")
	code, stdout, stderr := runTest(t, map[string]string{"PIART_SEED": "5"},
		"palette", "generate", "-config", noConfig(t), "-provider", "random", "-o", out, "deep", "sea")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if strings.TrimSpace(stdout) != out {
		t.Errorf("stdout = %q", stdout)
	}
	if _, err := piart.LoadPalette(out); err != nil {
		t.Errorf("generated file unreadable: %v", err)
	}
}

func TestPaletteGenerateErrors(t *testing.T) {
	code, _, stderr := runTest(t, nil, "palette", "generate", "-config", noConfig(t), "-provider", "random")
	if code != 1 || !strings.Contains(stderr, "Enter a theme first.") {
		t.Errorf("empty theme: code=%d stderr=%q", code, stderr)
	}
	code, _, stderr = runTest(t, nil, "palette", "generate", "-config", noConfig(t), "-provider", "openai", "forest")
	if code != 1 || !strings.Contains(stderr, "API key is missing or invalid") {
		t.Errorf("missing key: code=%d stderr=%q", code, stderr)
	}
}

func TestPaletteConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "p.json")
	out := filepath.Join(dir, "p.yml")
	pastel, _ := piart.Preset("pastel")
	if err := piart.SavePalette(in, pastel); err != nil {
		t.Fatal(err)
	}
	code, _, stderr := runTest(t, nil, "palette", "convert", in, out)
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	got, err := piart.LoadPalette(out)
	if err != nil || got != pastel {
		t.Errorf("converted palette = %v, %v", got, err)
	}
	if code, _, _ := runTest(t, nil, "palette", "convert", in); code != 2 {
		t.Errorf("missing arg: code=%d", code)
	}
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "piart.toml")
	if err := os.WriteFile(cfgPath, []byte("[view]\nwidth = 20\ncount = 40\n\n[export]\ndir = \""+filepath.ToSlash(dir)+"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	code, out, stderr := runTest(t, map[string]string{"PIART_LOG_LEVEL": "debug"}, "render", "-config", cfgPath)
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(out, filepath.Join(dir, "pi-art-0-40.png")) {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("debug logging not enabled: %q", stderr)
	}
}

func chatServer(t *testing.T, wantKey, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer "+wantKey {
			t.Errorf("Authorization = %q, want key %q", got, wantKey)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPaletteGenerateKeepsFileKey(t *testing.T) {
	mono, _ := piart.Preset("monochrome")
	reply, err := json.Marshal(mono.Map())
	if err != nil {
		t.Fatal(err)
	}
	srv := chatServer(t, "sk-file", string(reply))

	cfgPath := filepath.Join(t.TempDir(), "piart.toml")
	data := "[generator]\nprovider = \"openai\"\napi_key = \"sk-file\"\nbase_url = \"" + srv.URL + "\"\nmax_retries = 0\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{"OPENAI_API_KEY": "sk-env", "API_KEY": "sk-generic"}

	tests := []struct {
		name string
		args []string
	}{
		{"config provider", nil},
		{"provider flag", []string{"-provider", "openai"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"palette", "generate", "-config", cfgPath}, tt.args...)
			args = append(args, "forest")
			code, out, stderr := runTest(t, env, args...)
			if code != 0 {
				t.Fatalf("code=%d stderr=%q", code, stderr)
			}
			p, err := piart.DecodePalette([]byte(out), ".json")
			if err != nil || p != mono {
				t.Errorf("palette = %v, %v", p, err)
			}
		})
	}
}

func TestProviderFlagSelectsKey(t *testing.T) {
	srv := chatServer(t, "sk-openai", `{"0":"#000000","1":"#111111","2":"#222222","3":"#333333","4":"#444444","5":"#555555","6":"#666666","7":"#777777","8":"#888888","9":"#999999"}`)
	cfgPath := filepath.Join(t.TempDir(), "piart.toml")
	data := "[generator]\nbase_url = \"" + srv.URL + "\"\nmax_retries = 0\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{"PIART_PROVIDER": "gemini", "GEMINI_API_KEY": "sk-gemini", "OPENAI_API_KEY": "sk-openai"}
	code, out, stderr := runTest(t, env, "palette", "generate", "-config", cfgPath, "-provider", "openai", "forest")
	if code != 0 {
		t.Fatalf("code=%d stderr=%q", code, stderr)
	}
	if !strings.Contains(out, "#999999") {
		t.Errorf("out = %q", out)
	}
}
