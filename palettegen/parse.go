package palettegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/gogpu/piart"
)

// ParseResponse extracts a palette from model output. The JSON object may
// be wrapped in prose or a Markdown code fence; keys other than "0".."9"
// are ignored.
func ParseResponse(text string) (piart.Palette, error) {
	var p piart.Palette

	obj := extractObject(text)
	if obj == "" || !gjson.Valid(obj) {
		return p, fmt.Errorf("%w: no JSON object in response", ErrMalformedResponse)
	}
	root := gjson.Parse(obj)
	if !root.IsObject() {
		return p, fmt.Errorf("%w: response is not an object", ErrMalformedResponse)
	}

	for d := range p {
		key := strconv.Itoa(d)
		v := root.Get(key)
		if !v.Exists() {
			return p, fmt.Errorf("%w: missing digit %s", ErrMalformedResponse, key)
		}
		if v.Type != gjson.String {
			return p, fmt.Errorf("%w: digit %s is %s, want a string", ErrMalformedResponse, key, v.Type)
		}
		c, err := piart.ParsePaletteColor(v.String())
		if err != nil {
			return p, fmt.Errorf("%w: digit %s: %w", ErrMalformedResponse, key, err)
		}
		p[d] = c
	}
	return p, nil
}

// extractObject returns the outermost {...} span of text.
func extractObject(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
