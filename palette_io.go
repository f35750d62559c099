package piart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for palette files whose extension is not
// .json, .yaml or .yml.
var ErrUnsupportedFormat = errors.New("piart: unsupported palette format")

// MarshalJSON encodes the palette as {"0":"#rrggbb",...,"9":"#rrggbb"}.
func (p Palette) MarshalJSON() ([]byte, error) {
	out := []byte("{}")
	var err error
	for d, c := range p {
		// The colon forces an object key instead of an array index.
		out, err = sjson.SetBytes(out, ":"+strconv.Itoa(d), c.Hex())
		if err != nil {
			return nil, fmt.Errorf("piart: encode palette: %w", err)
		}
	}
	return out, nil
}

// UnmarshalJSON decodes a digit-keyed JSON object of hex colors.
func (p *Palette) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("piart: decode palette: invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return fmt.Errorf("%w: not a JSON object", ErrIncompletePalette)
	}
	m := make(map[string]string)
	var typeErr error
	root.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.String {
			typeErr = fmt.Errorf("digit %s: %w: %s", key.String(), ErrInvalidColor, value.Raw)
			return false
		}
		m[key.String()] = value.String()
		return true
	})
	if typeErr != nil {
		return typeErr
	}
	pal, err := PaletteFromMap(m)
	if err != nil {
		return err
	}
	*p = pal
	return nil
}

// MarshalYAML encodes the palette as a mapping with quoted digit keys and
// quoted colors, since a bare '#' would start a YAML comment.
func (p Palette) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for d, c := range p {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: strconv.Itoa(d)},
			&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: c.Hex()},
		)
	}
	return node, nil
}

// UnmarshalYAML decodes a digit-keyed YAML mapping of hex colors.
func (p *Palette) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) == 1 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: not a YAML mapping", ErrIncompletePalette)
	}
	m := make(map[string]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		m[value.Content[i].Value] = value.Content[i+1].Value
	}
	pal, err := PaletteFromMap(m)
	if err != nil {
		return err
	}
	*p = pal
	return nil
}

// DecodePalette parses palette data in the format implied by ext
// (".json", ".yaml" or ".yml").
func DecodePalette(data []byte, ext string) (Palette, error) {
	var p Palette
	switch strings.ToLower(ext) {
	case ".json":
		if err := p.UnmarshalJSON(data); err != nil {
			return Palette{}, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Palette{}, fmt.Errorf("piart: decode palette: %w", err)
		}
	default:
		return Palette{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return p, nil
}

// EncodePalette serializes p in the format implied by ext.
func EncodePalette(p Palette, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := p.MarshalJSON()
		if err != nil {
			return nil, err
		}
		return []byte(gjson.GetBytes(data, "@pretty").Raw), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("piart: encode palette: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// LoadPalette reads a palette file, choosing the decoder by extension.
func LoadPalette(path string) (Palette, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Palette{}, fmt.Errorf("piart: read palette: %w", err)
	}
	p, err := DecodePalette(data, filepath.Ext(path))
	if err != nil {
		return Palette{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// SavePalette writes p to path, choosing the encoder by extension.
func SavePalette(path string, p Palette) error {
	data, err := EncodePalette(p, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return fmt.Errorf("piart: write palette: %w", err)
	}
	return nil
}
