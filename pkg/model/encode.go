package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names understood by Encode.
const (
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
)

// ErrUnknownFormat reports an output format Encode does not support.
var ErrUnknownFormat = errors.New("model: unknown output format")

// Encode serialises values. JSON and YAML sort keys; pretty prints one
// key=value line per top-level key, sorted.
func Encode(values map[string]any, format string) ([]byte, error) {
	if values == nil {
		values = map[string]any{}
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("model: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(values); err != nil {
			return nil, fmt.Errorf("model: encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("model: encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatPretty:
		keys := make([]string, 0, len(values))
		for k := range values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		for _, k := range keys {
			fmt.Fprintf(&buf, "%s=%s\n", k, Format(values[k]))
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}
