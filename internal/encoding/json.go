// Package encoding provides utilities for encoding and decoding data.
package encoding

import (
	"encoding/json"
	"fmt"
	"io"
)

// Decode unmarshals the textual value into T.
func Decode[T any](value string) (T, error) {
	var result T
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return result, nil
}

// Encode marshals value into its compact textual form.
func Encode[T any](value T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return string(data), nil
}

// WriteIndent writes value to w as indented JSON followed by a newline.
func WriteIndent(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(value)
}
