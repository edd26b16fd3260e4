package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SaveJSON writes a value as pretty-printed JSON, atomically. The
// payload is encoded to a temp file next to the target and renamed
// into place, so readers never observe a partial file.
//
// Encoding does not escape HTML characters: rule operators like "<="
// must survive as-is. Output is 2-space indented with a trailing
// newline.
func SaveJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	suffix, err := gonanoid.New(8)
	if err != nil {
		return fmt.Errorf("generate temp suffix: %w", err)
	}
	tempPath := fmt.Sprintf("%s.tmp.%s", path, suffix)

	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// EncodeJSON renders a value the way saved payloads look on disk.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	// Encode already appends a single trailing newline.
	return buf.Bytes(), nil
}
