// Package store persists configuration and user records as flat JSON
// documents. Each document is rewritten in full on every save, and all
// read-modify-write cycles are serialized behind a per-store mutex so
// concurrent mutations cannot lose updates.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// readDocument loads a JSON document from path into dst. A missing file
// is not an error; the caller's dst keeps its default value.
func readDocument(path string, dst any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("malformed document %s: %w", path, err)
	}
	return true, nil
}

// writeDocument rewrites the document at path in full
func writeDocument(path string, doc any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
