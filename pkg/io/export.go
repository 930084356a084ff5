package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lmarten/coursemap/pkg/catalog"
)

// WriteJSON encodes a catalog as JSON and writes it to w.
// The output is a single object with one key per subject in catalog order,
// indented with two spaces. This format can be re-imported with [ReadJSON]
// for round-trip processing.
func WriteJSON(c *catalog.Catalog, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a catalog to a JSON file at path, overwriting any
// existing file. This is a convenience wrapper around [WriteJSON] for
// file-based output.
func ExportJSON(c *catalog.Catalog, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(c, f)
}
