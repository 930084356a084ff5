package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lmarten/coursemap/pkg/catalog"
)

// ReadJSON decodes a JSON catalog from r.
//
// The input must be a JSON object mapping subject codes to arrays of
// course-number strings:
//
//	{
//	  "CS": ["101", "102"],
//	  "MATH": ["201"]
//	}
//
// Key order in the document becomes subject order in the catalog, and the
// arrays keep their element order, so a catalog written with [WriteJSON]
// reads back Equal to the original.
//
// ReadJSON returns an error if the JSON is malformed, if the top-level
// value is not an object of string arrays, or if a subject key appears
// twice. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*catalog.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	c := catalog.New()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return c, nil
}

// ImportJSON reads a JSON file at path and returns the decoded catalog.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
