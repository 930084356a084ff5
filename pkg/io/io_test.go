package io

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lmarten/coursemap/pkg/catalog"
)

func TestWriteJSONFormat(t *testing.T) {
	c, err := catalog.Parse("CS-101\nCS-102\nMATH-201")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var sb strings.Builder
	if err := WriteJSON(c, &sb); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	want := `{
  "CS": [
    "101",
    "102"
  ],
  "MATH": [
    "201"
  ]
}
`
	if sb.String() != want {
		t.Errorf("WriteJSON() =\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	c, err := catalog.Parse("ZOO-400\nCS-101\nZOO-400\nALG-200")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "subject_data.json")
	if err := ExportJSON(c, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if !c.Equal(back) {
		t.Error("imported catalog not Equal to exported one")
	}
}

func TestExportJSONOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subject_data.json")
	if err := os.WriteFile(path, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := catalog.Parse("CS-101")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := ExportJSON(c, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale") {
		t.Error("ExportJSON() did not overwrite the existing file")
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("ImportJSON() error = nil for missing file")
	}
}

func TestReadJSONInvalid(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`["not", "an", "object"]`)); err == nil {
		t.Error("ReadJSON() error = nil for non-object input")
	}
}
