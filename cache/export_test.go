package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestExporter_Export(t *testing.T) {
	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)
	c.Set(ctx, "key2", "value2")
	c.Set(ctx, "key1", "value1")

	exporter := NewExporter(c)
	exporter.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	if err := exporter.Export(ctx, &buf, map[string]string{"direction": "ko->en"}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}

	if export.Version != "1.0" {
		t.Errorf("Expected version 1.0, got %s", export.Version)
	}
	if export.ExportedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("unexpected timestamp %s", export.ExportedAt)
	}
	if !strings.HasPrefix(export.Generator, "gotdoc/") {
		t.Errorf("unexpected generator %q", export.Generator)
	}
	if len(export.Entries) != 2 || export.Entries[0].Key != "key1" {
		t.Errorf("expected 2 entries sorted by key, got %v", export.Entries)
	}
	if export.Metadata["direction"] != "ko->en" {
		t.Errorf("Expected metadata direction, got %v", export.Metadata)
	}
}

func TestImporter_Import(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"exported_at": "2024-01-01T00:00:00Z",
		"entries": [
			{"key": "key1", "value": "value1"},
			{"key": "key2", "value": "value2"}
		],
		"metadata": {"direction": "ko->en"}
	}`

	ctx := context.Background()
	c := NewInMemoryCache(time.Hour)

	result, err := NewImporter(c).Import(ctx, strings.NewReader(jsonData))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Imported != 2 || result.Failed != 0 {
		t.Errorf("unexpected result %+v", result)
	}
	if result.Metadata["direction"] != "ko->en" {
		t.Errorf("unexpected metadata %v", result.Metadata)
	}
	if val, ok := c.Get(ctx, "key2"); !ok || val != "value2" {
		t.Errorf("key2 not imported")
	}
}

func TestExportImport_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.json")

	src := NewInMemoryCache(0)
	src.Set(ctx, "a", "Lee Si-heon drew his sword.")
	src.Set(ctx, "b", "The World Tree shook.")

	if err := NewExporter(src).ExportToFile(ctx, path, nil); err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	dst := NewInMemoryCache(0)
	result, err := NewImporter(dst).ImportFromFile(ctx, path)
	if err != nil {
		t.Fatalf("ImportFromFile failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("expected 2 imported, got %d", result.Imported)
	}

	got, _ := dst.Entries(ctx)
	want, _ := src.Entries(ctx)
	for k, v := range want {
		if got[k] != v {
			t.Errorf("entry %q = %q, want %q", k, got[k], v)
		}
	}
}

func TestExporter_EmptyCache(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExporter(NewInMemoryCache(0)).Export(context.Background(), &buf, nil); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var export ExportFormat
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("Failed to parse export: %v", err)
	}
	if len(export.Entries) != 0 {
		t.Errorf("Expected 0 entries, got %d", len(export.Entries))
	}
}

func TestImporter_InvalidJSON(t *testing.T) {
	_, err := NewImporter(NewInMemoryCache(0)).Import(context.Background(), strings.NewReader("not json"))
	if err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestImporter_MissingFile(t *testing.T) {
	_, err := NewImporter(NewInMemoryCache(0)).ImportFromFile(context.Background(), filepath.Join(t.TempDir(), "none.json"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
