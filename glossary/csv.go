package glossary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/gotdoc"
)

// Column names of the glossary CSV schema.
const (
	ColumnType       = "type"
	ColumnRawName    = "raw_name"
	ColumnTranslated = "translated_name"
	ColumnGender     = "gender"
)

var exportHeader = []string{ColumnType, ColumnRawName, ColumnTranslated, ColumnGender}

// LoadResult describes a successful load.
type LoadResult struct {
	Name    string
	Terms   int
	Skipped int // rows dropped for a missing type, raw_name or translated_name
}

// LoadFile loads a CSV glossary from path. An empty name defaults to the
// file name without extension.
func (s *Store) LoadFile(path, name string) (LoadResult, error) {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, &gotdoc.ReadError{Path: path, Cause: err}
	}
	defer f.Close()

	return s.Load(f, name)
}

// Load parses a CSV glossary with columns type, raw_name, translated_name
// and an optional gender column, and registers it under name. A glossary of
// the same name is replaced. Nothing is registered when the header lacks a
// required column or no row is valid.
func (s *Store) Load(r io.Reader, name string) (LoadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return LoadResult{}, &gotdoc.ValidationError{Message: "glossary file is empty"}
	}
	if err != nil {
		return LoadResult{}, &gotdoc.ValidationError{Message: fmt.Sprintf("invalid glossary header: %v", err)}
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, c := range []string{ColumnType, ColumnRawName, ColumnTranslated} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return LoadResult{}, &gotdoc.ValidationError{
			Message: fmt.Sprintf("glossary must have columns %s; missing %s",
				strings.Join(exportHeader[:3], ", "), strings.Join(missing, ", ")),
		}
	}

	field := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	g := newGlossary(name)
	skipped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				continue
			}
			return LoadResult{}, &gotdoc.ReadError{Path: name, Cause: err}
		}

		term := field(rec, ColumnRawName)
		translation := field(rec, ColumnTranslated)
		category := field(rec, ColumnType)
		if term == "" || translation == "" || category == "" {
			skipped++
			continue
		}

		g.set(term, Entry{
			Translation: translation,
			Category:    category,
			Gender:      field(rec, ColumnGender),
		})
	}

	if g.Len() == 0 {
		return LoadResult{}, &gotdoc.ValidationError{
			Message: fmt.Sprintf("glossary %q has no valid rows (%d skipped)", name, skipped),
		}
	}

	s.add(g)
	return LoadResult{Name: name, Terms: g.Len(), Skipped: skipped}, nil
}

// ExportActive writes the active glossary in the four-column load schema,
// reflecting any edits made since it was loaded.
func (s *Store) ExportActive(w io.Writer) error {
	s.mu.Lock()
	g, err := s.activeLocked()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	rows := make([][]string, 0, len(g.order)+1)
	rows = append(rows, exportHeader)
	for _, term := range g.order {
		e := g.terms[term]
		rows = append(rows, []string{e.Category, term, e.Translation, e.Gender})
	}
	s.mu.Unlock()

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export glossary: %w", err)
	}
	return nil
}

// ExportActiveFile writes the active glossary to path.
func (s *Store) ExportActiveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &gotdoc.WriteError{Path: path, Cause: err}
	}

	if err := s.ExportActive(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &gotdoc.WriteError{Path: path, Cause: err}
	}
	return nil
}
