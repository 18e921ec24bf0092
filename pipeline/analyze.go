package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZaguanLabs/gotdoc"
)

// File is one entry found by Analyze.
type File struct {
	Path string
	Name string
	Ext  string // lower-cased, with the leading dot
	Size int64
}

// Analysis classifies the top-level entries of a folder.
type Analysis struct {
	Folder     string
	Glossaries []File // .csv
	HTML       []File // .html, .htm
	Documents  []File // .txt, .pdf, .docx, .doc
	Other      []File // ignored
	Subfolders []string
	TotalSize  int64
}

// Analyze scans folder without descending into subfolders. Entries are
// visited in name order.
func Analyze(folder string) (*Analysis, error) {
	info, err := os.Stat(folder)
	if errors.Is(err, os.ErrNotExist) || (err == nil && !info.IsDir()) {
		return nil, gotdoc.ErrFolderNotFound
	}
	if err != nil {
		return nil, &gotdoc.ReadError{Path: folder, Cause: err}
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, &gotdoc.ReadError{Path: folder, Cause: err}
	}

	a := &Analysis{Folder: folder}
	for _, entry := range entries {
		path := filepath.Join(folder, entry.Name())
		if entry.IsDir() {
			a.Subfolders = append(a.Subfolders, path)
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}

		f := File{
			Path: path,
			Name: entry.Name(),
			Ext:  strings.ToLower(filepath.Ext(entry.Name())),
			Size: fi.Size(),
		}
		a.TotalSize += f.Size

		switch f.Ext {
		case ".csv":
			a.Glossaries = append(a.Glossaries, f)
		case ".html", ".htm":
			a.HTML = append(a.HTML, f)
		case ".txt", ".pdf", ".docx", ".doc":
			a.Documents = append(a.Documents, f)
		default:
			a.Other = append(a.Other, f)
		}
	}
	return a, nil
}

// CountByExt tallies Documents and HTML by extension.
func (a *Analysis) CountByExt() map[string]int {
	counts := make(map[string]int)
	for _, f := range a.Documents {
		counts[f.Ext]++
	}
	for _, f := range a.HTML {
		counts[f.Ext]++
	}
	return counts
}

var typeWeights = map[string]int{
	".html": 4,
	".htm":  4,
	".txt":  3,
	".docx": 2,
	".doc":  2,
	".pdf":  1,
}

var chapterMarkers = []string{"chapter", "화", "episode", "ch"}

// Priority scores a document for processing order: 100 for a chapter or
// episode marker in the name, plus a weight for the file type.
func Priority(f File) int {
	score := typeWeights[f.Ext]
	name := strings.ToLower(f.Name)
	for _, marker := range chapterMarkers {
		if strings.Contains(name, marker) {
			return 100 + score
		}
	}
	return score
}

// SortByPriority orders files by descending Priority. Equal scores keep
// their input order.
func SortByPriority(files []File) []File {
	sorted := slices.Clone(files)
	slices.SortStableFunc(sorted, func(a, b File) int {
		return Priority(b) - Priority(a)
	})
	return sorted
}
