// Package reader loads document content by file format: plain text from
// .txt, .pdf, .docx and .doc files, raw markup from .html and .htm files.
package reader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ZaguanLabs/gotdoc"
)

// Format identifies how a document is read.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
	FormatHTML Format = "html"
)

var extensions = map[string]Format{
	".txt":  FormatText,
	".pdf":  FormatPDF,
	".docx": FormatWord,
	".doc":  FormatWord,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// Document is the content loaded from one file.
type Document struct {
	Path    string
	Format  Format
	Content string
}

// IsHTML reports whether Content is markup.
func (d Document) IsHTML() bool {
	return d.Format == FormatHTML
}

// DetectFormat maps a file extension to its Format.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := extensions[ext]
	if !ok {
		return "", &gotdoc.UnsupportedFormatError{Extension: ext}
	}
	return f, nil
}

// Supported reports whether path has a readable document extension.
func Supported(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Reader is the interface for document loading.
type Reader interface {
	Read(path string) (Document, error)
}

// FileReader reads documents from the local filesystem.
type FileReader struct{}

// Read implements Reader.
func (FileReader) Read(path string) (Document, error) {
	return Read(path)
}

// Read loads path according to its extension, with line endings
// normalized to LF. Unknown extensions fail with
// *gotdoc.UnsupportedFormatError, unreadable files with *gotdoc.ReadError.
func Read(path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}

	var content string
	switch format {
	case FormatText, FormatHTML:
		content, err = readDecoded(path)
	case FormatPDF:
		content, err = readPDF(path)
	case FormatWord:
		content, err = readWord(path)
	}
	if err != nil {
		return Document{}, &gotdoc.ReadError{Path: path, Cause: err}
	}

	return Document{Path: path, Format: format, Content: gotdoc.NormalizeNewlines(content)}, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readDecoded reads a text file as UTF-8, falling back to Latin-1 for
// files that are not valid UTF-8.
func readDecoded(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return decode(data)
}

func decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// Verify FileReader implements Reader
var _ Reader = FileReader{}
