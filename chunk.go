package gotdoc

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultTextChunkSize is the character budget for plain-text chunks.
	DefaultTextChunkSize = 1800
	// DefaultHTMLChunkSize is the character budget for batches of HTML elements.
	DefaultHTMLChunkSize = 1500

	// ParagraphSeparator delimits plain-text paragraphs.
	ParagraphSeparator = "\n\n"
)

// GroupBySize packs units, in order, into groups whose summed size stays
// within maxSize. A unit larger than maxSize on its own gets a group of its
// own; units are never split.
func GroupBySize[T any](units []T, size func(T) int, maxSize int) [][]T {
	var groups [][]T
	var current []T
	currentSize := 0

	for _, u := range units {
		n := size(u)
		if currentSize+n > maxSize && len(current) > 0 {
			groups = append(groups, current)
			current = nil
			currentSize = 0
		}
		current = append(current, u)
		currentSize += n
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// NormalizeNewlines rewrites CRLF and bare CR line endings as LF.
func NormalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	return newlineReplacer.Replace(text)
}

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitText splits text on paragraph boundaries into chunks of at most
// maxSize characters. Line endings are normalized first; joining the chunks
// with ParagraphSeparator then reproduces the normalized text exactly. Blank paragraphs travel with the paragraph that follows
// them (or the last one, at the end of the text). Text with no visible
// content yields no chunks.
func SplitText(text string, maxSize int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if maxSize <= 0 {
		maxSize = DefaultTextChunkSize
	}

	units := paragraphUnits(NormalizeNewlines(text))
	sep := utf8.RuneCountInString(ParagraphSeparator)

	// Every unit in a chunk costs its length plus one separator, so a budget of
	// maxSize+sep bounds the joined chunk at maxSize.
	groups := GroupBySize(units, func(u string) int {
		return utf8.RuneCountInString(u) + sep
	}, maxSize+sep)

	chunks := make([]string, len(groups))
	for i, g := range groups {
		chunks[i] = strings.Join(g, ParagraphSeparator)
	}
	return chunks
}

// paragraphUnits splits text on ParagraphSeparator and folds blank pieces
// into their neighbours so every unit carries visible text.
func paragraphUnits(text string) []string {
	parts := strings.Split(text, ParagraphSeparator)

	var units []string
	var pending []string
	for _, part := range parts {
		pending = append(pending, part)
		if strings.TrimSpace(part) == "" {
			continue
		}
		units = append(units, strings.Join(pending, ParagraphSeparator))
		pending = nil
	}

	if len(pending) > 0 && len(units) > 0 {
		last := len(units) - 1
		units[last] = strings.Join(append([]string{units[last]}, pending...), ParagraphSeparator)
	}
	return units
}
