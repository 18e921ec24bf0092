package gotdoc

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// metaCommentary lists phrases that mark a line as commentary about the
// translation rather than translated text. Matched case-insensitively.
var metaCommentary = []string{
	"english translation:",
	"translation:",
	"here is the",
	"the translation is",
	"korean text:",
	"context:",
	"original:",
	"note:",
	"important:",
	"here's the translation:",
	"the english version:",
	"translated text:",
	"improved translation:",
	"here is your translation:",
}

var labelPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^[Tt]ranslation:\s*`),
	regexp.MustCompile(`^[Ee]nglish:\s*`),
	regexp.MustCompile(`^[Tt]ranslated:\s*`),
}

// CleanOutput strips meta-commentary lines, blank lines and leading labels
// from a model response.
func CleanOutput(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isMetaCommentary(line) {
			continue
		}
		kept = append(kept, line)
	}

	result := strings.Join(kept, "\n")
	for _, re := range labelPrefixes {
		result = re.ReplaceAllString(result, "")
	}
	return strings.TrimSpace(result)
}

func isMetaCommentary(line string) bool {
	lower := strings.ToLower(line)
	for _, pattern := range metaCommentary {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// acceptable reports whether a cleaned response is usable as a translation.
func acceptable(cleaned string) bool {
	return cleaned != "" &&
		utf8.RuneCountInString(cleaned) > 5 &&
		!strings.HasPrefix(cleaned, "Translation")
}
