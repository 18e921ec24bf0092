package reader

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphPattern = regexp.MustCompile(`(?s)<w:p(?:\s[^>]*)?/>|<w:p(?:\s[^>]*)?>.*?</w:p>`)
	runPattern       = regexp.MustCompile(`(?s)<w:t(?:\s[^>]*)?>([^<]*)</w:t>|<w:tab/>|<w:br/>`)
)

// readWord returns the text of every paragraph in the document body, one
// paragraph per line.
func readWord(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open Word document: %w", err)
	}
	defer r.Close()

	return wordText(r.Editable().GetContent()), nil
}

// wordText extracts paragraph text from WordprocessingML body XML.
func wordText(xml string) string {
	var lines []string
	for _, p := range paragraphPattern.FindAllString(xml, -1) {
		var sb strings.Builder
		for _, m := range runPattern.FindAllStringSubmatch(p, -1) {
			switch m[0] {
			case "<w:tab/>":
				sb.WriteString("\t")
			case "<w:br/>":
				sb.WriteString("\n")
			default:
				sb.WriteString(html.UnescapeString(m[1]))
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
