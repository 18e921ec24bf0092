package processor

import (
	"context"
	"strings"

	"github.com/ZaguanLabs/gotdoc"
)

// upperTranslator romanizes known lines and uppercases the result.
type upperTranslator struct {
	romanized map[string]string
	requests  []gotdoc.TranslateRequest
	lines     int // when > 0, only the first lines lines are returned
	err       error
}

func (u *upperTranslator) Translate(ctx context.Context, req gotdoc.TranslateRequest) (string, error) {
	u.requests = append(u.requests, req)
	if u.err != nil {
		return "", u.err
	}

	parts := strings.Split(req.Text, "\n")
	if u.lines > 0 && u.lines < len(parts) {
		parts = parts[:u.lines]
	}
	for i, part := range parts {
		if r, ok := u.romanized[part]; ok {
			part = r
		}
		parts[i] = strings.ToUpper(part)
	}
	return strings.Join(parts, "\n"), nil
}

type recordingGlossary struct {
	block string
	pairs [][2]string
}

func (g *recordingGlossary) FormatForPrompt() string {
	return g.block
}

func (g *recordingGlossary) TrackUsage(source, translated string) {
	g.pairs = append(g.pairs, [2]string{source, translated})
}
