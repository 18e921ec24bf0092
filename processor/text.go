package processor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/ZaguanLabs/gotdoc"
)

// TextProcessor translates plain text in paragraph-aligned chunks.
type TextProcessor struct {
	translator gotdoc.ChunkTranslator
	opts       options
}

// NewTextProcessor creates a TextProcessor with a default chunk budget of
// gotdoc.DefaultTextChunkSize characters.
func NewTextProcessor(translator gotdoc.ChunkTranslator, opts ...Option) *TextProcessor {
	return &TextProcessor{
		translator: translator,
		opts:       buildOptions(gotdoc.DefaultTextChunkSize, opts),
	}
}

// Translate translates each chunk in order and rejoins the results with a
// blank line. The first failed chunk aborts the document.
func (p *TextProcessor) Translate(ctx context.Context, text, hint string) (string, error) {
	chunks := gotdoc.SplitText(text, p.opts.chunkSize)
	if len(chunks) == 0 {
		return "", nil
	}

	glossary := p.opts.glossaryBlock()
	translated := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		p.opts.logger.Debug().
			Int("chunk", i+1).
			Int("chunks", len(chunks)).
			Int("chars", utf8.RuneCountInString(chunk)).
			Msg("translating text chunk")

		out, err := p.translator.Translate(ctx, gotdoc.TranslateRequest{
			Text:     chunk,
			Glossary: glossary,
			Context:  hint,
			Kind:     gotdoc.KindParagraph,
		})
		if err != nil {
			return "", err
		}

		p.opts.trackUsage(chunk, out)
		translated = append(translated, out)
	}

	return strings.Join(translated, gotdoc.ParagraphSeparator), nil
}

// ContentType returns "text".
func (p *TextProcessor) ContentType() string {
	return "text"
}

// Verify TextProcessor implements Processor
var _ Processor = (*TextProcessor)(nil)
