// Package pipeline drives document translation: one document at a time
// through Pipeline, or a whole folder through Orchestrator.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/ZaguanLabs/gotdoc/glossary"
	"github.com/ZaguanLabs/gotdoc/processor"
	"github.com/ZaguanLabs/gotdoc/reader"
)

// Timestamp layout used in output file and folder names.
const stampLayout = "20060102_150405"

// Method labels recorded on each DocumentResult.
const (
	MethodText = "text"
	MethodHTML = "HTML"
)

// Job describes the translation direction and hint for a run.
type Job struct {
	SourceLang string
	TargetLang string
	Context    string
}

// Pipeline translates single documents: read, translate as text or HTML,
// write, then commit glossary usage.
type Pipeline struct {
	translator    gotdoc.ChunkTranslator
	glossaries    *glossary.Store
	reader        reader.Reader
	textChunkSize int
	htmlChunkSize int
	logger        zerolog.Logger
	now           func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithGlossaries sets the glossary store consulted for every chunk.
func WithGlossaries(store *glossary.Store) Option {
	return func(p *Pipeline) {
		if store != nil {
			p.glossaries = store
		}
	}
}

// WithReader replaces the document reader.
func WithReader(r reader.Reader) Option {
	return func(p *Pipeline) {
		p.reader = r
	}
}

// WithChunkSizes overrides the text and HTML chunk budgets. Non-positive
// values keep the defaults.
func WithChunkSizes(text, html int) Option {
	return func(p *Pipeline) {
		if text > 0 {
			p.textChunkSize = text
		}
		if html > 0 {
			p.htmlChunkSize = html
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock sets the time source for output names and timings.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a Pipeline translating through translator.
func New(translator gotdoc.ChunkTranslator, opts ...Option) *Pipeline {
	p := &Pipeline{
		translator:    translator,
		glossaries:    glossary.NewStore(),
		reader:        reader.FileReader{},
		textChunkSize: gotdoc.DefaultTextChunkSize,
		htmlChunkSize: gotdoc.DefaultHTMLChunkSize,
		logger:        zerolog.Nop(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Glossaries returns the store the pipeline translates with.
func (p *Pipeline) Glossaries() *glossary.Store {
	return p.glossaries
}

// ProcessDocument translates the document at path and writes the result
// into translationsDir. Failures are reported in the result, never as a
// partial output file.
func (p *Pipeline) ProcessDocument(ctx context.Context, path string, job Job, translationsDir string) gotdoc.DocumentResult {
	result := gotdoc.DocumentResult{FileName: filepath.Base(path)}

	doc, err := p.reader.Read(path)
	if err != nil {
		return failed(result, err)
	}
	result.CharCount = utf8.RuneCountInString(doc.Content)

	proc := p.processorFor(doc)
	result.Method = MethodText
	if doc.IsHTML() {
		result.Method = MethodHTML
	}

	p.logger.Info().
		Str("file", result.FileName).
		Str("method", result.Method).
		Int("chars", result.CharCount).
		Msg("translating document")

	start := p.now()
	translated, err := proc.Translate(ctx, doc.Content, job.Context)
	result.TranslationTime = p.now().Sub(start)
	if err != nil {
		p.glossaries.DiscardUsage()
		p.logger.Error().Err(err).Str("file", result.FileName).Msg("document translation failed")
		return failed(result, err)
	}

	outPath := filepath.Join(translationsDir, p.outputName(doc, job, start))
	if err := os.WriteFile(outPath, []byte(translated), 0o644); err != nil {
		p.glossaries.DiscardUsage()
		return failed(result, &gotdoc.WriteError{Path: outPath, Cause: err})
	}

	if n := p.glossaries.CommitUsage(); n > 0 {
		p.logger.Debug().Str("file", result.FileName).Int("terms", n).Msg("glossary usage committed")
	}

	result.Success = true
	result.OutputPath = outPath
	result.OutputFile = filepath.Base(outPath)
	return result
}

func (p *Pipeline) processorFor(doc reader.Document) processor.Processor {
	opts := []processor.Option{
		processor.WithGlossary(p.glossaries),
		processor.WithLogger(p.logger),
	}
	if doc.IsHTML() {
		return processor.NewHTMLProcessor(p.translator, append(opts, processor.WithChunkSize(p.htmlChunkSize))...)
	}
	return processor.NewTextProcessor(p.translator, append(opts, processor.WithChunkSize(p.textChunkSize))...)
}

// outputName keeps HTML file names; everything else becomes
// {stem}_{src}_to_{tgt}_{stamp}.txt.
func (p *Pipeline) outputName(doc reader.Document, job Job, at time.Time) string {
	base := filepath.Base(doc.Path)
	if doc.IsHTML() {
		return base
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_" + job.SourceLang + "_to_" + job.TargetLang + "_" + at.Format(stampLayout) + ".txt"
}

func failed(result gotdoc.DocumentResult, err error) gotdoc.DocumentResult {
	result.Success = false
	result.Err = err
	result.ErrKind = gotdoc.KindOf(err)
	return result
}
