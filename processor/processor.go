// Package processor translates whole documents chunk by chunk: plain text
// split on paragraph boundaries, and HTML mapped element by element back
// onto its original markup.
package processor

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gotdoc"
)

// Processor translates the content of one document.
type Processor interface {
	Translate(ctx context.Context, content, hint string) (string, error)
	ContentType() string
}

type options struct {
	glossary    gotdoc.Glossary
	chunkSize   int
	ignoredTags map[string]bool
	logger      zerolog.Logger
}

// Option configures a processor.
type Option func(*options)

// WithGlossary sets the glossary whose terms are added to every prompt and
// whose usage is tracked per chunk.
func WithGlossary(g gotdoc.Glossary) Option {
	return func(o *options) {
		o.glossary = g
	}
}

// WithChunkSize overrides the default character budget per request.
func WithChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithIgnoredTags replaces the set of HTML tags whose subtrees are never
// translated.
func WithIgnoredTags(tags []string) Option {
	return func(o *options) {
		ignored := make(map[string]bool, len(tags))
		for _, tag := range tags {
			ignored[strings.ToLower(tag)] = true
		}
		o.ignoredTags = ignored
	}
}

// WithLogger sets the logger for per-chunk progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(defaultChunk int, opts []Option) options {
	o := options{
		chunkSize:   defaultChunk,
		ignoredTags: gotdoc.IgnoredTags,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) glossaryBlock() string {
	if o.glossary == nil {
		return ""
	}
	return o.glossary.FormatForPrompt()
}

func (o options) trackUsage(source, translated string) {
	if o.glossary != nil {
		o.glossary.TrackUsage(source, translated)
	}
}
