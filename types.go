package gotdoc

import "time"

// ElementKind describes what role a piece of text plays in its document.
type ElementKind string

const (
	// KindTitle is the document <title>.
	KindTitle ElementKind = "title"
	// KindHeading is an <h1>..<h6> heading.
	KindHeading ElementKind = "heading"
	// KindParagraph is a paragraph of body text. Plain text chunks use it too.
	KindParagraph ElementKind = "paragraph"
	// KindText is free text inside a block container.
	KindText ElementKind = "text"
)

// Description returns the phrase used for the kind in translation prompts.
func (k ElementKind) Description() string {
	switch k {
	case KindTitle:
		return "page title"
	case KindHeading:
		return "section heading"
	case KindParagraph:
		return "story content"
	default:
		return "general text"
	}
}

// TranslateRequest is one chunk of source text sent for translation.
type TranslateRequest struct {
	Text     string      // Source text (one or more newline-separated units)
	Glossary string      // Formatted glossary block, empty for none
	Context  string      // Free-form hint about the work being translated
	Kind     ElementKind // Role of the text, phrased into the prompt
}

// CompletionRequest is a single chat-completion call against a remote model.
type CompletionRequest struct {
	SystemPrompt     string
	UserPrompt       string
	MaxTokens        int
	Temperature      float32
	TopP             float32
	PresencePenalty  float32
	FrequencyPenalty float32
}

// DocumentResult is the outcome of processing a single document.
type DocumentResult struct {
	FileName        string
	Success         bool
	OutputFile      string        // Base name of the written translation
	OutputPath      string        // Full path of the written translation
	CharCount       int           // Characters read from the source document
	TranslationTime time.Duration // Time spent translating (excludes reading)
	Method          string        // "text" or "HTML"
	Err             error
	ErrKind         ErrorKind
}

// FailedDocument names a document that could not be translated.
type FailedDocument struct {
	File string
	Err  error
	Kind ErrorKind
}

// RunResult aggregates every document processed by one folder run.
type RunResult struct {
	RunID          string
	Processed      []DocumentResult
	Failed         []FailedDocument
	TotalChars     int
	TotalTime      time.Duration
	OutputFolder   string
	GlossariesUsed []string
	SourceLang     string
	TargetLang     string
	Method         string
}

// IgnoredTags contains HTML tags whose content is never translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
