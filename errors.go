package gotdoc

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindConfiguration
	KindUnsupportedFormat
	KindValidation
	KindRead
	KindTranslationFailed
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUnsupportedFormat:
		return "unsupported_format"
	case KindValidation:
		return "validation"
	case KindRead:
		return "read"
	case KindTranslationFailed:
		return "translation_failed"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

var (
	// ErrFolderNotFound is returned when the input folder does not exist.
	ErrFolderNotFound = errors.New("folder does not exist")
	// ErrNoDocuments is returned when a folder holds nothing to translate.
	ErrNoDocuments = errors.New("no translatable documents found in folder")
)

// ConfigurationError indicates missing or malformed credentials or settings.
type ConfigurationError struct {
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError is returned for file extensions no reader handles.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q (supported: .txt, .pdf, .docx, .doc, .html, .htm)", e.Extension)
}

// ValidationError indicates malformed glossary input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ReadError indicates a document that exists but could not be read.
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError indicates an output file could not be written.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// TranslationFailedError is terminal for the chunk and the document that
// contains it. It is returned only after the retry budget is spent.
type TranslationFailedError struct {
	Attempts int
	Cause    error
}

func (e *TranslationFailedError) Error() string {
	if e.Attempts == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("translation failed: %v", e.Cause)
		}
		return "translation failed"
	}
	if e.Cause != nil {
		return fmt.Sprintf("translation failed after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("translation failed after %d attempts", e.Attempts)
}

func (e *TranslationFailedError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a failed call to a completion backend.
//
// Retryable records the backend's own view of whether the failure looks
// transient. It is informational only: WithRetry retries every failure
// regardless of it.
type ProviderError struct {
	Provider  string
	Message   string
	Cause     error
	Retryable bool
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error (%s): %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error (%s): %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ProcessorError indicates a content processing failure (parse error, etc.).
type ProcessorError struct {
	Message     string
	Cause       error
	ContentType string
}

func (e *ProcessorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("processor error (%s): %s: %v", e.ContentType, e.Message, e.Cause)
	}
	return fmt.Sprintf("processor error (%s): %s", e.ContentType, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	return e.Cause
}

// rejectedOutputError marks a model response that came back but failed the
// acceptance check. It is retried on the shorter delay.
type rejectedOutputError struct {
	Output string
}

func (e *rejectedOutputError) Error() string {
	out := e.Output
	if len(out) > 40 {
		out = out[:40] + "..."
	}
	return fmt.Sprintf("rejected model output %q", out)
}

// KindOf classifies err. Translation failures take precedence over whatever
// they wrap.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var (
		failed      *TranslationFailedError
		config      *ConfigurationError
		unsupported *UnsupportedFormatError
		validation  *ValidationError
		read        *ReadError
		write       *WriteError
	)

	switch {
	case errors.As(err, &failed):
		return KindTranslationFailed
	case errors.As(err, &unsupported):
		return KindUnsupportedFormat
	case errors.As(err, &config):
		return KindConfiguration
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &read):
		return KindRead
	case errors.As(err, &write):
		return KindWrite
	default:
		return KindUnknown
	}
}
