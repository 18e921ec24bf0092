// Package provider implements completion backends for the translation
// client: OpenAI-compatible endpoints, Azure OpenAI, Azure AI model
// inference endpoints and Google Gemini.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/gotdoc"
)

// Completer is an alias to the main package interface.
type Completer = gotdoc.Completer

// CompletionRequest is an alias to the main package type.
type CompletionRequest = gotdoc.CompletionRequest

// Backend names accepted by New.
const (
	NameOpenAI         = "openai"
	NameAzure          = "azure"
	NameAzureInference = "azure-inference"
	NameGemini         = "gemini"
	NameMock           = "mock"
)

// Defaults for Azure endpoints.
const (
	DefaultAzureModel = "DeepSeek-V3-0324"
	DefaultAPIVersion = "2024-05-01-preview"
)

// Config selects and configures a backend.
type Config struct {
	Name        string
	Credentials gotdoc.Credentials
	Model       string // backend default when empty
	APIVersion  string // Azure only
}

// New creates the backend named by cfg.Name.
func New(ctx context.Context, cfg Config) (Completer, error) {
	switch strings.ToLower(cfg.Name) {
	case NameOpenAI:
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.Credentials.APIKey,
			BaseURL: cfg.Credentials.Endpoint,
			Model:   cfg.Model,
		}), nil
	case NameAzure:
		return NewAzureProvider(AzureConfig{
			APIKey:     cfg.Credentials.APIKey,
			Endpoint:   cfg.Credentials.Endpoint,
			Model:      cfg.Model,
			APIVersion: cfg.APIVersion,
		}), nil
	case NameAzureInference, "":
		return NewAzureInferenceProvider(AzureConfig{
			APIKey:     cfg.Credentials.APIKey,
			Endpoint:   cfg.Credentials.Endpoint,
			Model:      cfg.Model,
			APIVersion: cfg.APIVersion,
		}), nil
	case NameGemini:
		return NewGeminiProvider(ctx, GeminiConfig{
			APIKey:  cfg.Credentials.APIKey,
			BaseURL: cfg.Credentials.Endpoint,
			Model:   cfg.Model,
		})
	case NameMock:
		return NewMockProvider(), nil
	default:
		return nil, &gotdoc.ConfigurationError{Message: fmt.Sprintf("unknown provider %q", cfg.Name)}
	}
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"connection reset",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
