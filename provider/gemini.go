package provider

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/ZaguanLabs/gotdoc"
)

// DefaultGeminiModel is used when GeminiConfig.Model is empty.
const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional API base URL override
}

// GeminiProvider implements Completer using the Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, &gotdoc.ConfigurationError{Message: "failed to create Gemini client", Cause: err}
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// Complete implements Completer.
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.UserPrompt), generateConfig(req))
	if err != nil {
		return "", &gotdoc.ProviderError{
			Provider:  NameGemini,
			Message:   "generate content failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	return extractText(result), nil
}

func generateConfig(req CompletionRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		TopP:             genai.Ptr(req.TopP),
		PresencePenalty:  genai.Ptr(req.PresencePenalty),
		FrequencyPenalty: genai.Ptr(req.FrequencyPenalty),
		MaxOutputTokens:  int32(req.MaxTokens),
	}
	if req.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	return cfg
}

// extractText concatenates the text parts of the first candidate. A
// response without content yields "".
func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

// Verify GeminiProvider implements Completer
var _ Completer = (*GeminiProvider)(nil)
