package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Completer over the chat-completions API. The
// same wire format serves OpenAI, Azure OpenAI and Azure AI model
// inference endpoints.
type OpenAIProvider struct {
	client *openai.Client
	name   string
	model  string
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string // OpenAI API key
	Model   string // Model to use (default: "gpt-4o-mini")
	BaseURL string // Custom base URL (optional)
}

// AzureConfig holds configuration for the Azure providers.
type AzureConfig struct {
	APIKey     string
	Endpoint   string
	Model      string // Model or deployment name (default: DefaultAzureModel)
	APIVersion string // default: DefaultAPIVersion
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   NameOpenAI,
		model:  model,
	}
}

// NewAzureProvider creates a provider for an Azure OpenAI resource.
func NewAzureProvider(cfg AzureConfig) *OpenAIProvider {
	cfg = cfg.withDefaults()

	config := openai.DefaultAzureConfig(cfg.APIKey, strings.TrimRight(cfg.Endpoint, "/"))
	config.APIVersion = cfg.APIVersion

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   NameAzure,
		model:  cfg.Model,
	}
}

// NewAzureInferenceProvider creates a provider for an Azure AI model
// inference endpoint such as https://<resource>.services.ai.azure.com/models.
// The endpoint takes the model name in the request body and the API version
// as a query parameter.
func NewAzureInferenceProvider(cfg AzureConfig) *OpenAIProvider {
	cfg = cfg.withDefaults()

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	config.HTTPClient = &http.Client{
		Transport: &apiVersionTransport{base: http.DefaultTransport, version: cfg.APIVersion},
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		name:   NameAzureInference,
		model:  cfg.Model,
	}
}

func (c AzureConfig) withDefaults() AzureConfig {
	if c.Model == "" {
		c.Model = DefaultAzureModel
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	return c
}

// Model returns the model the provider requests.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Complete sends one system and one user message and returns the first
// choice's content.
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		MaxTokens:        req.MaxTokens,
		Temperature:      req.Temperature,
		TopP:             req.TopP,
		PresencePenalty:  req.PresencePenalty,
		FrequencyPenalty: req.FrequencyPenalty,
	})
	if err != nil {
		return "", &gotdoc.ProviderError{
			Provider:  p.name,
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &gotdoc.ProviderError{
			Provider:  p.name,
			Message:   "no choices in response",
			Retryable: true,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// apiVersionTransport adds the api-version query parameter to every request.
type apiVersionTransport struct {
	base    http.RoundTripper
	version string
}

func (t *apiVersionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("api-version", t.version)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}

// Verify OpenAIProvider implements Completer
var _ Completer = (*OpenAIProvider)(nil)
