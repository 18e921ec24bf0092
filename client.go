package gotdoc

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

const (
	defaultTemperature = 0.1
	defaultTopP        = 0.95
	tokenHeadroom      = 500
	probeMaxTokens     = 100
	minTranslatable    = 3
)

// Completer is the interface for chat-completion backends. An empty string
// with a nil error means the model returned no content.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ChunkTranslator translates one chunk of text.
type ChunkTranslator interface {
	Translate(ctx context.Context, req TranslateRequest) (string, error)
}

// Glossary supplies prompt terminology and records which terms were honored.
type Glossary interface {
	FormatForPrompt() string
	TrackUsage(sourceText, translatedText string)
}

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Client wraps a Completer with the prompt, sanitization and retry policy
// of a single chunk translation.
type Client struct {
	completer  Completer
	creds      Credentials
	working    bool
	sourceLang string
	targetLang string
	retry      RetryPolicy
	cache      TranslationCache
	logger     zerolog.Logger
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithLanguages sets the translation direction.
func WithLanguages(sourceLang, targetLang string) ClientOption {
	return func(c *Client) {
		c.sourceLang = sourceLang
		c.targetLang = targetLang
	}
}

// WithRetryPolicy replaces the default retry schedule.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger used for retry and failure reporting.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. The client is marked working when the
// credentials are well formed; no request is sent.
func NewClient(completer Completer, creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		completer:  completer,
		creds:      creds,
		working:    completer != nil && creds.WellFormed(),
		sourceLang: "ko",
		targetLang: "en",
		retry:      DefaultRetryPolicy(),
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Working reports whether the client is usable for translation.
func (c *Client) Working() bool {
	return c.working
}

// SourceLang returns the source language.
func (c *Client) SourceLang() string {
	return c.sourceLang
}

// TargetLang returns the target language.
func (c *Client) TargetLang() string {
	return c.targetLang
}

// TestConnection performs one real round trip and updates the working flag
// from its outcome. It returns the model reply or the failure message.
func (c *Client) TestConnection(ctx context.Context) (bool, string) {
	if c.completer == nil {
		c.working = false
		return false, "no completion backend configured"
	}

	reply, err := c.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: probeSystemPrompt,
		UserPrompt:   probeUserPrompt,
		MaxTokens:    probeMaxTokens,
		Temperature:  defaultTemperature,
		TopP:         defaultTopP,
	})
	if err != nil {
		c.working = false
		c.logger.Error().Err(err).Msg("connection test failed")
		return false, err.Error()
	}
	if strings.TrimSpace(reply) == "" {
		c.working = false
		return false, "no response received"
	}

	c.working = true
	c.logger.Info().Str("reply", reply).Msg("connection test succeeded")
	return true, reply
}

// Translate translates one chunk. Text shorter than three characters is
// returned unchanged without a request. Once the retry budget is spent the
// result is a *TranslationFailedError; the source text is never returned as
// a fallback.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if !c.working {
		return "", &TranslationFailedError{
			Cause: &ConfigurationError{Message: "translation client is not configured"},
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.Text)) < minTranslatable {
		return req.Text, nil
	}

	var key string
	if c.cache != nil {
		key = CacheKey(req, c.sourceLang, c.targetLang)
		if cached, ok := c.cache.Get(ctx, key); ok {
			c.logger.Debug().Str("kind", string(req.Kind)).Msg("translation served from cache")
			return cached, nil
		}
	}

	completion := CompletionRequest{
		SystemPrompt:     buildSystemPrompt(c.sourceLang, c.targetLang),
		UserPrompt:       buildUserPrompt(req, c.sourceLang, c.targetLang),
		MaxTokens:        utf8.RuneCountInString(req.Text) + tokenHeadroom,
		Temperature:      defaultTemperature,
		TopP:             defaultTopP,
		PresencePenalty:  0,
		FrequencyPenalty: 0,
	}

	translated, err := WithRetry(ctx, c.retry, func(attempt int) (string, error) {
		reply, err := c.completer.Complete(ctx, completion)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(reply) == "" {
			return "", &ProviderError{Provider: "completion", Message: "empty response"}
		}

		cleaned := CleanOutput(reply)
		if !acceptable(cleaned) {
			return "", &rejectedOutputError{Output: cleaned}
		}
		return cleaned, nil
	}, func(attempt int, err error, delay time.Duration) {
		c.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", delay).
			Str("kind", string(req.Kind)).
			Msg("translation attempt failed")
	})
	if err != nil {
		c.logger.Error().Err(err).Str("kind", string(req.Kind)).Msg("translation failed")
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, translated); err != nil {
			c.logger.Debug().Err(err).Msg("cache set failed")
		}
	}

	return translated, nil
}

// Verify Client implements ChunkTranslator
var _ ChunkTranslator = (*Client)(nil)
