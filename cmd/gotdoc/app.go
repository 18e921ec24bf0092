package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/ZaguanLabs/gotdoc/cache"
	"github.com/ZaguanLabs/gotdoc/config"
	"github.com/ZaguanLabs/gotdoc/internal/logging"
	"github.com/ZaguanLabs/gotdoc/provider"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath   string
	logLevel     string
	providerName string
	model        string

	cfg    *config.Config
	logger zerolog.Logger
}

func (a *app) init(cmd *cobra.Command) error {
	paths := []string{
		filepath.Join(config.ApplicationDir(), config.DefaultFile),
		config.DefaultFile,
	}
	if a.configPath != "" {
		paths = []string{a.configPath}
	}

	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.providerName != "" {
		cfg.Provider.Name = a.providerName
	}
	if a.model != "" {
		cfg.Provider.Model = a.model
	}
	a.cfg = cfg

	if strings.EqualFold(cfg.Logging.Format, "json") {
		a.logger = logging.NewJSON(cfg.Logging.Level, cmd.ErrOrStderr())
	} else {
		a.logger = logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
	}
	return nil
}

// credentials loads the configured credentials. The mock backend needs
// none, so it gets placeholders that pass the format check.
func (a *app) credentials() (gotdoc.Credentials, error) {
	if strings.EqualFold(a.cfg.Provider.Name, provider.NameMock) {
		return gotdoc.Credentials{
			Endpoint: "https://mock.invalid",
			APIKey:   strings.Repeat("x", gotdoc.MinAPIKeyLength),
		}, nil
	}
	return config.LoadCredentials(a.cfg.Provider.CredentialsFile)
}

// completer builds the configured backend, paced when a request rate is set.
func (a *app) completer(ctx context.Context, creds gotdoc.Credentials) (gotdoc.Completer, error) {
	c, err := provider.New(ctx, provider.Config{
		Name:        a.cfg.Provider.Name,
		Credentials: creds,
		Model:       a.cfg.Provider.Model,
		APIVersion:  a.cfg.Provider.APIVersion,
	})
	if err != nil {
		return nil, err
	}
	if rpm := a.cfg.Provider.RequestsPerMinute; rpm > 0 {
		return gotdoc.NewRateLimitedCompleter(c, rpm), nil
	}
	return c, nil
}

// translationCache is a cache that can also be exported.
type translationCache interface {
	gotdoc.TranslationCache
	cache.Enumerable
}

// openCache returns the configured cache, or nil when caching is off. The
// returned func releases it.
func (a *app) openCache(ctx context.Context) (translationCache, func(), error) {
	ttl := a.cfg.CacheTTL()
	switch strings.ToLower(a.cfg.Cache.Backend) {
	case "", "none":
		return nil, func() {}, nil
	case "memory":
		return cache.NewInMemoryCache(ttl), func() {}, nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:       a.cfg.Cache.RedisURL,
			TTL:       ttl,
			KeyPrefix: a.cfg.Cache.KeyPrefix,
		})
		if err != nil {
			return nil, nil, &gotdoc.ConfigurationError{Message: "failed to connect to redis", Cause: err}
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return nil, nil, &gotdoc.ConfigurationError{Message: fmt.Sprintf("unknown cache backend %q", a.cfg.Cache.Backend)}
	}
}

// client builds a translation client for the given direction.
func (a *app) client(ctx context.Context, sourceLang, targetLang string, tc gotdoc.TranslationCache) (*gotdoc.Client, error) {
	creds, err := a.credentials()
	if err != nil {
		return nil, err
	}
	completer, err := a.completer(ctx, creds)
	if err != nil {
		return nil, err
	}

	opts := []gotdoc.ClientOption{
		gotdoc.WithLanguages(sourceLang, targetLang),
		gotdoc.WithRetryPolicy(a.cfg.RetryPolicy()),
		gotdoc.WithLogger(a.logger),
	}
	if tc != nil {
		opts = append(opts, gotdoc.WithCache(tc))
	}

	c := gotdoc.NewClient(completer, creds, opts...)
	if !c.Working() {
		return nil, &gotdoc.ConfigurationError{
			Message: "credentials missing or malformed; run `gotdoc configure` or set " + config.EnvEndpoint + " and " + config.EnvAPIKey,
		}
	}
	return c, nil
}
