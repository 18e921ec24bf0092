// Package cache provides translation caches keyed by gotdoc.CacheKey, so a
// re-run over the same documents does not pay for chunks already translated.
package cache

import (
	"context"

	"github.com/ZaguanLabs/gotdoc"
)

// DefaultKeyPrefix namespaces keys in shared stores.
const DefaultKeyPrefix = "gotdoc:"

// TranslationCache is an alias to the main package interface.
type TranslationCache = gotdoc.TranslationCache

// Enumerable is a cache whose live entries can be listed for export.
type Enumerable interface {
	TranslationCache
	Entries(ctx context.Context) (map[string]string, error)
}
