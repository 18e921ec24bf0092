package gotdoc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey identifies a translated chunk. Every input that shapes the prompt
// is part of the key, so a glossary edit or a different hint misses the cache.
func CacheKey(req TranslateRequest, sourceLang, targetLang string) string {
	prompt := HashText(strings.Join([]string{
		string(req.Kind),
		req.Context,
		req.Glossary,
	}, "\x00"))
	return HashText(req.Text) + ":" + prompt[:16] + ":" + BaseLang(sourceLang) + ":" + BaseLang(targetLang)
}
