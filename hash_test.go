package gotdoc

import (
	"strings"
	"testing"
)

func TestHashText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple text",
			input:    "Hello World",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:     "text with both whitespace",
			input:    "  Hello World  ",
			expected: "a591a6d40bf420404a011733cfb7b190d62c65bf0bcda32b57b277d9ad9f146e",
		},
		{
			name:  "empty string",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HashText(tt.input)
			if tt.expected != "" && result != tt.expected {
				t.Errorf("HashText(%q) = %q, want %q", tt.input, result, tt.expected)
			}
			if len(result) != 64 {
				t.Errorf("HashText(%q) length = %d, want 64", tt.input, len(result))
			}
		})
	}
}

func TestCacheKey_Layout(t *testing.T) {
	req := TranslateRequest{Text: "Hello World", Kind: KindParagraph}
	key := CacheKey(req, "ko_KR", "en-US")

	parts := strings.Split(key, ":")
	if len(parts) != 4 {
		t.Fatalf("expected 4 key parts, got %d (%s)", len(parts), key)
	}
	if parts[0] != HashText("Hello World") {
		t.Errorf("first part should be the text hash, got %s", parts[0])
	}
	if parts[2] != "ko" || parts[3] != "en" {
		t.Errorf("expected base languages ko/en, got %s/%s", parts[2], parts[3])
	}
}

func TestCacheKey_PromptInputsChangeKey(t *testing.T) {
	base := TranslateRequest{Text: "이시헌", Kind: KindParagraph}
	withGlossary := base
	withGlossary.Glossary = "- 이시헌 → Lee Si-heon (character)"
	withContext := base
	withContext.Context = "Fantasy light novel"

	k := CacheKey(base, "ko", "en")
	if k == CacheKey(withGlossary, "ko", "en") {
		t.Error("glossary should be part of the cache key")
	}
	if k == CacheKey(withContext, "ko", "en") {
		t.Error("context should be part of the cache key")
	}
	if k == CacheKey(base, "ko", "ja") {
		t.Error("target language should be part of the cache key")
	}
	if k != CacheKey(base, "ko", "en") {
		t.Error("cache key should be deterministic")
	}
}
