package gotdoc

import "strings"

// LanguageNames maps base language codes to the names used in prompts.
var LanguageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
	"ja": "Japanese",
	"zh": "Chinese",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"pt": "Portuguese",
	"ru": "Russian",
	"vi": "Vietnamese",
	"th": "Thai",
	"id": "Indonesian",
	"tr": "Turkish",
	"pl": "Polish",
	"nl": "Dutch",
	"ar": "Arabic",
	"he": "Hebrew",
	"hi": "Hindi",
	"uk": "Ukrainian",
}

// BaseLang extracts the base language code (e.g., "ko" from "ko_KR" or "ko-KR").
func BaseLang(lang string) string {
	lang = strings.ReplaceAll(lang, "-", "_")
	return strings.ToLower(strings.Split(lang, "_")[0])
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(langCode string) string {
	if name, ok := LanguageNames[BaseLang(langCode)]; ok {
		return name
	}
	return langCode
}

// SameLanguage reports whether two codes share a base language.
func SameLanguage(a, b string) bool {
	return BaseLang(a) == BaseLang(b)
}
