package gotdoc

import (
	"fmt"
	"strings"
)

const (
	defaultContext = "Korean novel/literature"

	probeSystemPrompt = "You are a Korean-to-English translator."
	probeUserPrompt   = "Translate this Korean to English: '안녕하세요. 저는 학생입니다.' Be natural and fluent."
)

// buildSystemPrompt establishes the literary translator persona.
func buildSystemPrompt(sourceLang, targetLang string) string {
	source := GetLanguageName(sourceLang)
	target := GetLanguageName(targetLang)

	return fmt.Sprintf(`You are an expert %[1]s-to-%[2]s translator specializing in novels and literature.
You are translating %[1]s fiction/literature to %[2]s.
This is creative content from published novels and stories.
The content includes fictional scenarios, fantasy elements, and dramatic situations.
Translate accurately while maintaining appropriate literary tone.
Focus on narrative flow and character development.

Your job is to translate %[1]s text directly to natural, fluent %[2]s while preserving:
- Exact meaning and nuance
- Character personalities and voice
- Cultural context and honorifics
- Dialogue formatting and flow
- Narrative tone and style

Rules:
- Output ONLY the %[2]s translation
- Keep one output line per input line
- Do not include any meta-commentary, explanations, or notes
- Do not mention the translation process
- Just provide the clean %[2]s text`, source, target)
}

// buildUserPrompt embeds the hint, glossary and source text, ending with
// an explicit cue for the translation.
func buildUserPrompt(req TranslateRequest, sourceLang, targetLang string) string {
	source := GetLanguageName(sourceLang)
	target := GetLanguageName(targetLang)

	hint := strings.TrimSpace(req.Context)
	if hint == "" {
		hint = defaultContext
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Translate this %s %s to natural, fluent %s.\n\n", source, req.Kind.Description(), target)
	fmt.Fprintf(&b, "Context: %s", hint)

	if req.Glossary != "" {
		fmt.Fprintf(&b, "\n\nIMPORTANT - Use these specific translations for character names and terms:\n%s\n\n", req.Glossary)
		fmt.Fprintf(&b, "Make sure to use these exact %s names/terms when they appear in the text.", target)
	}

	kind := req.Kind
	if kind == "" {
		kind = KindText
	}
	fmt.Fprintf(&b, "\n\n%s %s to translate:\n%s\n\n%s translation:", source, kind, req.Text, target)
	return b.String()
}
