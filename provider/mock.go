package provider

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const promptTextMarker = " to translate:\n"

// MockProvider is a mock completion backend for testing and dry runs. It
// translates the source text of a prompt line by line.
type MockProvider struct {
	Translations map[string]string // Map of source line to translation
	FailFirst    int               // Number of initial calls that fail
	CallCount    int               // Number of times Complete was called
	LastRequest  *CompletionRequest

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"안녕하세요.":         "Hello.",
			"저는 학생입니다.":      "I am a student.",
			"이시헌은 검을 뽑았다.":   "Lee Si-heon drew his sword.",
			"세계수가 흔들렸다.":     "The World Tree shook.",
			"제1화":            "Episode 1",
		},
	}
}

// Complete returns mock translations. Unknown lines come back bracketed.
func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastRequest = &req

	if m.CallCount <= m.FailFirst {
		return "", fmt.Errorf("mock failure %d", m.CallCount)
	}

	lines := strings.Split(sourceText(req.UserPrompt), "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if translation, ok := m.Translations[strings.TrimSpace(line)]; ok {
			lines[i] = translation
		} else {
			lines[i] = fmt.Sprintf("[%s]", line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

// sourceText recovers the text block of a translation prompt. Prompts
// without the block are used whole.
func sourceText(prompt string) string {
	start := strings.Index(prompt, promptTextMarker)
	if start < 0 {
		return prompt
	}
	text := prompt[start+len(promptTextMarker):]
	if end := strings.LastIndex(text, "\n\n"); end >= 0 {
		text = text[:end]
	}
	return text
}

// Verify MockProvider implements Completer
var _ Completer = (*MockProvider)(nil)
