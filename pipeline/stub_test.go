package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/ZaguanLabs/gotdoc"
)

// upperTranslator upper-cases every request. Requests whose text contains
// failOn return a TranslationFailedError.
type upperTranslator struct {
	failOn   string
	mu       sync.Mutex
	requests []gotdoc.TranslateRequest
}

func (u *upperTranslator) Translate(_ context.Context, req gotdoc.TranslateRequest) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.requests = append(u.requests, req)
	if u.failOn != "" && strings.Contains(req.Text, u.failOn) {
		return "", &gotdoc.TranslationFailedError{Attempts: 6, Cause: errors.New("upstream unavailable")}
	}
	return strings.ToUpper(req.Text), nil
}

func (u *upperTranslator) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.requests)
}
