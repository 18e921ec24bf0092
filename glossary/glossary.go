// Package glossary holds named terminology sets used to steer translations
// and tracks which of their terms the model actually honored.
package glossary

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ZaguanLabs/gotdoc"
)

// Entry is one source term's configured translation and usage history.
type Entry struct {
	Translation string
	Category    string
	Gender      string
	UsageCount  int
	LastUsed    time.Time // zero until the term is first committed as used
}

// Glossary is a named, ordered set of terms.
type Glossary struct {
	Name  string
	terms map[string]*Entry
	order []string
}

func newGlossary(name string) *Glossary {
	return &Glossary{Name: name, terms: make(map[string]*Entry)}
}

func (g *Glossary) set(term string, e Entry) {
	if _, ok := g.terms[term]; !ok {
		g.order = append(g.order, term)
	}
	g.terms[term] = &e
}

func (g *Glossary) remove(term string) bool {
	if _, ok := g.terms[term]; !ok {
		return false
	}
	delete(g.terms, term)
	g.order = slices.DeleteFunc(g.order, func(t string) bool { return t == term })
	return true
}

// Len returns the number of terms.
func (g *Glossary) Len() int {
	return len(g.order)
}

// Terms returns the source terms in load order.
func (g *Glossary) Terms() []string {
	return slices.Clone(g.order)
}

// Entry returns a copy of the entry for term.
func (g *Glossary) Entry(term string) (Entry, bool) {
	e, ok := g.terms[term]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// TermUsage reports how often a term was honored.
type TermUsage struct {
	Term        string
	Translation string
	Count       int
}

// Stats summarizes the loaded glossaries.
type Stats struct {
	Glossaries int
	Terms      int
	Active     string
	ByCategory map[string]int
}

// Store holds zero or more glossaries, at most one of them active, plus the
// usage tally for the document currently being translated.
type Store struct {
	mu         sync.Mutex
	glossaries map[string]*Glossary
	names      []string
	active     string
	tally      map[string]int
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used to stamp LastUsed.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		glossaries: make(map[string]*Glossary),
		tally:      make(map[string]int),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// add registers g, replacing any glossary with the same name.
func (s *Store) add(g *Glossary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.glossaries[g.Name]; !ok {
		s.names = append(s.names, g.Name)
	}
	s.glossaries[g.Name] = g
	if s.active == g.Name {
		s.tally = make(map[string]int)
	}
}

// SetActive makes name the active glossary and resets the usage tally.
// It returns false if no glossary has that name.
func (s *Store) SetActive(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.glossaries[name]; !ok {
		return false
	}
	s.active = name
	s.tally = make(map[string]int)
	return true
}

// Active returns the active glossary name, or "" when none is active.
func (s *Store) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Names returns the loaded glossary names in load order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.names)
}

// Get returns the named glossary.
func (s *Store) Get(name string) (*Glossary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.glossaries[name]
	return g, ok
}

// Clear drops every glossary and deactivates the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.glossaries = make(map[string]*Glossary)
	s.names = nil
	s.active = ""
	s.tally = make(map[string]int)
}

// SetTerm adds or replaces a term in the active glossary. Usage history of
// an existing term is kept.
func (s *Store) SetTerm(term, translation, category, gender string) error {
	term = strings.TrimSpace(term)
	translation = strings.TrimSpace(translation)
	if term == "" || translation == "" {
		return &gotdoc.ValidationError{Message: "term and translation must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil {
		return err
	}

	e := Entry{Translation: translation, Category: category, Gender: gender}
	if old, ok := g.terms[term]; ok {
		e.UsageCount = old.UsageCount
		e.LastUsed = old.LastUsed
	}
	g.set(term, e)
	return nil
}

// RemoveTerm deletes a term from the active glossary.
func (s *Store) RemoveTerm(term string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil {
		return false
	}
	delete(s.tally, term)
	return g.remove(term)
}

func (s *Store) activeLocked() (*Glossary, error) {
	if s.active == "" {
		return nil, &gotdoc.ValidationError{Message: "no active glossary"}
	}
	return s.glossaries[s.active], nil
}

// FormatForPrompt renders the active glossary as one "- term → translation
// (category)" line per entry. It returns "" when no glossary is active.
func (s *Store) FormatForPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil {
		return ""
	}

	lines := make([]string, 0, len(g.order))
	for _, term := range g.order {
		e := g.terms[term]
		lines = append(lines, fmt.Sprintf("- %s → %s (%s)", term, e.Translation, e.Category))
	}
	return strings.Join(lines, "\n")
}

// TrackUsage tallies every active term present in sourceText whose
// translation is present in translatedText. Matching is plain,
// case-sensitive substring containment.
func (s *Store) TrackUsage(sourceText, translatedText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil {
		return
	}

	for _, term := range g.order {
		if strings.Contains(sourceText, term) && strings.Contains(translatedText, g.terms[term].Translation) {
			s.tally[term]++
		}
	}
}

// Pending returns the uncommitted tally for term.
func (s *Store) Pending(term string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tally[term]
}

// CommitUsage folds the tally into the active glossary's usage counts,
// stamps LastUsed with today's date and resets the tally. It returns the
// number of terms updated.
func (s *Store) CommitUsage() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil || len(s.tally) == 0 {
		return 0
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	updated := 0
	for term, n := range s.tally {
		e, ok := g.terms[term]
		if !ok {
			continue
		}
		e.UsageCount += n
		e.LastUsed = today
		updated++
	}
	s.tally = make(map[string]int)
	return updated
}

// DiscardUsage drops the uncommitted tally.
func (s *Store) DiscardUsage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tally = make(map[string]int)
}

// UsedTerms lists the active glossary's terms with a non-zero usage count,
// most used first, ties ordered by term.
func (s *Store) UsedTerms() []TermUsage {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := s.activeLocked()
	if err != nil {
		return nil
	}

	var used []TermUsage
	for _, term := range g.order {
		e := g.terms[term]
		if e.UsageCount > 0 {
			used = append(used, TermUsage{Term: term, Translation: e.Translation, Count: e.UsageCount})
		}
	}

	slices.SortFunc(used, func(a, b TermUsage) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})
	return used
}

// Stats summarizes every loaded glossary.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Glossaries: len(s.glossaries),
		Active:     s.active,
		ByCategory: make(map[string]int),
	}
	for _, g := range s.glossaries {
		st.Terms += len(g.order)
		for _, e := range g.terms {
			st.ByCategory[e.Category]++
		}
	}
	return st
}

// Verify Store implements gotdoc.Glossary
var _ gotdoc.Glossary = (*Store)(nil)
