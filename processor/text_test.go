package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/ZaguanLabs/gotdoc"
)

func TestTextProcessor_Translate(t *testing.T) {
	stub := &upperTranslator{}
	glossary := &recordingGlossary{block: "- 이시헌 → Lee Si-heon (character)"}
	p := NewTextProcessor(stub, WithChunkSize(20), WithGlossary(glossary))

	out, err := p.Translate(context.Background(), "first part\n\nsecond part\n\nthird part here", "novel")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if out != "FIRST PART\n\nSECOND PART\n\nTHIRD PART HERE" {
		t.Errorf("unexpected output %q", out)
	}
	if len(stub.requests) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(stub.requests))
	}
	for _, req := range stub.requests {
		if req.Kind != gotdoc.KindParagraph {
			t.Errorf("expected paragraph kind, got %q", req.Kind)
		}
		if req.Glossary != glossary.block {
			t.Errorf("missing glossary block in %+v", req)
		}
	}
	if len(glossary.pairs) != 3 || glossary.pairs[1][0] != "second part" || glossary.pairs[1][1] != "SECOND PART" {
		t.Errorf("unexpected usage tracking %v", glossary.pairs)
	}
}

func TestTextProcessor_DefaultChunkSize(t *testing.T) {
	stub := &upperTranslator{}
	p := NewTextProcessor(stub)

	if _, err := p.Translate(context.Background(), "one\n\ntwo\n\nthree", ""); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(stub.requests) != 1 {
		t.Errorf("expected a single chunk, got %d", len(stub.requests))
	}
}

func TestTextProcessor_Empty(t *testing.T) {
	stub := &upperTranslator{}
	out, err := NewTextProcessor(stub).Translate(context.Background(), "  \n\n ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" || len(stub.requests) != 0 {
		t.Errorf("expected empty output and no requests, got %q / %d", out, len(stub.requests))
	}
}

func TestTextProcessor_FailureAborts(t *testing.T) {
	stub := &upperTranslator{err: &gotdoc.TranslationFailedError{Attempts: 6, Cause: errors.New("down")}}
	p := NewTextProcessor(stub, WithChunkSize(5))

	_, err := p.Translate(context.Background(), "aaaaaa\n\nbbbbbb", "")
	var tfe *gotdoc.TranslationFailedError
	if !errors.As(err, &tfe) {
		t.Fatalf("expected TranslationFailedError, got %v", err)
	}
	if len(stub.requests) != 1 {
		t.Errorf("expected processing to stop after the first failure, got %d requests", len(stub.requests))
	}
}

func TestTextProcessor_ContentType(t *testing.T) {
	if ct := NewTextProcessor(nil).ContentType(); ct != "text" {
		t.Errorf("Expected 'text', got %q", ct)
	}
}
