package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/ZaguanLabs/gotdoc/glossary"
	"github.com/ZaguanLabs/gotdoc/provider"
)

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func frozen() time.Time { return fixedNow }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessDocument_Text(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := writeFile(t, src, "story.txt", "first paragraph\n\nsecond paragraph")

	tr := &upperTranslator{}
	p := New(tr, WithClock(frozen))

	res := p.ProcessDocument(context.Background(), path, Job{SourceLang: "ko", TargetLang: "en"}, out)
	require.True(t, res.Success, "error: %v", res.Err)

	assert.Equal(t, "story.txt", res.FileName)
	assert.Equal(t, "story_ko_to_en_20240501_093000.txt", res.OutputFile)
	assert.Equal(t, MethodText, res.Method)
	assert.Equal(t, len("first paragraph\n\nsecond paragraph"), res.CharCount)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "FIRST PARAGRAPH\n\nSECOND PARAGRAPH", string(data))
}

func TestProcessDocument_HTMLKeepsName(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	path := writeFile(t, src, "page.html", "<html><head><title>hello</title></head><body><p>some text</p></body></html>")

	p := New(&upperTranslator{}, WithClock(frozen))
	res := p.ProcessDocument(context.Background(), path, Job{SourceLang: "ko", TargetLang: "en"}, out)
	require.True(t, res.Success, "error: %v", res.Err)

	assert.Equal(t, "page.html", res.OutputFile)
	assert.Equal(t, MethodHTML, res.Method)

	data, err := os.ReadFile(filepath.Join(out, "page.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>HELLO</title>")
	assert.Contains(t, string(data), "<p>SOME TEXT</p>")
}

func TestProcessDocument_Unsupported(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.xlsx", "x")

	res := New(&upperTranslator{}).ProcessDocument(context.Background(), path, Job{SourceLang: "ko", TargetLang: "en"}, t.TempDir())
	assert.False(t, res.Success)
	assert.Equal(t, gotdoc.KindUnsupportedFormat, res.ErrKind)
}

func TestProcessDocument_FailureWritesNothing(t *testing.T) {
	path := writeFile(t, t.TempDir(), "story.txt", "doomed paragraph")
	out := t.TempDir()

	res := New(&upperTranslator{failOn: "doomed"}).ProcessDocument(context.Background(), path, Job{SourceLang: "ko", TargetLang: "en"}, out)
	assert.False(t, res.Success)
	assert.Equal(t, gotdoc.KindTranslationFailed, res.ErrKind)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestProcessDocument_CommitsGlossaryUsage(t *testing.T) {
	store := glossary.NewStore()
	_, err := store.Load(strings.NewReader("type,raw_name,translated_name\ncharacter,이시헌,Lee Si-heon\n"), "novel")
	require.NoError(t, err)
	require.True(t, store.SetActive("novel"))

	path := writeFile(t, t.TempDir(), "ch1.txt", "이시헌은 검을 뽑았다.")
	creds := gotdoc.Credentials{Endpoint: "https://example.inference.ai.azure.com", APIKey: strings.Repeat("k", 32)}
	client := gotdoc.NewClient(provider.NewMockProvider(), creds,
		gotdoc.WithRetryPolicy(gotdoc.RetryPolicy{MaxRetries: 1, ErrorDelay: time.Millisecond, RejectDelay: time.Millisecond}))

	p := New(client, WithGlossaries(store))
	res := p.ProcessDocument(context.Background(), path, Job{SourceLang: "ko", TargetLang: "en"}, t.TempDir())
	require.True(t, res.Success, "error: %v", res.Err)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "Lee Si-heon drew his sword.", string(data))

	used := store.UsedTerms()
	require.Len(t, used, 1)
	assert.Equal(t, "이시헌", used[0].Term)
	assert.Equal(t, 1, used[0].Count)
}
