package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/gotdoc"
)

// Layout is the directory tree created for one run.
type Layout struct {
	Root         string
	Translations string
	Glossaries   string
	Logs         string
}

// NewLayout creates translated_{src}_to_{tgt}_{stamp} under root with its
// translations, glossaries and logs subfolders.
func NewLayout(root string, job Job, at time.Time) (Layout, error) {
	dir := filepath.Join(root, fmt.Sprintf("translated_%s_to_%s_%s", job.SourceLang, job.TargetLang, at.Format(stampLayout)))
	l := Layout{
		Root:         dir,
		Translations: filepath.Join(dir, "translations"),
		Glossaries:   filepath.Join(dir, "glossaries"),
		Logs:         filepath.Join(dir, "logs"),
	}
	for _, d := range []string{l.Translations, l.Glossaries, l.Logs} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return Layout{}, &gotdoc.WriteError{Path: d, Cause: err}
		}
	}
	return l, nil
}

// Orchestrator translates every document of a folder through a Pipeline,
// one document at a time.
type Orchestrator struct {
	pipeline      *Pipeline
	outputRoot    string
	includeHTML   bool
	glossaryFiles []string
	logger        zerolog.Logger
	now           func() time.Time
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithOutputRoot sets the directory run folders are created in.
func WithOutputRoot(dir string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.outputRoot = dir
	}
}

// WithHTML controls whether .html and .htm files are translated.
func WithHTML(include bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.includeHTML = include
	}
}

// WithGlossaryFiles loads extra CSV glossaries before those found in the
// folder.
func WithGlossaryFiles(paths ...string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.glossaryFiles = append(o.glossaryFiles, paths...)
	}
}

// WithOrchestratorLogger sets the logger.
func WithOrchestratorLogger(logger zerolog.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithOrchestratorClock sets the time source for folder names and the log.
func WithOrchestratorClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// NewOrchestrator creates an Orchestrator writing run folders to the
// working directory unless WithOutputRoot says otherwise.
func NewOrchestrator(p *Pipeline, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		pipeline:    p,
		outputRoot:  ".",
		includeHTML: true,
		logger:      zerolog.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run carries the state of one ProcessFolder call.
type run struct {
	o       *Orchestrator
	journal []string
}

func (r *run) log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.journal = append(r.journal, "["+r.o.now().Format("15:04:05")+"] "+msg)
	r.o.logger.Info().Msg(msg)
}

// ProcessFolder translates the documents directly inside folder. A failing
// document is recorded and the run moves on; the error return is reserved
// for a missing folder, a folder with nothing to translate, or an output
// tree that cannot be created.
func (o *Orchestrator) ProcessFolder(ctx context.Context, folder string, job Job) (*gotdoc.RunResult, error) {
	start := o.now()
	r := &run{o: o}

	analysis, err := Analyze(folder)
	if err != nil {
		return nil, err
	}

	candidates := append([]File(nil), analysis.Documents...)
	if o.includeHTML {
		candidates = append(candidates, analysis.HTML...)
	} else if len(analysis.HTML) > 0 {
		r.log("Skipping %d HTML files", len(analysis.HTML))
	}
	docs := SortByPriority(candidates)
	if len(docs) == 0 {
		return nil, gotdoc.ErrNoDocuments
	}

	r.log("Folder: %s", folder)
	r.log("Languages: %s -> %s", strings.ToUpper(job.SourceLang), strings.ToUpper(job.TargetLang))

	o.loadGlossaries(r, analysis)

	layout, err := NewLayout(o.outputRoot, job, start)
	if err != nil {
		return nil, err
	}

	result := &gotdoc.RunResult{
		RunID:          uuid.NewString(),
		OutputFolder:   layout.Root,
		GlossariesUsed: o.pipeline.glossaries.Names(),
		SourceLang:     job.SourceLang,
		TargetLang:     job.TargetLang,
		Method:         MethodText,
	}
	if o.includeHTML {
		result.Method = MethodText + " and " + MethodHTML
	}

	r.log("Processing %d documents", len(docs))
	for i, f := range docs {
		r.log("Processing file %d/%d: %s", i+1, len(docs), f.Name)

		res := o.pipeline.ProcessDocument(ctx, f.Path, job, layout.Translations)
		if res.Success {
			result.Processed = append(result.Processed, res)
			result.TotalChars += res.CharCount
			r.log("Completed: %s", f.Name)
		} else {
			result.Failed = append(result.Failed, gotdoc.FailedDocument{
				File: f.Name,
				Err:  res.Err,
				Kind: res.ErrKind,
			})
			r.log("Failed: %s - %v", f.Name, res.Err)
		}
		r.log("Overall progress: %.1f%%", float64(i+1)/float64(len(docs))*100)
	}

	o.saveGlossary(r, layout, start)

	result.TotalTime = o.now().Sub(start)
	r.log("Processed %d files, %d failed", len(result.Processed), len(result.Failed))

	logPath := filepath.Join(layout.Logs, "translation_log_"+start.Format(stampLayout)+".txt")
	if err := writeRunLog(logPath, result, o.pipeline.glossaries, r.journal, o.now()); err != nil {
		o.logger.Error().Err(err).Str("path", logPath).Msg("failed to write translation log")
	}

	return result, nil
}

// loadGlossaries loads explicit glossary files, then the folder's CSV files.
// A glossary already in the store under the same name is kept as is, so
// usage counts accumulate across runs. The first usable glossary becomes
// active when none is.
func (o *Orchestrator) loadGlossaries(r *run, analysis *Analysis) {
	store := o.pipeline.glossaries

	paths := append([]string(nil), o.glossaryFiles...)
	for _, f := range analysis.Glossaries {
		paths = append(paths, f.Path)
	}

	for _, path := range paths {
		base := filepath.Base(path)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if _, ok := store.Get(name); ok {
			r.log("Glossary %s already loaded, keeping its usage counts", name)
		} else {
			res, err := store.LoadFile(path, name)
			if err != nil {
				r.log("Glossary %s not loaded: %v", base, err)
				continue
			}
			r.log("Loaded glossary %s: %d terms, %d rows skipped", res.Name, res.Terms, res.Skipped)
		}
		if store.Active() == "" {
			store.SetActive(name)
			r.log("Active glossary: %s", name)
		}
	}
}

func (o *Orchestrator) saveGlossary(r *run, layout Layout, at time.Time) {
	store := o.pipeline.glossaries
	name := store.Active()
	if name == "" {
		return
	}

	path := filepath.Join(layout.Glossaries, name+"_updated_"+at.Format(stampLayout)+".csv")
	if err := store.ExportActiveFile(path); err != nil {
		r.log("Glossary snapshot failed: %v", err)
		return
	}
	r.log("Glossary saved: %s", filepath.Base(path))
}
