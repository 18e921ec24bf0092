package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/ZaguanLabs/gotdoc/cache"
	"github.com/ZaguanLabs/gotdoc/config"
	"github.com/ZaguanLabs/gotdoc/glossary"
	"github.com/ZaguanLabs/gotdoc/pipeline"
)

func newTranslateCmd(a *app) *cobra.Command {
	var (
		sourceLang  string
		targetLang  string
		hint        string
		outputRoot  string
		glossaries  []string
		noHTML      bool
		cacheImport string
		cacheExport string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "translate <folder>",
		Short: "Translate every document in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := a.cfg

			job := pipeline.Job{
				SourceLang: firstNonEmpty(sourceLang, cfg.Translation.SourceLang),
				TargetLang: firstNonEmpty(targetLang, cfg.Translation.TargetLang),
				Context:    firstNonEmpty(hint, cfg.Translation.Context),
			}

			tc, closeCache, err := a.openCache(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			if cacheImport != "" {
				if tc == nil {
					return errors.New("--cache-import requires a cache backend")
				}
				res, err := cache.NewImporter(tc).ImportFromFile(ctx, cacheImport)
				if err != nil {
					return err
				}
				a.logger.Info().Int("imported", res.Imported).Int("failed", res.Failed).Msg("cache imported")
			}

			client, err := a.client(ctx, job.SourceLang, job.TargetLang, tc)
			if err != nil {
				return err
			}

			p := pipeline.New(client,
				pipeline.WithGlossaries(glossary.NewStore()),
				pipeline.WithChunkSizes(cfg.Translation.TextChunkSize, cfg.Translation.HTMLChunkSize),
				pipeline.WithLogger(a.logger),
			)
			o := pipeline.NewOrchestrator(p,
				pipeline.WithOutputRoot(firstNonEmpty(outputRoot, cfg.Output.Root)),
				pipeline.WithHTML(cfg.Translation.IncludeHTML && !noHTML),
				pipeline.WithGlossaryFiles(glossaries...),
				pipeline.WithOrchestratorLogger(a.logger),
			)

			result, err := o.ProcessFolder(ctx, args[0], job)
			if err != nil {
				return err
			}

			if cacheExport != "" && tc != nil {
				meta := map[string]string{"source_lang": job.SourceLang, "target_lang": job.TargetLang}
				if err := cache.NewExporter(tc).ExportToFile(ctx, cacheExport, meta); err != nil {
					return err
				}
			}

			if !quiet {
				printRunSummary(cmd.OutOrStdout(), result)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceLang, "source", "s", "", "source language code (default from config: ko)")
	cmd.Flags().StringVarP(&targetLang, "target", "t", "", "target language code (default from config: en)")
	cmd.Flags().StringVar(&hint, "context", "", "hint about the work, e.g. 'fantasy web novel'")
	cmd.Flags().StringVarP(&outputRoot, "output", "o", "", "directory the run folder is created in")
	cmd.Flags().StringArrayVarP(&glossaries, "glossary", "g", nil, "extra CSV glossary to load (repeatable)")
	cmd.Flags().BoolVar(&noHTML, "no-html", false, "skip .html and .htm files")
	cmd.Flags().StringVar(&cacheImport, "cache-import", "", "JSON cache export to preload")
	cmd.Flags().StringVar(&cacheExport, "cache-export", "", "write the cache as JSON after the run")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the run summary")
	return cmd
}

func printRunSummary(w io.Writer, r *gotdoc.RunResult) {
	fmt.Fprintf(w, "Run %s: %s -> %s\n", r.RunID, r.SourceLang, r.TargetLang)
	fmt.Fprintf(w, "  Processed:  %d\n", len(r.Processed))
	fmt.Fprintf(w, "  Failed:     %d\n", len(r.Failed))
	fmt.Fprintf(w, "  Characters: %d\n", r.TotalChars)
	fmt.Fprintf(w, "  Time:       %v\n", r.TotalTime.Round(time.Millisecond))
	fmt.Fprintf(w, "  Output:     %s\n", r.OutputFolder)
	for _, f := range r.Failed {
		fmt.Fprintf(w, "  ! %s: %v\n", f.File, f.Err)
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <folder>",
		Short: "List what a folder contains and the order it would be translated in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := pipeline.Analyze(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Folder: %s\n", analysis.Folder)
			fmt.Fprintf(out, "  Glossaries: %d\n", len(analysis.Glossaries))
			for _, g := range analysis.Glossaries {
				fmt.Fprintf(out, "    %s (%d bytes)\n", g.Name, g.Size)
			}
			fmt.Fprintf(out, "  Documents:  %d\n", len(analysis.Documents))
			fmt.Fprintf(out, "  HTML files: %d\n", len(analysis.HTML))

			counts := analysis.CountByExt()
			exts := make([]string, 0, len(counts))
			for ext := range counts {
				exts = append(exts, ext)
			}
			sort.Strings(exts)
			for _, ext := range exts {
				fmt.Fprintf(out, "    %s: %d\n", ext, counts[ext])
			}
			if len(analysis.Other) > 0 {
				fmt.Fprintf(out, "  Other files: %d (ignored)\n", len(analysis.Other))
			}
			fmt.Fprintf(out, "  Subfolders: %d (not scanned)\n", len(analysis.Subfolders))
			fmt.Fprintf(out, "  Total size: %d bytes (%.1f MB)\n", analysis.TotalSize, float64(analysis.TotalSize)/1024/1024)

			files := append([]pipeline.File(nil), analysis.Documents...)
			if a.cfg.Translation.IncludeHTML {
				files = append(files, analysis.HTML...)
			}
			if len(files) > 0 {
				fmt.Fprintln(out, "Processing order:")
				for i, f := range pipeline.SortByPriority(files) {
					fmt.Fprintf(out, "  %d. %s\n", i+1, f.Name)
				}
			}
			return nil
		},
	}
}

func newConfigureCmd(a *app) *cobra.Command {
	var (
		endpoint string
		apiKey   string
		skipTest bool
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Validate, test and save endpoint credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			creds := gotdoc.Credentials{
				Endpoint: strings.TrimSpace(endpoint),
				APIKey:   strings.TrimSpace(apiKey),
			}
			if err := creds.Validate(); err != nil {
				return err
			}

			if !skipTest {
				completer, err := a.completer(ctx, creds)
				if err != nil {
					return err
				}
				ok, msg := gotdoc.NewClient(completer, creds, gotdoc.WithLogger(a.logger)).TestConnection(ctx)
				if !ok {
					return &gotdoc.ConfigurationError{Message: "connection test failed: " + msg}
				}
				fmt.Fprintf(out, "Connection OK: %s\n", msg)
			}

			path := a.cfg.Provider.CredentialsFile
			if err := config.SaveCredentials(path, creds); err != nil {
				return err
			}
			fmt.Fprintf(out, "Credentials saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "endpoint URL (https://...)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "API key")
	cmd.Flags().BoolVar(&skipTest, "skip-test", false, "save without a test request")
	_ = cmd.MarkFlagRequired("endpoint")
	_ = cmd.MarkFlagRequired("api-key")
	return cmd
}

func newTestConnectionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test-connection",
		Short: "Send one probe request with the saved credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := a.client(ctx, a.cfg.Translation.SourceLang, a.cfg.Translation.TargetLang, nil)
			if err != nil {
				return err
			}

			ok, msg := client.TestConnection(ctx)
			if !ok {
				return &gotdoc.ConfigurationError{Message: "connection test failed: " + msg}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Connection OK: %s\n", msg)
			return nil
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
