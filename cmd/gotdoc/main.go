// Command gotdoc translates folders of documents using AI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZaguanLabs/gotdoc"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gotdoc.Version
	commit    = gotdoc.GitCommit
	buildDate = gotdoc.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   gotdoc.Name,
		Short: gotdoc.Description,
		Long: `gotdoc translates every document in a folder (.txt, .pdf, .docx, .doc,
.html, .htm) through a remote language model, keeping HTML structure intact
and applying any CSV glossaries found alongside the documents.

Each run writes translated_{src}_to_{tgt}_{timestamp}/ with translations,
updated glossaries and a translation log.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: gotdoc.toml next to the binary, then in the working directory)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.providerName, "provider", "", "completion backend: azure-inference, azure, openai, gemini, mock")
	root.PersistentFlags().StringVar(&a.model, "model", "", "model or deployment name")

	root.AddCommand(
		newTranslateCmd(a),
		newAnalyzeCmd(a),
		newConfigureCmd(a),
		newTestConnectionCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", gotdoc.Name, version)
			if commit != "unknown" && commit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", commit)
			}
			if buildDate != "unknown" && buildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", buildDate)
			}
			return nil
		},
	}
}
