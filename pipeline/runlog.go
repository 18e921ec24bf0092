package pipeline

import (
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ZaguanLabs/gotdoc"
	"github.com/ZaguanLabs/gotdoc/glossary"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 50)
)

// writeRunLog writes the plain-text report of a run to path.
func writeRunLog(path string, result *gotdoc.RunResult, store *glossary.Store, journal []string, at time.Time) error {
	if err := os.WriteFile(path, []byte(formatRunLog(result, store, journal, at)), 0o644); err != nil {
		return &gotdoc.WriteError{Path: path, Cause: err}
	}
	return nil
}

func formatRunLog(result *gotdoc.RunResult, store *glossary.Store, journal []string, at time.Time) string {
	pr := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString("gotdoc translation log\n")
	b.WriteString(heavyRule + "\n")
	pr.Fprintf(&b, "Date: %s\n", at.Format(time.DateTime))
	pr.Fprintf(&b, "Run ID: %s\n", result.RunID)
	pr.Fprintf(&b, "Languages: %s → %s\n", result.SourceLang, result.TargetLang)
	pr.Fprintf(&b, "Method: %s\n", result.Method)
	pr.Fprintf(&b, "Total time: %.2f seconds\n", result.TotalTime.Seconds())
	pr.Fprintf(&b, "Total characters: %d\n", result.TotalChars)
	b.WriteString(heavyRule + "\n\n")

	if len(result.Processed) > 0 {
		pr.Fprintf(&b, "SUCCESSFULLY PROCESSED FILES (%d):\n", len(result.Processed))
		b.WriteString(lightRule + "\n")
		for _, d := range result.Processed {
			pr.Fprintf(&b, "%s\n", d.FileName)
			pr.Fprintf(&b, "   → %s\n", d.OutputFile)
			pr.Fprintf(&b, "   %d characters\n", d.CharCount)
			pr.Fprintf(&b, "   %.2f seconds\n", d.TranslationTime.Seconds())
			pr.Fprintf(&b, "   %s translation\n\n", d.Method)
		}
	}

	if len(result.Failed) > 0 {
		pr.Fprintf(&b, "FAILED FILES (%d):\n", len(result.Failed))
		b.WriteString(lightRule + "\n")
		for _, f := range result.Failed {
			pr.Fprintf(&b, "%s\n", f.File)
			pr.Fprintf(&b, "   Error (%s): %v\n\n", f.Kind, f.Err)
		}
	}

	if active := store.Active(); active != "" {
		b.WriteString("GLOSSARY USAGE:\n")
		b.WriteString(lightRule + "\n")
		pr.Fprintf(&b, "Active glossary: %s\n", active)
		if used := store.UsedTerms(); len(used) > 0 {
			pr.Fprintf(&b, "Used terms (%d):\n", len(used))
			for _, u := range used {
				pr.Fprintf(&b, "   • %s → %s (used %d times)\n", u.Term, u.Translation, u.Count)
			}
		} else {
			b.WriteString("No glossary terms were used in this translation.\n")
		}
		b.WriteString("\n")
	}

	if len(journal) > 0 {
		b.WriteString("DETAILED TRANSLATION LOG:\n")
		b.WriteString(lightRule + "\n")
		for _, line := range journal {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
