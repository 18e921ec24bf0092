// Package gotdoc provides an AI-powered document translation pipeline.
//
// Gotdoc reads plain text, PDF, Word and HTML documents from a folder, sends
// their text to a chat-completion model in paragraph-aligned chunks, applies
// a terminology glossary, and writes the translations together with a run log
// and an updated glossary snapshot.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/ZaguanLabs/gotdoc"
//	    "github.com/ZaguanLabs/gotdoc/glossary"
//	    "github.com/ZaguanLabs/gotdoc/pipeline"
//	    "github.com/ZaguanLabs/gotdoc/provider"
//	)
//
//	func main() {
//	    creds := gotdoc.Credentials{Endpoint: endpoint, APIKey: key}
//	    completer, _ := provider.New(context.Background(), provider.Config{
//	        Name:        provider.NameAzureInference,
//	        Credentials: creds,
//	    })
//
//	    client := gotdoc.NewClient(completer, creds,
//	        gotdoc.WithLanguages("ko", "en"),
//	    )
//
//	    p := pipeline.New(client, pipeline.WithGlossaries(glossary.NewStore()))
//	    o := pipeline.NewOrchestrator(p, pipeline.WithOutputRoot("./out"))
//
//	    result, err := o.ProcessFolder(context.Background(), "./novel", pipeline.Job{
//	        SourceLang: "ko",
//	        TargetLang: "en",
//	        Context:    "Fantasy light novel",
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(len(result.Processed), "translated")
//	}
package gotdoc
