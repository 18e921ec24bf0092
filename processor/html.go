package processor

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/ZaguanLabs/gotdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements shorter than these byte lengths are not worth a translation.
const (
	minBlockText      = 3
	minMeaningfulText = 5
)

var formattingOnly = regexp.MustCompile(`^[#\-=\s]*$`)

// Element is one translatable node of a parsed HTML document.
type Element struct {
	Kind gotdoc.ElementKind
	Text string // whitespace-collapsed source text, never contains a newline
	node *html.Node
}

// Document is parsed HTML ready for extraction and write-back.
type Document struct {
	doc      *goquery.Document
	fragment bool
}

// HTMLProcessor translates HTML while leaving every non-text node of the
// document in place.
type HTMLProcessor struct {
	translator gotdoc.ChunkTranslator
	opts       options
}

// NewHTMLProcessor creates an HTMLProcessor with a default chunk budget of
// gotdoc.DefaultHTMLChunkSize characters.
func NewHTMLProcessor(translator gotdoc.ChunkTranslator, opts ...Option) *HTMLProcessor {
	return &HTMLProcessor{
		translator: translator,
		opts:       buildOptions(gotdoc.DefaultHTMLChunkSize, opts),
	}
}

// Parse parses markup. Input with none of the <html>, <head> or <body> tags
// is treated as a fragment and rendered back without synthesized wrappers.
func (p *HTMLProcessor) Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &gotdoc.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return &Document{
		doc:      doc,
		fragment: isFragment(markup),
	}, nil
}

// Extract returns the translatable elements of doc in document order: the
// title, headings, paragraphs and divs with direct text. An empty title is
// removed from doc when the document has no meaningful text at all.
func (p *HTMLProcessor) Extract(doc *Document) []Element {
	var title *html.Node
	if sel := doc.doc.Find("title").First(); sel.Length() > 0 {
		title = sel.Nodes[0]
	}

	var elements []Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.skipped(n) {
				return
			}

			switch {
			case n == title:
				if text := p.fullText(n); text != "" {
					elements = append(elements, Element{Kind: gotdoc.KindTitle, Text: text, node: n})
				}
				return
			case isHeading(n):
				if text := p.fullText(n); text != "" {
					elements = append(elements, Element{Kind: gotdoc.KindHeading, Text: text, node: n})
				}
				return
			case n.DataAtom == atom.P:
				text := p.fullText(n)
				if len(text) > minBlockText && !formattingOnly.MatchString(text) {
					elements = append(elements, Element{Kind: gotdoc.KindParagraph, Text: text, node: n})
					return
				}
			case n.DataAtom == atom.Div:
				if text := directText(n); len(text) > minBlockText {
					elements = append(elements, Element{Kind: gotdoc.KindText, Text: text, node: n})
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range doc.doc.Nodes {
		walk(n)
	}

	if title != nil && p.fullText(title) == "" && !hasMeaningfulContent(doc.doc) {
		if title.Parent != nil {
			title.Parent.RemoveChild(title)
		}
	}

	return elements
}

// Apply writes translations[i] into elements[i]. Missing or blank
// translations leave the element's original text in place.
func (p *HTMLProcessor) Apply(elements []Element, translations []string) {
	for i, el := range elements {
		if i >= len(translations) {
			return
		}
		line := strings.TrimSpace(translations[i])
		if line == "" {
			continue
		}

		var nodes []*html.Node
		if el.Kind == gotdoc.KindText {
			nodes = directTextNodes(el.node)
		} else {
			nodes = p.textNodes(el.node)
		}
		replaceText(nodes, line)
	}
}

// Render serializes doc.
func (p *HTMLProcessor) Render(doc *Document) (string, error) {
	if !doc.fragment {
		out, err := doc.doc.Html()
		if err != nil {
			return "", &gotdoc.ProcessorError{
				Message:     "failed to serialize HTML",
				Cause:       err,
				ContentType: "html",
			}
		}
		return out, nil
	}

	var buf bytes.Buffer
	for _, container := range []string{"head", "body"} {
		sel := doc.doc.Find(container).First()
		if sel.Length() == 0 {
			continue
		}
		for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", &gotdoc.ProcessorError{
					Message:     "failed to serialize HTML fragment",
					Cause:       err,
					ContentType: "html",
				}
			}
		}
	}
	return buf.String(), nil
}

// Translate translates markup chunk by chunk. Each chunk is sent as one
// newline-joined request and the reply is split back onto its elements by
// line. Markup with nothing to translate is returned unchanged.
func (p *HTMLProcessor) Translate(ctx context.Context, markup, hint string) (string, error) {
	doc, err := p.Parse(markup)
	if err != nil {
		return "", err
	}

	elements := p.Extract(doc)
	if len(elements) == 0 {
		p.opts.logger.Debug().Msg("no translatable content found in HTML")
		return markup, nil
	}

	glossary := p.opts.glossaryBlock()
	chunks := gotdoc.GroupBySize(elements, func(e Element) int {
		return utf8.RuneCountInString(e.Text)
	}, p.opts.chunkSize)

	translations := make([]string, 0, len(elements))
	for i, chunk := range chunks {
		lines := make([]string, len(chunk))
		for j, el := range chunk {
			lines[j] = el.Text
		}
		combined := strings.Join(lines, "\n")

		p.opts.logger.Debug().
			Int("chunk", i+1).
			Int("chunks", len(chunks)).
			Int("elements", len(chunk)).
			Msg("translating HTML chunk")

		out, err := p.translator.Translate(ctx, gotdoc.TranslateRequest{
			Text:     combined,
			Glossary: glossary,
			Context:  hint,
			Kind:     gotdoc.KindParagraph,
		})
		if err != nil {
			return "", err
		}
		p.opts.trackUsage(combined, out)

		parts := strings.Split(out, "\n")
		for j := range chunk {
			if j < len(parts) {
				translations = append(translations, parts[j])
			} else {
				translations = append(translations, "")
			}
		}
	}

	p.Apply(elements, translations)
	return p.Render(doc)
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// skipped reports whether n roots a subtree that is never translated.
func (p *HTMLProcessor) skipped(n *html.Node) bool {
	if p.opts.ignoredTags[strings.ToLower(n.Data)] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "data-no-translate" {
			return true
		}
	}
	return false
}

// textNodes returns the text nodes under n outside ignored subtrees.
func (p *HTMLProcessor) textNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				nodes = append(nodes, c)
			case html.ElementNode:
				if !p.skipped(c) {
					walk(c)
				}
			}
		}
	}
	walk(n)
	return nodes
}

func (p *HTMLProcessor) fullText(n *html.Node) string {
	return joinText(p.textNodes(n))
}

func directTextNodes(n *html.Node) []*html.Node {
	var nodes []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

func directText(n *html.Node) string {
	return joinText(directTextNodes(n))
}

// joinText concatenates node text with whitespace runs collapsed.
func joinText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.Data)
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// replaceText puts line into the first visible text node and empties the
// other visible ones, leaving sibling elements untouched.
func replaceText(nodes []*html.Node, line string) {
	placed := false
	for _, n := range nodes {
		if strings.TrimSpace(n.Data) == "" {
			continue
		}
		if !placed {
			n.Data = preserveWhitespace(n.Data, line)
			placed = true
			continue
		}
		n.Data = ""
	}
}

func isFragment(markup string) bool {
	lower := strings.ToLower(markup)
	for _, tag := range []string{"<html", "<head", "<body"} {
		if strings.Contains(lower, tag) {
			return false
		}
	}
	return true
}

func isHeading(n *html.Node) bool {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}

// hasMeaningfulContent reports whether any text block of doc carries real
// prose rather than formatting marks.
func hasMeaningfulContent(doc *goquery.Document) bool {
	found := false
	doc.Find("p, div, h1, h2, h3, h4, h5, h6, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if len(text) > minMeaningfulText && !strings.HasPrefix(text, "#") && !formattingOnly.MatchString(text) {
			found = true
			return false
		}
		return true
	})
	return found
}

// preserveWhitespace preserves the original leading/trailing whitespace.
func preserveWhitespace(original, translated string) string {
	leadingLen := len(original) - len(strings.TrimLeft(original, " \t\n\r"))
	leading := original[:leadingLen]

	trailingLen := len(original) - len(strings.TrimRight(original, " \t\n\r"))
	trailing := ""
	if trailingLen > 0 {
		trailing = original[len(original)-trailingLen:]
	}

	return leading + translated + trailing
}

// Verify HTMLProcessor implements Processor
var _ Processor = (*HTMLProcessor)(nil)
