package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is one fetched document plus its visible text, precomputed once so
// every strategy works off the same view.
type Page struct {
	Doc   *goquery.Document
	Text  string
	Lines []string
}

// NewPage derives the line-oriented text view the strategies scan.
func NewPage(doc *goquery.Document) *Page {
	text := DocumentText(doc)
	return &Page{
		Doc:   doc,
		Text:  text,
		Lines: splitLines(text),
	}
}

var blockTags = map[string]struct{}{
	"p": {}, "div": {}, "br": {}, "li": {}, "tr": {}, "td": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"section": {}, "article": {}, "header": {}, "footer": {},
	"ul": {}, "ol": {}, "table": {}, "blockquote": {}, "figcaption": {},
}

var skipTags = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "head": {}, "iframe": {},
}

// DocumentText renders the document's visible text with newlines at block
// element boundaries, approximating how a browser lays lines out. Script and
// style content is invisible and skipped.
func DocumentText(doc *goquery.Document) string {
	var b strings.Builder
	for _, n := range doc.Nodes {
		writeNodeText(&b, n)
	}
	return b.String()
}

// SelectionText is DocumentText scoped to one region of the document.
func SelectionText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeNodeText(&b, n)
	}
	return b.String()
}

func writeNodeText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode {
		if _, skip := skipTags[n.Data]; skip {
			return
		}
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNodeText(b, c)
	}
	if n.Type == html.ElementNode {
		if _, block := blockTags[n.Data]; block {
			b.WriteByte('\n')
		}
	}
}

func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}

// titleCase uppercases the first letter of each word, lowercasing the rest,
// so harvested titles render consistently ("chief compliance officer" ->
// "Chief Compliance Officer").
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if r >= 'a' && r <= 'z' {
				runes[j] = r - 'a' + 'A'
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
