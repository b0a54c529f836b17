// Package extract turns Wikipedia HTML into plain article text, preserving
// the section structure of the page.
package extract

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Sections whose prose is navigation or reference apparatus, not article text.
var skipSections = map[string]struct{}{
	"Contents":        {},
	"References":      {},
	"External links":  {},
	"See also":        {},
	"Further reading": {},
	"Notes":           {},
	"Bibliography":    {},
}

// minParagraphChars drops stub paragraphs such as image captions that
// Wikipedia renders as <p> inside the content div.
const minParagraphChars = 50

var citationRe = regexp.MustCompile(`\[\d+\]`)

// Section is a run of paragraphs under one heading. Subsection headings are
// folded into the name as "H2 > H3".
type Section struct {
	Heading    string
	Paragraphs []string
}

// Document is the extracted article content.
type Document struct {
	Title    string
	Sections []Section
}

// Text concatenates all paragraph text with sentence-preserving whitespace.
func (d Document) Text() string {
	var parts []string
	for _, sec := range d.Sections {
		parts = append(parts, sec.Paragraphs...)
	}
	return strings.Join(parts, " ")
}

// FromHTML extracts the article from a Wikipedia page. When the page has no
// Wikipedia content container it falls back to generic readability
// extraction; a page with no recognizable content at all yields an empty
// Document and no error.
func FromHTML(input []byte, pageURL string) (Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(input))
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("h1#firstHeading").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	content := doc.Find("#mw-content-text")
	if content.Length() == 0 {
		return fromReadability(input, pageURL, title)
	}

	// Citation superscripts and edit links would otherwise leak into text.
	content.Find("sup.reference, span.mw-editsection, style, script").Remove()

	currentH2 := "Introduction"
	currentH3 := ""
	out := Document{Title: title}
	index := map[string]int{}

	content.Find("h2, h3, p").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "h2":
			heading := cleanHeading(s.Text())
			if _, skip := skipSections[heading]; skip {
				currentH2, currentH3 = "", ""
				return
			}
			currentH2, currentH3 = heading, ""
		case "h3":
			currentH3 = cleanHeading(s.Text())
		case "p":
			if currentH2 == "" {
				return // paragraph under a skipped section
			}
			para := cleanText(s.Text())
			if len(para) < minParagraphChars || isBoilerplate(para) {
				return
			}
			name := currentH2
			if currentH3 != "" {
				name = currentH2 + " > " + currentH3
			}
			i, ok := index[name]
			if !ok {
				out.Sections = append(out.Sections, Section{Heading: name})
				i = len(out.Sections) - 1
				index[name] = i
			}
			out.Sections[i].Paragraphs = append(out.Sections[i].Paragraphs, para)
		}
	})
	return out, nil
}

// fromReadability handles non-Wikipedia layouts with generic article
// extraction. The whole readable body becomes a single section.
func fromReadability(input []byte, pageURL string, title string) (Document, error) {
	var u *url.URL
	if pageURL != "" {
		u, _ = url.Parse(pageURL)
	}
	article, err := readability.FromReader(bytes.NewReader(input), u)
	if err != nil {
		// No content container anywhere: degenerate empty result.
		return Document{Title: title}, nil
	}
	text := cleanText(article.TextContent)
	if text == "" {
		return Document{Title: title}, nil
	}
	if article.Title != "" {
		title = article.Title
	}
	return Document{
		Title:    title,
		Sections: []Section{{Heading: "Introduction", Paragraphs: []string{text}}},
	}, nil
}

func cleanHeading(s string) string {
	s = strings.ReplaceAll(s, "[edit]", "")
	return cleanText(s)
}

// cleanText strips citation markers like [12] and collapses whitespace runs.
func cleanText(s string) string {
	s = citationRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\u00a0", " ") // nbsp
	return strings.Join(strings.Fields(s), " ")
}

func isBoilerplate(para string) bool {
	low := strings.ToLower(para)
	for _, marker := range []string{"coordinates:", "wikimedia commons", "category:", "this article"} {
		if strings.Contains(low, marker) {
			return true
		}
	}
	return false
}
