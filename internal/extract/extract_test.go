package extract

import (
	"strings"
	"testing"
)

const wikiHTML = `<!DOCTYPE html>
<html><head><title>Python (programming language) - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Python (programming language)</h1>
<div id="mw-content-text">
<p>Python is a high-level, general-purpose programming language. Its design philosophy emphasizes code readability with the use of significant indentation.<sup class="reference">[1]</sup></p>
<p>Short stub.</p>
<h2>History<span class="mw-editsection">[edit]</span></h2>
<p>Python was conceived in the late 1980s by Guido van Rossum as a successor to the ABC programming language.[2] Python 2.0 was released in 2000.</p>
<h3>Design philosophy</h3>
<p>Python is a multi-paradigm programming language that supports object-oriented programming and structured programming with many features borrowed from functional languages.</p>
<h2>References</h2>
<p>This reference paragraph is long enough to pass the length filter but sits under a skipped section heading.</p>
<h2>Ecosystem</h2>
<p>This article incorporates text from a free content work and should therefore be filtered out as boilerplate.</p>
<p>Python consistently ranks as one of the most popular programming languages and has a large standard library.</p>
</div>
</body></html>`

func TestFromHTML_Wikipedia(t *testing.T) {
	doc, err := FromHTML([]byte(wikiHTML), "https://en.wikipedia.org/wiki/Python_(programming_language)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Python (programming language)" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}

	var headings []string
	for _, s := range doc.Sections {
		headings = append(headings, s.Heading)
	}
	want := []string{"Introduction", "History", "History > Design philosophy", "Ecosystem"}
	if len(headings) != len(want) {
		t.Fatalf("headings = %v, want %v", headings, want)
	}
	for i := range want {
		if headings[i] != want[i] {
			t.Fatalf("headings[%d] = %q, want %q", i, headings[i], want[i])
		}
	}

	text := doc.Text()
	if text == "" {
		t.Fatalf("expected non-empty text")
	}
	for _, banned := range []string{"<", ">", "[1]", "[2]", "[edit]", "Short stub", "skipped section", "This article"} {
		if strings.Contains(text, banned) {
			t.Fatalf("text contains %q: %s", banned, text)
		}
	}
	if !strings.Contains(text, "Guido van Rossum") {
		t.Fatalf("expected history paragraph in text")
	}
}

func TestFromHTML_ReadabilityFallback(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>Plain article</title></head><body><article>` +
		`<p>The quick brown fox jumps over the lazy dog, and the narrative continues with enough prose to satisfy generic readability scoring for ordinary article pages on the web.</p>` +
		`<p>Readable content extraction looks for dense paragraph text, so this fixture repeats full sentences with commas, clauses, and ordinary punctuation to resemble a real article body.</p>` +
		`<p>A third paragraph keeps the candidate container comfortably above the minimum thresholds used by content scoring heuristics in readability implementations.</p>` +
		`</article></body></html>`

	doc, err := FromHTML([]byte(page), "https://example.com/post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() == "" {
		t.Fatalf("expected fallback extraction to find text")
	}
	if strings.Contains(doc.Text(), "<p>") {
		t.Fatalf("markup leaked into text")
	}
}

func TestFromHTML_NoContent(t *testing.T) {
	doc, err := FromHTML([]byte(`<html><head><title>empty</title></head><body></body></html>`), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() != "" {
		t.Fatalf("expected empty text, got %q", doc.Text())
	}
	if len(doc.Sections) != 0 {
		t.Fatalf("expected no sections")
	}
}

func TestFromHTML_EmptyInput(t *testing.T) {
	doc, err := FromHTML(nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text() != "" {
		t.Fatalf("expected empty document")
	}
}
