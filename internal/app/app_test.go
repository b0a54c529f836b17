package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"wikibrief/internal/extract"
	"wikibrief/internal/summarize"
)

const pythonArticleHTML = `<!DOCTYPE html>
<html><head><title>Python (programming language) - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Python (programming language)</h1>
<div id="mw-content-text">
<p>Python is a high-level, general-purpose programming language created by Guido van Rossum. Python emphasizes code readability and the language uses significant indentation throughout.</p>
<h2>History</h2>
<p>Python was first released in 1991 and the language quickly attracted working programmers. Many programming teams adopted Python for scripting, automation, and data analysis tasks.</p>
<h2>Ecosystem</h2>
<p>The Python ecosystem includes thousands of programming libraries maintained by volunteers. Developers keep choosing the Python language because the community documents everything carefully.</p>
<h2>References</h2>
<p>Reference apparatus that should never appear in the extracted article text at all.</p>
</div>
</body></html>`

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.SummarySentences == 0 && cfg.SummaryRatio == 0 {
		cfg.SummarySentences = DefaultSummarySentences
	}
	if cfg.KeywordCount == 0 {
		cfg.KeywordCount = DefaultKeywordCount
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	a, err := New(cfg)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func TestProcess_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(pythonArticleHTML))
	}))
	defer srv.Close()

	a := newTestApp(t, Config{})
	res, err := a.Process(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.Title != "Python (programming language)" {
		t.Fatalf("unexpected title: %q", res.Title)
	}
	if len(res.Summary.Sentences) != 3 {
		t.Fatalf("expected 3 summary sentences, got %d", len(res.Summary.Sentences))
	}

	// Summary sentences must be verbatim source sentences in source order.
	doc, err := extract.FromHTML([]byte(pythonArticleHTML), srv.URL)
	if err != nil {
		t.Fatalf("extract fixture: %v", err)
	}
	source := summarize.Split(doc.Text())
	pos := map[string]int{}
	for i, s := range source {
		pos[s] = i
	}
	last := -1
	for _, s := range res.Summary.Sentences {
		i, ok := pos[s]
		if !ok {
			t.Fatalf("summary sentence not verbatim from source: %q", s)
		}
		if i <= last {
			t.Fatalf("summary sentences out of source order")
		}
		last = i
	}

	if len(res.Keywords) == 0 || len(res.Keywords) > 5 {
		t.Fatalf("expected up to 5 keywords, got %v", res.Keywords)
	}
	terms := map[string]bool{}
	for _, k := range res.Keywords {
		terms[k.Term] = true
	}
	if !terms["python"] {
		t.Fatalf("expected python among keywords, got %v", res.Keywords)
	}
	if strings.Contains(res.Summary.Text(), "Reference apparatus") {
		t.Fatalf("skipped section leaked into summary")
	}
}

func TestProcess_Idempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(pythonArticleHTML))
	}))
	defer srv.Close()

	a := newTestApp(t, Config{})
	first, err := a.Process(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("first process: %v", err)
	}
	second, err := a.Process(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("second process: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("pipeline not idempotent:\n%v\nvs\n%v", first, second)
	}
}

func TestProcess_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>blank</title></head><body></body></html>`))
	}))
	defer srv.Close()

	a := newTestApp(t, Config{})
	res, err := a.Process(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("empty page should not error: %v", err)
	}
	if len(res.Summary.Sentences) != 0 || len(res.Keywords) != 0 {
		t.Fatalf("expected empty results, got %+v", res)
	}
}

func TestProcess_FetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer srv.Close()

	a := newTestApp(t, Config{})
	if _, err := a.Process(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected fetch error")
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{SummarySentences: -1, KeywordCount: 5}); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := New(Config{SummarySentences: 3, KeywordCount: 5, LLMBaseURL: "http://localhost:1"}); err == nil {
		t.Fatalf("expected llm.model validation error")
	}
}
