package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"wikibrief/internal/keywords"
)

// RenderText prints the interactive result: the summary line and the
// comma-separated keyword list.
func RenderText(w io.Writer, r Result) {
	fmt.Fprintf(w, "Summary: %s\n", r.Summary.Text())
	fmt.Fprintf(w, "Keywords: %s\n", strings.Join(keywordTerms(r.Keywords), ", "))
}

// RenderMarkdown builds the report artifact: title, extractive summary,
// keywords, and any abstractive section summaries. Subsection headings
// ("H2 > H3") render one level deeper.
func RenderMarkdown(r Result) string {
	var b strings.Builder
	title := r.Title
	if title == "" {
		title = r.URL
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Summary\n\n")
	if r.Summary.Text() != "" {
		b.WriteString(r.Summary.Text())
	} else {
		b.WriteString("_No extractable content._")
	}
	b.WriteString("\n\n## Keywords\n\n")
	if len(r.Keywords) > 0 {
		b.WriteString(strings.Join(keywordTerms(r.Keywords), ", "))
	} else {
		b.WriteString("_none_")
	}
	b.WriteString("\n")

	for _, sec := range r.Sections {
		prefix := "##"
		if strings.Contains(sec.Heading, ">") {
			prefix = "###"
		}
		fmt.Fprintf(&b, "\n%s %s\n\n%s\n", prefix, sec.Heading, sec.Summary)
	}
	return b.String()
}

func keywordTerms(kws []keywords.Keyword) []string {
	return lo.Map(kws, func(k keywords.Keyword, _ int) string { return k.Term })
}
