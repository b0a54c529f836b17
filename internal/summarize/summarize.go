// Package summarize produces extractive summaries: it ranks sentences by
// centrality over a similarity graph and emits the top ones in their
// original document order.
package summarize

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrTooShort is reported by Rank when the input has fewer than two
// sentences, so there is no graph to rank.
var ErrTooShort = errors.New("text too short to summarize")

const (
	damping       = 0.85
	tolerance     = 1e-6
	maxIterations = 100
)

// Options controls summary length. An absolute sentence count takes
// precedence; otherwise Ratio scales the original sentence count.
type Options struct {
	Sentences int
	Ratio     float64
}

// Summary is an ordered subsequence of the input sentences.
type Summary struct {
	Sentences []string
}

// Text joins the summary sentences with single spaces.
func (s Summary) Text() string {
	return strings.Join(s.Sentences, " ")
}

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
)

// Split segments text into sentences using the punkt tokenizer. The
// tokenizer is trained at first use and cached for the process lifetime.
func Split(text string) []string {
	tokenizerOnce.Do(func() {
		tokenizer, _ = english.NewSentenceTokenizer(nil)
	})
	text = strings.TrimSpace(text)
	if text == "" || tokenizer == nil {
		return nil
	}
	raw := tokenizer.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Summarize selects the highest-ranked sentences of text up to the length
// budget. Empty input yields an empty summary; input with fewer than two
// sentences is returned unchanged.
func Summarize(text string, opt Options) (Summary, error) {
	sents := Split(text)
	if len(sents) == 0 {
		return Summary{}, nil
	}

	k, err := targetCount(opt, len(sents))
	if err != nil {
		return Summary{}, err
	}

	scores, err := Rank(sents)
	if errors.Is(err, ErrTooShort) {
		return Summary{Sentences: sents}, nil
	}
	if err != nil {
		return Summary{}, err
	}
	if k >= len(sents) {
		return Summary{Sentences: sents}, nil
	}

	// Order candidates by score, breaking ties toward earlier sentences,
	// then restore document order among the winners.
	idx := make([]int, len(sents))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if scores[idx[a]] != scores[idx[b]] {
			return scores[idx[a]] > scores[idx[b]]
		}
		return idx[a] < idx[b]
	})
	selected := append([]int(nil), idx[:k]...)
	sort.Ints(selected)

	out := make([]string, 0, k)
	for _, i := range selected {
		out = append(out, sents[i])
	}
	return Summary{Sentences: out}, nil
}

// Rank scores sentences by damped power iteration over a word-overlap
// similarity graph. Scores are deterministic for identical input.
func Rank(sents []string) ([]float64, error) {
	n := len(sents)
	if n < 2 {
		return nil, ErrTooShort
	}

	words := make([]map[string]struct{}, n)
	for i, s := range sents {
		words[i] = contentWords(s)
	}

	w := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sim := similarity(words[i], words[j])
			w.Set(i, j, sim)
			w.Set(j, i, sim)
		}
	}
	// Row-normalize so each sentence distributes one unit of weight.
	for i := 0; i < n; i++ {
		row := w.RawRowView(i)
		if sum := floats.Sum(row); sum > 0 {
			floats.Scale(1/sum, row)
		}
	}

	rank := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rank.SetVec(i, 1/float64(n))
	}
	prev := mat.NewVecDense(n, nil)
	for iter := 0; iter < maxIterations; iter++ {
		prev.CopyVec(rank)
		rank.MulVec(w.T(), prev)
		for i := 0; i < n; i++ {
			rank.SetVec(i, (1-damping)/float64(n)+damping*rank.AtVec(i))
		}
		if floats.Distance(rank.RawVector().Data, prev.RawVector().Data, 1) < tolerance {
			break
		}
	}
	return append([]float64(nil), rank.RawVector().Data...), nil
}

func targetCount(opt Options, n int) (int, error) {
	var k int
	switch {
	case opt.Sentences > 0:
		k = opt.Sentences
	case opt.Ratio > 0:
		k = int(math.Ceil(opt.Ratio * float64(n)))
	default:
		return 0, fmt.Errorf("summary length not specified")
	}
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}
	return k, nil
}

// contentWords returns the lowercased non-stopword tokens of a sentence.
func contentWords(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range strings.Fields(stopwords.CleanString(s, "en", false)) {
		set[tok] = struct{}{}
	}
	return set
}

// similarity is word overlap normalized by sentence lengths, the classic
// TextRank edge weight.
func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var common int
	for t := range a {
		if _, ok := b[t]; ok {
			common++
		}
	}
	if common == 0 {
		return 0
	}
	norm := math.Log(1+float64(len(a))) + math.Log(1+float64(len(b)))
	if norm == 0 {
		return 0
	}
	return float64(common) / norm
}
