// Package keywords extracts the most informative terms of a text by an
// entropy-weighted frequency score.
package keywords

import (
	"math"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// segmentCount is the number of positional buckets the token stream is
// divided into when measuring how evenly a term spreads over the document.
const segmentCount = 8

// Keyword is a scored term.
type Keyword struct {
	Term  string
	Score float64
}

// Extract returns the top-n keywords of text, sorted by descending score
// with ties broken by first occurrence. Terms are lowercase, stopword-free
// tokens of the source text. Empty input yields nil.
func Extract(text string, n int) []Keyword {
	if n <= 0 {
		return nil
	}
	toks := strings.Fields(stopwords.CleanString(text, "en", false))
	if len(toks) == 0 {
		return nil
	}

	segLen := (len(toks) + segmentCount - 1) / segmentCount

	type termStat struct {
		count    int
		first    int
		segments []float64
	}
	stats := map[string]*termStat{}
	var order []string
	for i, tok := range toks {
		st, ok := stats[tok]
		if !ok {
			st = &termStat{first: i, segments: make([]float64, segmentCount)}
			stats[tok] = st
			order = append(order, tok)
		}
		st.count++
		st.segments[i/segLen]++
	}

	out := make([]Keyword, 0, len(order))
	for _, term := range order {
		st := stats[term]
		out = append(out, Keyword{Term: term, Score: score(st.count, st.segments)})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Score != out[b].Score {
			return out[a].Score > out[b].Score
		}
		return stats[out[a].Term].first < stats[out[b].Term].first
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// score weighs raw frequency by the normalized entropy of the term's
// positional distribution: terms that recur across the whole document beat
// terms that burst once, and singletons score zero.
func score(count int, segments []float64) float64 {
	total := floats.Sum(segments)
	if total == 0 {
		return 0
	}
	p := append([]float64(nil), segments...)
	floats.Scale(1/total, p)
	entropy := stat.Entropy(p)
	return float64(count) * entropy / math.Log(float64(len(segments)))
}
