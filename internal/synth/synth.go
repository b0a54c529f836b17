// Package synth produces abstractive per-section summaries through an
// OpenAI-compatible chat endpoint. It is optional: the extractive pipeline
// never depends on it.
package synth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"wikibrief/internal/extract"
	"wikibrief/internal/llm"
)

// ErrSectionTooShort marks sections skipped for lack of content.
var ErrSectionTooShort = errors.New("section too short to summarize")

const (
	defaultMinSectionChars = 50
	maxResponseTokens      = 200
	systemPrompt           = "You are a helpful summarizer. Provide concise, accurate summaries that capture the key information and main points."
)

// Summarizer calls the chat model once per article section.
type Summarizer struct {
	Client llm.Client
	Model  string
	// MinSectionChars skips sections with less content. Zero means default (50).
	MinSectionChars int

	// sleep is swappable in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// SectionSummary pairs a section heading with its model-written summary.
type SectionSummary struct {
	Heading string
	Summary string
}

// Section summarizes a single section body. Sections below the minimum
// length report ErrSectionTooShort.
func (s *Summarizer) Section(ctx context.Context, heading, text string) (string, error) {
	if s.Client == nil || strings.TrimSpace(s.Model) == "" {
		return "", errors.New("summarizer not configured")
	}
	min := s.MinSectionChars
	if min <= 0 {
		min = defaultMinSectionChars
	}
	text = strings.TrimSpace(text)
	if len(text) < min {
		return "", fmt.Errorf("%q: %w", heading, ErrSectionTooShort)
	}

	req := openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Summarize the following text in 2-4 concise, coherent sentences. Focus on the main points and key information:\n\n" + text},
		},
		Temperature: 0.3,
		MaxTokens:   maxResponseTokens,
		N:           1,
	}
	resp, err := s.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		// One short-backoff retry; the context deadline still bounds it.
		s.backoff(100 * time.Millisecond)
		resp, err = s.Client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("summarize %q (after retry): %w", heading, err)
		}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarize %q: empty response", heading)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("summarize %q: empty response", heading)
	}
	return out, nil
}

// Document summarizes every section of doc, silently skipping too-short
// sections. Any other failure aborts the run.
func (s *Summarizer) Document(ctx context.Context, doc extract.Document) ([]SectionSummary, error) {
	var out []SectionSummary
	for _, sec := range doc.Sections {
		body := strings.Join(sec.Paragraphs, "\n\n")
		sum, err := s.Section(ctx, sec.Heading, body)
		if errors.Is(err, ErrSectionTooShort) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, SectionSummary{Heading: sec.Heading, Summary: sum})
	}
	return out, nil
}

func (s *Summarizer) backoff(d time.Duration) {
	if s.sleep != nil {
		s.sleep(d)
		return
	}
	time.Sleep(d)
}
