// Package app wires the pipeline together: fetch, extract, summarize,
// extract keywords, render.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"wikibrief/internal/extract"
	"wikibrief/internal/fetch"
	"wikibrief/internal/keywords"
	"wikibrief/internal/llm"
	"wikibrief/internal/summarize"
	"wikibrief/internal/synth"
)

// App holds the long-lived collaborators of a run.
type App struct {
	cfg     Config
	fetcher *fetch.Client
	synth   *synth.Summarizer
}

// Result carries everything a run produced for one article.
type Result struct {
	URL      string
	Title    string
	Summary  summarize.Summary
	Keywords []keywords.Keyword
	// Sections holds abstractive per-section summaries when an LLM
	// endpoint is configured; nil otherwise.
	Sections []synth.SectionSummary
}

// New validates cfg and builds the application.
func New(cfg Config) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{
		cfg: cfg,
		fetcher: &fetch.Client{
			UserAgent:         cfg.UserAgent,
			MaxAttempts:       2,
			PerRequestTimeout: cfg.Timeout,
			CacheTTL:          cfg.Timeout * 4,
		},
	}
	if cfg.LLMBaseURL != "" || cfg.LLMModel != "" {
		a.synth = &synth.Summarizer{
			Client: llm.New(cfg.LLMBaseURL, cfg.LLMAPIKey),
			Model:  cfg.LLMModel,
		}
	}
	return a, nil
}

// Process runs the pipeline for one article URL. A page without extractable
// content yields a degenerate empty Result and no error.
func (a *App) Process(ctx context.Context, rawURL string) (Result, error) {
	body, _, err := a.fetcher.Get(ctx, rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("fetch article: %w", err)
	}
	log.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("fetched page")

	doc, err := extract.FromHTML(body, rawURL)
	if err != nil {
		return Result{}, fmt.Errorf("extract content: %w", err)
	}
	res := Result{URL: rawURL, Title: doc.Title}

	text := doc.Text()
	if text == "" {
		log.Warn().Str("url", rawURL).Msg("no extractable content; emitting empty results")
		return res, nil
	}
	log.Info().Str("title", doc.Title).Int("sections", len(doc.Sections)).Msg("extracted article")

	res.Summary, err = summarize.Summarize(text, summarize.Options{
		Sentences: a.cfg.SummarySentences,
		Ratio:     a.cfg.SummaryRatio,
	})
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}
	res.Keywords = keywords.Extract(text, a.cfg.KeywordCount)
	log.Debug().
		Int("summarySentences", len(res.Summary.Sentences)).
		Int("keywords", len(res.Keywords)).
		Msg("ranked content")

	if a.synth != nil {
		res.Sections, err = a.synth.Document(ctx, doc)
		if err != nil {
			return Result{}, fmt.Errorf("section summaries: %w", err)
		}
		log.Info().Int("sections", len(res.Sections)).Msg("generated abstractive summaries")
	}
	return res, nil
}

// Run processes one URL and renders the result to stdout plus any configured
// report artifacts.
func (a *App) Run(ctx context.Context, rawURL string) error {
	res, err := a.Process(ctx, rawURL)
	if err != nil {
		return err
	}
	RenderText(os.Stdout, res)

	if a.cfg.OutputPath != "" || a.cfg.OutputPDFPath != "" {
		md := RenderMarkdown(res)
		if a.cfg.OutputPath != "" {
			if err := os.WriteFile(a.cfg.OutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			log.Info().Str("out", a.cfg.OutputPath).Msg("wrote report")
		}
		if a.cfg.OutputPDFPath != "" {
			if err := writeSimplePDF(md, a.cfg.OutputPDFPath); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			log.Info().Str("out", a.cfg.OutputPDFPath).Msg("wrote pdf")
		}
	}
	return nil
}
