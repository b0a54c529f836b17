package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wikibrief/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		articleURL string
		configPath string
		sentences  int
		ratio      float64
		keywordN   int
		timeout    time.Duration
		userAgent  string
		outputPath string
		outputPDF  string
		llmBaseURL string
		llmModel   string
		llmKey     string
		verbose    bool
	)

	flag.StringVar(&articleURL, "url", "", "Wikipedia article URL; when empty, the URL is read from stdin")
	flag.StringVar(&configPath, "config", "", "Path to optional YAML/JSON config file")
	flag.IntVar(&sentences, "sentences", app.DefaultSummarySentences, "Number of sentences in the summary")
	flag.Float64Var(&ratio, "ratio", 0, "Summary length as a ratio of the article's sentence count (overrides -sentences when set)")
	flag.IntVar(&keywordN, "keywords", app.DefaultKeywordCount, "Number of keywords to extract")
	flag.DurationVar(&timeout, "timeout", app.DefaultTimeout, "Per-request HTTP timeout")
	flag.StringVar(&userAgent, "ua", "", "Custom User-Agent for the article fetch")
	flag.StringVar(&outputPath, "output", "", "Optional path to write a Markdown report")
	flag.StringVar(&outputPDF, "output.pdf", "", "Optional path to write a PDF report")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL for abstractive section summaries")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name for abstractive section summaries")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for the OpenAI-compatible server")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := app.Config{
		URL:              articleURL,
		SummarySentences: sentences,
		SummaryRatio:     ratio,
		KeywordCount:     keywordN,
		Timeout:          timeout,
		UserAgent:        userAgent,
		OutputPath:       outputPath,
		OutputPDFPath:    outputPDF,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		Verbose:          verbose,
	}
	// A ratio flag replaces the sentence-count default.
	if ratio > 0 && sentences == app.DefaultSummarySentences {
		cfg.SummarySentences = 0
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("failed to load config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	ctx := context.Background()

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	rawURL := cfg.URL
	if rawURL == "" {
		if rawURL, err = promptURL(os.Stdin, os.Stdout); err != nil {
			return err
		}
	}
	if err := validateURL(rawURL); err != nil {
		return err
	}

	return a.Run(ctx, rawURL)
}

// promptURL blocks on one line of input, the interactive entry path.
func promptURL(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "Which Wikipedia article would you want me to summarize: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", fmt.Errorf("read url: %w", err)
	}
	if line == "" {
		return "", errors.New("no URL given")
	}
	return line, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: expected an absolute http(s) URL", raw)
	}
	return nil
}
