package app

import "time"

// Defaults shared between flag registration and config-file overlay.
const (
	DefaultSummarySentences = 3
	DefaultKeywordCount     = 5
	DefaultTimeout          = 15 * time.Second
)

// Config holds runtime configuration for the application.
type Config struct {
	// URL skips the interactive prompt when set.
	URL string

	// Summary length: an absolute sentence count, or a ratio of the
	// original sentence count when Sentences is zero.
	SummarySentences int
	SummaryRatio     float64

	KeywordCount int

	// Fetch
	Timeout   time.Duration
	UserAgent string

	// Optional report artifacts
	OutputPath    string
	OutputPDFPath string

	// Optional abstractive section summaries (OpenAI-compatible endpoint)
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	Verbose bool
}
