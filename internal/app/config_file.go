package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flags.
type FileConfig struct {
	URL string `yaml:"url" json:"url"`

	Summary struct {
		Sentences int     `yaml:"sentences" json:"sentences"`
		Ratio     float64 `yaml:"ratio" json:"ratio"`
	} `yaml:"summary" json:"summary"`

	Keywords int `yaml:"keywords" json:"keywords"`

	Fetch struct {
		// Timeout is a Go duration string, e.g. "30s".
		Timeout   string `yaml:"timeout" json:"timeout"`
		UserAgent string `yaml:"ua" json:"ua"`
	} `yaml:"fetch" json:"fetch"`

	Output    string `yaml:"output" json:"output"`
	OutputPDF string `yaml:"outputPDF" json:"outputPDF"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields
// still at their flag defaults. Flags should already have been parsed; this
// lets file config supply defaults while preserving explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.URL == "" && fc.URL != "" {
		cfg.URL = fc.URL
	}
	if (cfg.SummarySentences == 0 || cfg.SummarySentences == DefaultSummarySentences) && fc.Summary.Sentences > 0 {
		cfg.SummarySentences = fc.Summary.Sentences
	}
	if cfg.SummaryRatio == 0 && fc.Summary.Ratio > 0 {
		cfg.SummaryRatio = fc.Summary.Ratio
		// A file-supplied ratio replaces the sentence-count default.
		if fc.Summary.Sentences == 0 && cfg.SummarySentences == DefaultSummarySentences {
			cfg.SummarySentences = 0
		}
	}
	if (cfg.KeywordCount == 0 || cfg.KeywordCount == DefaultKeywordCount) && fc.Keywords > 0 {
		cfg.KeywordCount = fc.Keywords
	}
	if cfg.Timeout == 0 || cfg.Timeout == DefaultTimeout {
		if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if cfg.UserAgent == "" && fc.Fetch.UserAgent != "" {
		cfg.UserAgent = fc.Fetch.UserAgent
	}
	if cfg.OutputPath == "" && fc.Output != "" {
		cfg.OutputPath = fc.Output
	}
	if cfg.OutputPDFPath == "" && fc.OutputPDF != "" {
		cfg.OutputPDFPath = fc.OutputPDF
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation.
func ValidateConfig(cfg Config) error {
	if cfg.SummarySentences < 0 || cfg.SummaryRatio < 0 || cfg.KeywordCount < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	if cfg.SummarySentences == 0 && cfg.SummaryRatio == 0 {
		return errors.New("config: summary length is required (sentences or ratio)")
	}
	if cfg.SummaryRatio > 1 {
		return errors.New("config: summary ratio must be at most 1")
	}
	if cfg.LLMBaseURL != "" && cfg.LLMModel == "" {
		return errors.New("config: llm.model is required when llm.base is set")
	}
	return nil
}
