package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
	if cfg.ProbeTimeout != 5*time.Second {
		t.Errorf("ProbeTimeout = %v, want 5s", cfg.ProbeTimeout)
	}
	if cfg.PerfSamples != 3 {
		t.Errorf("PerfSamples = %d, want 3", cfg.PerfSamples)
	}
	if cfg.PerfSampleDelay != 300*time.Millisecond {
		t.Errorf("PerfSampleDelay = %v, want 300ms", cfg.PerfSampleDelay)
	}
	if cfg.Tokenizer != "treebank" || cfg.StopWords != "extended" {
		t.Errorf("Tokenizer/StopWords = %q/%q", cfg.Tokenizer, cfg.StopWords)
	}
	if cfg.ShareFetch {
		t.Error("ShareFetch = true, want false by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("PERF_SAMPLES", "5")
	t.Setenv("TOKENIZER", "SIMPLE")
	t.Setenv("SHARE_FETCH", "true")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.FetchTimeout != 3*time.Second {
		t.Errorf("FetchTimeout = %v, want 3s", cfg.FetchTimeout)
	}
	if cfg.PerfSamples != 5 {
		t.Errorf("PerfSamples = %d, want 5", cfg.PerfSamples)
	}
	if cfg.Tokenizer != "simple" {
		t.Errorf("Tokenizer = %q, want %q", cfg.Tokenizer, "simple")
	}
	if !cfg.ShareFetch {
		t.Error("ShareFetch = false, want true")
	}
}

func TestLoad_ConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "siteaudit.yaml")
	content := "log_level: INFO\nperf_samples: 2\nstopwords: builtin\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "ERROR", "")
	flags.Int("perf-samples", 3, "")
	if err := flags.Parse([]string{"--perf-samples=4"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want %q (file value, flag not set)", cfg.LogLevel, "INFO")
	}
	if cfg.PerfSamples != 4 {
		t.Errorf("PerfSamples = %d, want 4 (flag wins over file)", cfg.PerfSamples)
	}
	if cfg.StopWords != "builtin" {
		t.Errorf("StopWords = %q, want %q", cfg.StopWords, "builtin")
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want error
	}{
		{name: "port not a number", key: "PORT", val: "abc", want: errInvalidPort},
		{name: "port out of range", key: "PORT", val: "70000", want: errInvalidPort},
		{name: "zero timeout", key: "PROBE_TIMEOUT", val: "0s", want: errNonPositiveTimeout},
		{name: "too many samples", key: "PERF_SAMPLES", val: "11", want: errSamplesOutOfRange},
		{name: "zero samples", key: "PERF_SAMPLES", val: "0", want: errSamplesOutOfRange},
		{name: "negative delay", key: "PERF_SAMPLE_DELAY", val: "-1s", want: errNegativeDelay},
		{name: "unknown tokenizer", key: "TOKENIZER", val: "punkt", want: errUnknownTokenizer},
		{name: "unknown stopwords", key: "STOPWORDS", val: "nltk", want: errUnknownStopWords},
		{name: "negative rate", key: "RATE_LIMIT", val: "-1", want: errInvalidRateLimiting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load("", nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDefault_IgnoresEnvironment(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if got := Default().Port; got != "8080" {
		t.Errorf("Default().Port = %q, want %q", got, "8080")
	}
}
