package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	errInvalidPort         = errors.New("config: invalid PORT number")
	errSamplesOutOfRange   = errors.New("config: PERF_SAMPLES must be 1-10")
	errNonPositiveTimeout  = errors.New("config: timeouts must be positive")
	errNegativeDelay       = errors.New("config: PERF_SAMPLE_DELAY must not be negative")
	errUnknownTokenizer    = errors.New("config: TOKENIZER must be simple or treebank")
	errUnknownStopWords    = errors.New("config: STOPWORDS must be builtin or extended")
	errInvalidRateLimiting = errors.New("config: RATE_LIMIT and RATE_BURST must not be negative")
)

// Config holds all application configuration. It is immutable once loaded.
type Config struct {
	Port     string
	LogLevel string

	UserAgent            string
	FetchTimeout         time.Duration
	ProbeTimeout         time.Duration
	TLSTimeout           time.Duration
	PerfSamples          int
	PerfSampleDelay      time.Duration
	AllowPrivateNetworks bool
	ShareFetch           bool

	Tokenizer      string
	StopWords      string
	Readability    bool
	DetectLanguage bool
	ExtractArticle bool

	RateLimit float64
	RateBurst int
}

// Keys are the viper keys; each one is also read from the upper-cased
// environment variable of the same name.
const (
	KeyPort                 = "port"
	KeyLogLevel             = "log_level"
	KeyUserAgent            = "user_agent"
	KeyFetchTimeout         = "fetch_timeout"
	KeyProbeTimeout         = "probe_timeout"
	KeyTLSTimeout           = "tls_timeout"
	KeyPerfSamples          = "perf_samples"
	KeyPerfSampleDelay      = "perf_sample_delay"
	KeyAllowPrivateNetworks = "allow_private_networks"
	KeyShareFetch           = "share_fetch"
	KeyTokenizer            = "tokenizer"
	KeyStopWords            = "stopwords"
	KeyReadability          = "readability"
	KeyDetectLanguage       = "detect_language"
	KeyExtractArticle       = "extract_article"
	KeyRateLimit            = "rate_limit"
	KeyRateBurst            = "rate_burst"
)

var defaults = map[string]any{
	KeyPort:                 "8080",
	KeyLogLevel:             "ERROR",
	KeyUserAgent:            "SiteAuditBot/1.0",
	KeyFetchTimeout:         10 * time.Second,
	KeyProbeTimeout:         5 * time.Second,
	KeyTLSTimeout:           10 * time.Second,
	KeyPerfSamples:          3,
	KeyPerfSampleDelay:      300 * time.Millisecond,
	KeyAllowPrivateNetworks: false,
	KeyShareFetch:           false,
	KeyTokenizer:            "treebank",
	KeyStopWords:            "extended",
	KeyReadability:          true,
	KeyDetectLanguage:       false,
	KeyExtractArticle:       true,
	KeyRateLimit:            2.0,
	KeyRateBurst:            5,
}

// Default returns the configuration used when nothing overrides the defaults.
func Default() Config {
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

// Load resolves configuration from, in increasing priority: defaults, the
// optional YAML file at configFile, environment variables and the flags in
// flags that were explicitly set. A flag binds to a key when its name is the
// key with underscores replaced by dashes.
func Load(configFile string, flags *pflag.FlagSet) (Config, error) {
	v := newViper()
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for key := range defaults {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("config: bind flag %s: %w", f.Name, err)
				}
			}
		}
	}

	cfg := fromViper(v)
	return cfg, cfg.validate()
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Port:                 v.GetString(KeyPort),
		LogLevel:             v.GetString(KeyLogLevel),
		UserAgent:            v.GetString(KeyUserAgent),
		FetchTimeout:         v.GetDuration(KeyFetchTimeout),
		ProbeTimeout:         v.GetDuration(KeyProbeTimeout),
		TLSTimeout:           v.GetDuration(KeyTLSTimeout),
		PerfSamples:          v.GetInt(KeyPerfSamples),
		PerfSampleDelay:      v.GetDuration(KeyPerfSampleDelay),
		AllowPrivateNetworks: v.GetBool(KeyAllowPrivateNetworks),
		ShareFetch:           v.GetBool(KeyShareFetch),
		Tokenizer:            strings.ToLower(v.GetString(KeyTokenizer)),
		StopWords:            strings.ToLower(v.GetString(KeyStopWords)),
		Readability:          v.GetBool(KeyReadability),
		DetectLanguage:       v.GetBool(KeyDetectLanguage),
		ExtractArticle:       v.GetBool(KeyExtractArticle),
		RateLimit:            v.GetFloat64(KeyRateLimit),
		RateBurst:            v.GetInt(KeyRateBurst),
	}
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.FetchTimeout <= 0 || c.ProbeTimeout <= 0 || c.TLSTimeout <= 0 {
		return fmt.Errorf("%w: fetch=%s probe=%s tls=%s", errNonPositiveTimeout, c.FetchTimeout, c.ProbeTimeout, c.TLSTimeout)
	}

	if c.PerfSamples < 1 || c.PerfSamples > 10 {
		return fmt.Errorf("%w: got %d", errSamplesOutOfRange, c.PerfSamples)
	}

	if c.PerfSampleDelay < 0 {
		return fmt.Errorf("%w: got %s", errNegativeDelay, c.PerfSampleDelay)
	}

	switch c.Tokenizer {
	case "simple", "treebank":
	default:
		return fmt.Errorf("%w: got %q", errUnknownTokenizer, c.Tokenizer)
	}

	switch c.StopWords {
	case "builtin", "extended":
	default:
		return fmt.Errorf("%w: got %q", errUnknownStopWords, c.StopWords)
	}

	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: limit=%v burst=%d", errInvalidRateLimiting, c.RateLimit, c.RateBurst)
	}

	return nil
}
