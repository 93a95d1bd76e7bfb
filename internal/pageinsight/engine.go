package pageinsight

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/config"
	"github.com/Bahjat/site-audit/internal/platform/errs"
	"github.com/Bahjat/site-audit/internal/platform/logger"
	"github.com/Bahjat/site-audit/internal/textkit"
)

// EngineConfig wires an Engine. Nil collaborators get working defaults
// except Fetcher, which is required.
type EngineConfig struct {
	Fetcher  Fetcher
	Prober   existenceChecker
	Certs    certProber
	Resolver Resolver
	Text     *textkit.Toolkit
	Logger   *slog.Logger

	// Samples is the number of timed requests of the performance analyzer
	// and SampleDelay the pause between two of them. A zero SampleDelay
	// means DefaultSampleDelay and a negative one no pause.
	Samples     int
	SampleDelay time.Duration

	// ShareFetch makes every single-fetch analyzer of one report reuse the
	// same response instead of fetching the page itself.
	ShareFetch bool
}

// Performance sampling used when EngineConfig leaves it unset.
const (
	DefaultSamples     = 3
	DefaultSampleDelay = 300 * time.Millisecond
)

// Engine runs the analyzers. Each analyzer is a fault boundary: its errors
// and panics become a failed section and never abort the report.
type Engine struct {
	fetcher     Fetcher
	prober      existenceChecker
	certs       certProber
	resolver    Resolver
	text        *textkit.Toolkit
	logger      *slog.Logger
	samples     int
	sampleDelay time.Duration
	shareFetch  bool
	now         func() time.Time
}

// NewEngine returns an Engine backed by cfg.
func NewEngine(cfg EngineConfig) *Engine {
	e := &Engine{
		fetcher:     cfg.Fetcher,
		prober:      cfg.Prober,
		certs:       cfg.Certs,
		resolver:    cfg.Resolver,
		text:        cfg.Text,
		logger:      cfg.Logger,
		samples:     cfg.Samples,
		sampleDelay: cfg.SampleDelay,
		shareFetch:  cfg.ShareFetch,
		now:         time.Now,
	}
	if e.prober == nil {
		e.prober = NewProber(TransportConfig{Timeout: 5 * time.Second})
	}
	if e.certs == nil {
		e.certs = &CertProber{Timeout: 10 * time.Second}
	}
	if e.resolver == nil {
		e.resolver = net.DefaultResolver
	}
	if e.text == nil {
		e.text = textkit.Basic()
	}
	if e.logger == nil {
		e.logger = logger.Discard()
	}
	if e.samples < 1 {
		e.samples = DefaultSamples
	}
	if e.sampleDelay == 0 {
		e.sampleDelay = DefaultSampleDelay
	}
	return e
}

// NewEngineFromConfig builds the production engine: HTTP fetcher, prober and
// TLS probe sharing the configured user agent and network policy, the system
// resolver and the configured text capabilities.
func NewEngineFromConfig(cfg config.Config, log *slog.Logger) (*Engine, error) {
	text, err := textkit.New(textkit.Options{
		Tokenizer:      cfg.Tokenizer,
		StopWords:      cfg.StopWords,
		Readability:    cfg.Readability,
		DetectLanguage: cfg.DetectLanguage,
		ExtractArticle: cfg.ExtractArticle,
	})
	if err != nil {
		return nil, err
	}

	sampleDelay := cfg.PerfSampleDelay
	if sampleDelay == 0 {
		sampleDelay = -1
	}

	return NewEngine(EngineConfig{
		Fetcher: NewHTTPClient(TransportConfig{
			UserAgent:            cfg.UserAgent,
			Timeout:              cfg.FetchTimeout,
			AllowPrivateNetworks: cfg.AllowPrivateNetworks,
		}),
		Prober: NewProber(TransportConfig{
			UserAgent:            cfg.UserAgent,
			Timeout:              cfg.ProbeTimeout,
			AllowPrivateNetworks: cfg.AllowPrivateNetworks,
		}),
		Certs: &CertProber{
			Timeout:              cfg.TLSTimeout,
			AllowPrivateNetworks: cfg.AllowPrivateNetworks,
		},
		Resolver:    net.DefaultResolver,
		Text:        text,
		Logger:      log,
		Samples:     cfg.PerfSamples,
		SampleDelay: sampleDelay,
		ShareFetch:  cfg.ShareFetch,
	}), nil
}

// ValidateURL checks that targetURL is an absolute http(s) URL.
func ValidateURL(targetURL string) (*url.URL, error) {
	parsed, err := url.Parse(targetURL)
	if err != nil {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
			Cause:   err,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Only http and https URLs are supported.",
		}
	}
	return parsed, nil
}

// Analyze runs all nine analyzers against targetURL, one after another.
// The error is non-nil only when the URL itself is invalid.
func (e *Engine) Analyze(ctx context.Context, targetURL string) (*model.AnalysisReport, error) {
	u, err := ValidateURL(targetURL)
	if err != nil {
		return nil, err
	}

	r := e.newRun(ctx, targetURL, u)
	report := &model.AnalysisReport{URL: targetURL, Timestamp: e.now(), Mode: model.ModeFull}

	report.BasicInfo = runAnalyzer(r, "basic_info", r.basicInfo)
	report.SEOAnalysis = runAnalyzer(r, "seo_analysis", func() (model.SEOAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.SEOAnalysis{}, err
		}
		robots := e.prober.Exists(ctx, wellKnownURL(u, "/robots.txt"))
		sitemap := e.prober.Exists(ctx, wellKnownURL(u, "/sitemap.xml"))
		return AnalyzeSEO(p, robots, sitemap), nil
	})
	report.Performance = runAnalyzer(r, "performance", r.performance)
	report.ContentAnalysis = runAnalyzer(r, "content_analysis", func() (model.ContentAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.ContentAnalysis{}, err
		}
		return AnalyzeContent(p, e.text)
	})
	report.TechnicalAnalysis = runAnalyzer(r, "technical_analysis", func() (model.TechnicalAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.TechnicalAnalysis{}, err
		}
		return AnalyzeTechnical(p), nil
	})
	report.SecurityAnalysis = runAnalyzer(r, "security_analysis", func() (model.SecurityAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.SecurityAnalysis{}, err
		}
		var cert model.Certificate
		if u.Scheme == "https" {
			if cert, err = e.certs.Probe(ctx, u.Hostname()); err != nil {
				cert = certificateError(err)
			}
		}
		return AnalyzeSecurity(p, cert), nil
	})
	report.KeywordAnalysis = runAnalyzer(r, "keyword_analysis", func() (model.KeywordAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.KeywordAnalysis{}, err
		}
		return AnalyzeKeywords(p, e.text)
	})
	report.SocialMedia = runAnalyzer(r, "social_media", func() (model.SocialMedia, error) {
		p, err := r.page()
		if err != nil {
			return model.SocialMedia{}, err
		}
		return AnalyzeSocial(p), nil
	})
	report.MobileAnalysis = runAnalyzer(r, "mobile_analysis", func() (model.MobileAnalysis, error) {
		p, err := r.page()
		if err != nil {
			return model.MobileAnalysis{}, err
		}
		return AnalyzeMobile(p), nil
	})

	return report, nil
}

// QuickAnalyze runs only the basic info and performance analyzers.
func (e *Engine) QuickAnalyze(ctx context.Context, targetURL string) (*model.AnalysisReport, error) {
	u, err := ValidateURL(targetURL)
	if err != nil {
		return nil, err
	}

	r := e.newRun(ctx, targetURL, u)
	report := &model.AnalysisReport{URL: targetURL, Timestamp: e.now(), Mode: model.ModeQuick}
	report.BasicInfo = runAnalyzer(r, "basic_info", r.basicInfo)
	report.Performance = runAnalyzer(r, "performance", r.performance)
	return report, nil
}

// BasicInfo runs the basic info analyzer alone.
func (e *Engine) BasicInfo(ctx context.Context, targetURL string) (*model.Section[model.BasicInfo], error) {
	u, err := ValidateURL(targetURL)
	if err != nil {
		return nil, err
	}
	r := e.newRun(ctx, targetURL, u)
	return runAnalyzer(r, "basic_info", r.basicInfo), nil
}

// run is the state of one report: the target and, in shared mode, the one
// page every analyzer reads.
type run struct {
	*Engine
	ctx    context.Context
	target string
	url    *url.URL

	once       sync.Once
	sharedPage *Page
	sharedErr  error
}

func (e *Engine) newRun(ctx context.Context, target string, u *url.URL) *run {
	return &run{Engine: e, ctx: ctx, target: target, url: u}
}

// page fetches and parses the target, or returns the shared page.
func (r *run) page() (*Page, error) {
	if !r.shareFetch {
		return r.fetchPage()
	}
	r.once.Do(func() {
		r.sharedPage, r.sharedErr = r.fetchPage()
	})
	return r.sharedPage, r.sharedErr
}

func (r *run) fetchPage() (*Page, error) {
	res, err := r.fetch()
	if err != nil {
		return nil, errs.Classify(err, "fetch failed")
	}
	return NewPage(r.url, res)
}

// fetch retrieves the target once and warns when its body was cut.
func (r *run) fetch() (*FetchResult, error) {
	res, err := r.fetcher.Fetch(r.ctx, r.target)
	if err != nil {
		return nil, err
	}
	if res.Truncated {
		r.logger.Warn("response body truncated", "url", r.target, "limit_bytes", maxResponseBody)
	}
	return res, nil
}

func (r *run) basicInfo() (model.BasicInfo, error) {
	p, err := r.page()
	if err != nil {
		return model.BasicInfo{}, err
	}
	return ExtractBasicInfo(p), nil
}

// performance times r.samples sequential fetches, pausing between them,
// then times a DNS lookup of the host on its own.
func (r *run) performance() (model.Performance, error) {
	times := make([]time.Duration, 0, r.samples)
	var last *FetchResult
	for i := range r.samples {
		if i > 0 {
			if err := sleepCtx(r.ctx, r.sampleDelay); err != nil {
				return model.Performance{}, errs.Classify(err, "performance sampling interrupted")
			}
		}
		start := time.Now()
		res, err := r.fetch()
		if err != nil {
			return model.Performance{}, errs.Classify(err, "performance sample failed")
		}
		times = append(times, time.Since(start))
		last = res
	}
	return ScorePerformance(times, last, timeLookup(r.ctx, r.resolver, r.url.Hostname())), nil
}

// runAnalyzer is the fault boundary around one analyzer.
func runAnalyzer[T any](r *run, name string, fn func() (T, error)) (section *model.Section[T]) {
	start := time.Now()
	log := r.logger.With("analyzer", name, "url", r.target)

	defer func() {
		if rec := recover(); rec != nil {
			msg := fmt.Sprintf("analyzer panicked: %v", rec)
			log.Warn("analyzer failed", "error", msg)
			section = model.Failed[T](msg)
		}
	}()

	v, err := fn()
	if err != nil {
		log.Warn("analyzer failed", "error", err, "kind", errs.KindOf(err).String())
		return model.Failed[T](err.Error())
	}
	log.Debug("analyzer complete", "elapsed", time.Since(start).String())
	return model.Ok(v)
}
