package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// TextOptions controls RenderText.
type TextOptions struct {
	// Color enables ANSI colors. It is independent of whether the
	// destination is a terminal.
	Color bool
}

// palette holds the colors of one rendering so that concurrent renders
// never share color state.
type palette struct {
	heading func(a ...any) string
	good    func(a ...any) string
	bad     func(a ...any) string
	warn    func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		heading: mk(color.FgCyan, color.Bold),
		good:    mk(color.FgGreen),
		bad:     mk(color.FgRed),
		warn:    mk(color.FgYellow),
	}
}

// RenderText writes the human readable report: basic info, SEO,
// performance, content, security and mobile sections. Sections absent from
// the report are skipped; failed ones show their error.
func RenderText(w io.Writer, r *model.AnalysisReport, opts TextOptions) error {
	pal := newPalette(opts.Color)
	tw := &textWriter{w: w, pal: pal}

	tw.line(pal.heading("# URL Analysis Report"))
	tw.line("URL: %s", r.URL)
	tw.line("Analyzed at: %s", r.Timestamp.Format(time.RFC3339))
	if r.Mode != "" {
		tw.line("Mode: %s", r.Mode)
	}

	tw.section("Basic info", r.BasicInfo == nil, r.BasicInfo.Err(), func() {
		status, elapsed, size, title := model.NotAvailable, model.NotAvailable, model.NotAvailable, model.NotAvailable
		if b, ok := r.BasicInfo.Value(); ok {
			status = strconv.Itoa(b.StatusCode)
			elapsed = strconv.FormatFloat(b.ResponseTime, 'f', -1, 64)
			size = strconv.Itoa(b.ContentLength)
			title = b.Title
		}
		tw.line("- Status code: %s", status)
		tw.line("- Response time: %ss", elapsed)
		tw.line("- Content size: %s bytes", size)
		tw.line("- Page title: %s", title)
	})

	tw.section("SEO", r.SEOAnalysis == nil, r.SEOAnalysis.Err(), func() {
		seo := r.SEOAnalysis.Get()
		tw.line("- Internal links: %d", seo.Links.InternalCount)
		tw.line("- External links: %d", seo.Links.ExternalCount)
		tw.line("- Total images: %d", seo.Images.TotalImages)
		tw.line("- Images without ALT: %d", seo.Images.ImagesWithoutAlt)
		tw.line("- robots.txt: %s", tw.check(seo.RobotsTxt))
		tw.line("- sitemap.xml: %s", tw.check(seo.Sitemap))
	})

	tw.section("Performance", r.Performance == nil, r.Performance.Err(), func() {
		perf := r.Performance.Get()
		tw.line("- Average response time: %.2fs", perf.AvgResponseTime)
		tw.line("- DNS lookup time: %.2fs", perf.DNSLookupTime)
		tw.line("- Performance score: %s/100", tw.score(perf.PerformanceScore))
	})

	tw.section("Content", r.ContentAnalysis == nil, r.ContentAnalysis.Err(), func() {
		content := r.ContentAnalysis.Get()
		tw.line("- Word count: %d", content.WordCount)
		tw.line("- Paragraph count: %d", content.ParagraphCount)
		tw.line("- Reading ease: %.1f", content.ReadingEase)
		if content.DetectedLanguage != "" {
			tw.line("- Detected language: %s", content.DetectedLanguage)
		}
	})

	tw.section("Security", r.SecurityAnalysis == nil, r.SecurityAnalysis.Err(), func() {
		sec := r.SecurityAnalysis.Get()
		tw.line("- HTTPS: %s", tw.check(sec.HTTPS))
		tw.line("- Security headers set: %d", sec.SecurityHeaders.Count())
		if days := sec.SSLCertificate.ExpiresInDays; days != nil {
			tw.line("- Certificate expires in: %d days", *days)
		}
		if msg := sec.SSLCertificate.Error; msg != "" {
			tw.line("- Certificate: %s", pal.bad(msg))
		}
	})

	tw.section("Mobile", r.MobileAnalysis == nil, r.MobileAnalysis.Err(), func() {
		mobile := r.MobileAnalysis.Get()
		tw.line("- Viewport meta tag: %s", tw.check(mobile.ViewportMeta))
		tw.line("- Mobile friendliness score: %s/100", tw.score(float64(mobile.MobileFriendlyScore)))
	})

	return tw.err
}

// textWriter remembers the first write error so rendering code can stay
// linear.
type textWriter struct {
	w   io.Writer
	pal palette
	err error
}

func (t *textWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *textWriter) section(title string, absent bool, failure string, body func()) {
	if absent {
		return
	}
	t.line("")
	t.line(t.pal.heading("## " + title))
	if failure != "" {
		t.line("- %s %s", t.pal.warn("unavailable:"), failure)
		return
	}
	body()
}

func (t *textWriter) check(ok bool) string {
	if ok {
		return t.pal.good("yes")
	}
	return t.pal.bad("no")
}

func (t *textWriter) score(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	switch {
	case v >= 80:
		return t.pal.good(s)
	case v >= 50:
		return t.pal.warn(s)
	default:
		return t.pal.bad(s)
	}
}

// WriteTextReport renders the uncolored text report, writes it to path and
// returns it.
func WriteTextReport(path string, r *model.AnalysisReport) (string, error) {
	var buf bytes.Buffer
	if err := RenderText(&buf, r, TextOptions{}); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return buf.String(), nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as YAML. The value goes through its JSON encoding
// first so that the YAML keys and their order match the JSON output.
func WriteYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("convert to yaml: %w", err)
	}
	plainStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}

// plainStyle drops the flow and quoting styles inherited from JSON so the
// encoder picks block style and quotes only where needed.
func plainStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plainStyle(c)
	}
}
