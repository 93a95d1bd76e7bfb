package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Bahjat/site-audit/internal/analyzer"
	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/config"
)

// fakeEngine implements analyzer.PageInsightProvider without touching the
// network.
type fakeEngine struct {
	urls  []string
	modes []string
}

func (f *fakeEngine) report(url, mode string) *model.AnalysisReport {
	f.urls = append(f.urls, url)
	f.modes = append(f.modes, mode)
	r := &model.AnalysisReport{
		URL:         url,
		Timestamp:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Mode:        mode,
		BasicInfo:   model.Ok(model.BasicInfo{StatusCode: 200, Title: "Example"}),
		Performance: model.Ok(model.Performance{PerformanceScore: 90}),
	}
	if mode == model.ModeFull {
		r.SEOAnalysis = model.Ok(model.SEOAnalysis{})
	}
	return r
}

func (f *fakeEngine) Analyze(_ context.Context, url string) (*model.AnalysisReport, error) {
	return f.report(url, model.ModeFull), nil
}

func (f *fakeEngine) QuickAnalyze(_ context.Context, url string) (*model.AnalysisReport, error) {
	return f.report(url, model.ModeQuick), nil
}

func (f *fakeEngine) BasicInfo(_ context.Context, _ string) (*model.Section[model.BasicInfo], error) {
	return model.Ok(model.BasicInfo{StatusCode: 200}), nil
}

type harness struct {
	out, errOut bytes.Buffer
	engine      *fakeEngine
	cfg         config.Config
}

func run(t *testing.T, args ...string) (*harness, error) {
	t.Helper()
	h := &harness{engine: &fakeEngine{}}
	a := &app{
		out:    &h.out,
		errOut: &h.errOut,
		newEngine: func(cfg config.Config, _ *slog.Logger) (analyzer.PageInsightProvider, error) {
			h.cfg = cfg
			return h.engine, nil
		},
	}
	root := newRootCommand(a)
	root.SetArgs(args)
	return h, root.Execute()
}

func TestVersion(t *testing.T) {
	h, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := h.out.String(); got != "siteaudit version dev\n" {
		t.Errorf("output = %q", got)
	}

	h, err = run(t, "version", "--verbose")
	if err != nil {
		t.Fatalf("version --verbose: %v", err)
	}
	if !strings.Contains(h.out.String(), "Go Version:") {
		t.Errorf("verbose output = %q", h.out.String())
	}
}

func TestAnalyze_Text(t *testing.T) {
	h, err := run(t, "analyze", "example.com", "--no-color")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if len(h.engine.urls) != 1 || h.engine.urls[0] != "https://example.com" {
		t.Errorf("analyzed %v, want https://example.com", h.engine.urls)
	}
	out := h.out.String()
	if !strings.Contains(out, "- Page title: Example") || !strings.Contains(out, "## SEO") {
		t.Errorf("text output:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output contains ANSI escapes")
	}
}

func TestAnalyze_QuickJSON(t *testing.T) {
	h, err := run(t, "analyze", "https://example.com", "--quick", "--format", "json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if h.engine.modes[0] != model.ModeQuick {
		t.Errorf("mode = %q, want quick", h.engine.modes[0])
	}
	var resp model.AnalyzeResponse
	if err := json.Unmarshal(h.out.Bytes(), &resp); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, h.out.String())
	}
	if !resp.Success || resp.Summary == nil || resp.DashboardData == nil {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Results.SEOAnalysis != nil {
		t.Error("quick report carries seo_analysis")
	}
}

func TestAnalyze_OutputFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		format string
		want   string
	}{
		{format: "text", want: "# URL Analysis Report"},
		{format: "yaml", want: "summary:"},
		{format: "json", want: `"summary"`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			path := filepath.Join(dir, "report."+tt.format)

			h, err := run(t, "analyze", "https://example.com", "--format", tt.format, "--output", path)
			if err != nil {
				t.Fatalf("analyze: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("file does not contain %q:\n%s", tt.want, data)
			}
			if h.out.Len() != 0 {
				t.Errorf("stdout = %q, want empty", h.out.String())
			}
			if !strings.Contains(h.errOut.String(), "Report saved to "+path) {
				t.Errorf("stderr = %q", h.errOut.String())
			}
		})
	}
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestSaveReport_ReportsCloseError(t *testing.T) {
	errDisk := errors.New("disk full")
	file := &failingCloser{err: errDisk}
	a := &app{create: func(string) (io.WriteCloser, error) { return file, nil }}

	err := a.saveReport((&fakeEngine{}).report("https://example.com", model.ModeQuick), analyzeOptions{format: formatJSON, output: "report.json"})
	if !errors.Is(err, errDisk) {
		t.Fatalf("saveReport error = %v, want %v", err, errDisk)
	}
	if file.Len() == 0 {
		t.Error("nothing was written before the close")
	}
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no url", args: []string{"analyze"}},
		{name: "unknown format", args: []string{"analyze", "https://example.com", "--format", "xml"}},
		{name: "invalid config", args: []string{"analyze", "https://example.com", "--tokenizer", "punkt"}},
		{name: "missing config file", args: []string{"analyze", "https://example.com", "--config", "/nonexistent/siteaudit.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if len(h.engine.urls) != 0 {
				t.Errorf("engine ran despite the error: %v", h.engine.urls)
			}
		})
	}
}

func TestAnalyze_FlagsReachConfig(t *testing.T) {
	h, err := run(t, "analyze", "https://example.com", "--perf-samples", "5", "--share-fetch", "--stopwords", "builtin")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	if h.cfg.PerfSamples != 5 || !h.cfg.ShareFetch || h.cfg.StopWords != "builtin" {
		t.Errorf("config = %+v", h.cfg)
	}
	if h.cfg.FetchTimeout != config.Default().FetchTimeout {
		t.Errorf("FetchTimeout = %v, want the default", h.cfg.FetchTimeout)
	}
}
