package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Bahjat/site-audit/internal/model"
	"github.com/Bahjat/site-audit/internal/platform/logger"
	"github.com/Bahjat/site-audit/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type analyzeOptions struct {
	quick   bool
	format  string
	output  string
	noColor bool
}

func newAnalyzeCommand(a *app) *cobra.Command {
	var opts analyzeOptions
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Analyze a URL and print the report",
		Example: `  siteaudit analyze https://example.com
  siteaudit analyze example.com --quick --format json
  siteaudit analyze https://example.com --output report.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.quick, "quick", false, "run only the basic info and performance analyzers")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text, json or yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored text output")
	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, target string, opts analyzeOptions) error {
	opts.format = strings.ToLower(opts.format)
	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q: use text, json or yaml", opts.format)
	}

	cfg, err := a.loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New(a.errOut, cfg.LogLevel)

	engine, err := a.newEngine(cfg, log)
	if err != nil {
		return err
	}

	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = "https://" + target
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := engine.Analyze
	if opts.quick {
		run = engine.QuickAnalyze
	}
	result, err := run(ctx, target)
	if err != nil {
		return err
	}
	log.Info("analysis complete", "url", target, "failed_analyzers", len(result.Failures()))

	if opts.format == formatText && opts.output != "" {
		if _, err := report.WriteTextReport(opts.output, result); err != nil {
			return err
		}
		_, err := fmt.Fprintf(a.errOut, "Report saved to %s\n", opts.output)
		return err
	}

	if opts.output == "" {
		return a.writeReport(a.out, result, opts)
	}
	if err := a.saveReport(result, opts); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.errOut, "Report saved to %s\n", opts.output)
	return err
}

// saveReport writes the report to opts.output. A failed close is reported
// since it can hide a failed write.
func (a *app) saveReport(result *model.AnalysisReport, opts analyzeOptions) (err error) {
	create := a.create
	if create == nil {
		create = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	}
	f, err := create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", opts.output, cerr)
		}
	}()

	return a.writeReport(f, result, opts)
}

// writeReport renders result in the chosen format. JSON and YAML carry the
// same envelope as the HTTP API.
func (a *app) writeReport(w io.Writer, result *model.AnalysisReport, opts analyzeOptions) error {
	switch opts.format {
	case formatJSON, formatYAML:
		summary := report.Summarize(result)
		dashboard := report.BuildDashboard(result)
		envelope := model.AnalyzeResponse{
			Success:       true,
			Results:       result,
			DashboardData: &dashboard,
			Summary:       &summary,
		}
		if opts.format == formatJSON {
			return report.WriteJSON(w, envelope)
		}
		return report.WriteYAML(w, envelope)
	default:
		useColor := !opts.noColor && opts.output == "" && !color.NoColor
		return report.RenderText(w, result, report.TextOptions{Color: useColor})
	}
}
