// Package cli implements the siteaudit command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Bahjat/site-audit/internal/analyzer"
	"github.com/Bahjat/site-audit/internal/pageinsight"
	"github.com/Bahjat/site-audit/internal/platform/config"
	"github.com/spf13/cobra"
)

// Version information, injected at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// engineFactory builds the analysis engine from the resolved configuration.
type engineFactory func(cfg config.Config, log *slog.Logger) (analyzer.PageInsightProvider, error)

func newEngine(cfg config.Config, log *slog.Logger) (analyzer.PageInsightProvider, error) {
	engine, err := pageinsight.NewEngineFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return engine, nil
}

// app carries what every subcommand needs.
type app struct {
	cfgFile   string
	out       io.Writer
	errOut    io.Writer
	newEngine engineFactory
	create    func(path string) (io.WriteCloser, error)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCommand returns the siteaudit command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	return newRootCommand(&app{out: out, errOut: errOut, newEngine: newEngine})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "siteaudit",
		Short:         "Audit a web page and report on its health",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file")
	addEngineFlags(root)

	root.AddCommand(newAnalyzeCommand(a), newServeCommand(a), newVersionCommand(a))
	return root
}

// addEngineFlags registers a persistent flag for every engine setting. Flag
// names are the config keys with dashes; defaults mirror the config defaults.
func addEngineFlags(cmd *cobra.Command) {
	d := config.Default()
	f := cmd.PersistentFlags()
	f.String("log-level", d.LogLevel, "log level: DEBUG, INFO, WARN or ERROR")
	f.String("user-agent", d.UserAgent, "User-Agent header of outbound requests")
	f.Duration("fetch-timeout", d.FetchTimeout, "timeout of each page fetch")
	f.Duration("probe-timeout", d.ProbeTimeout, "timeout of robots.txt and sitemap.xml probes")
	f.Duration("tls-timeout", d.TLSTimeout, "timeout of the TLS certificate probe")
	f.Int("perf-samples", d.PerfSamples, "number of timed requests of the performance analyzer")
	f.Duration("perf-sample-delay", d.PerfSampleDelay, "pause between performance samples")
	f.Bool("allow-private-networks", d.AllowPrivateNetworks, "allow requests to private and loopback addresses")
	f.Bool("share-fetch", d.ShareFetch, "fetch the page once and share it between analyzers")
	f.String("tokenizer", d.Tokenizer, "content tokenizer: simple or treebank")
	f.String("stopwords", d.StopWords, "stop word set: builtin or extended")
	f.Bool("readability", d.Readability, "compute Flesch readability scores")
	f.Bool("detect-language", d.DetectLanguage, "detect the language of the page text")
	f.Bool("extract-article", d.ExtractArticle, "extract the main article")
}

// loadConfig resolves the configuration of cmd: defaults, the config file,
// the environment and the flags set on the command line.
func (a *app) loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(a.cfgFile, cmd.Flags())
}
