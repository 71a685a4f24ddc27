package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sdpower/ccreport-go/internal/aggregator"
	"github.com/sdpower/ccreport-go/internal/config"
	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/loader"
	"github.com/sdpower/ccreport-go/internal/logger"
	"github.com/sdpower/ccreport-go/internal/output"
	"github.com/sdpower/ccreport-go/internal/summarizer"
	"github.com/sdpower/ccreport-go/internal/types"
	"github.com/spf13/cobra"
)

// sharedFlags are accepted by every command.
type sharedFlags struct {
	days        int
	from        string
	to          string
	project     string
	dataPath    string
	stripPrefix string
	lang        string
	timezone    string
	configPath  string
	logFile     string
	debug       bool
}

func (f *sharedFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.days, "days", config.DefaultDays, "Analyze the last N days")
	flags.StringVar(&f.from, "from", "", "Start date (YYYY-MM-DD), requires --to")
	flags.StringVar(&f.to, "to", "", "End date (YYYY-MM-DD), requires --from")
	flags.StringVarP(&f.project, "project", "p", "", "Only include projects whose name contains this text")
	flags.StringVar(&f.dataPath, "data-path", "", "Path to Claude Code project logs")
	flags.StringVar(&f.stripPrefix, "strip-prefix", "", "Prefix removed from project directory names (default: encoded home directory)")
	flags.StringVar(&f.lang, "lang", config.DefaultLanguage, "Output language (en, ja, auto)")
	flags.StringVar(&f.timezone, "timezone", "", "Timezone for daily and hourly buckets (e.g., Asia/Tokyo)")
	flags.StringVar(&f.configPath, "config", "", "Config file (default: ~/.config/ccreport/config.json)")
	flags.StringVar(&f.logFile, "log-file", "", "Also write debug logs to this file")
	flags.BoolVar(&f.debug, "debug", false, "Enable debug logging")
}

// loadConfig layers explicitly set flags over the config file.
func (f *sharedFlags) loadConfig(cmd *cobra.Command) config.Config {
	path := f.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.Load(path)

	flags := cmd.Flags()
	if flags.Changed("days") {
		cfg.Days = f.days
	}
	if flags.Changed("project") {
		cfg.Project = f.project
	}
	if flags.Changed("data-path") {
		cfg.DataPath = f.dataPath
	}
	if flags.Changed("strip-prefix") {
		cfg.StripPrefix = f.stripPrefix
	}
	if flags.Changed("lang") {
		cfg.Language = f.lang
	}
	if flags.Changed("timezone") {
		cfg.Timezone = f.timezone
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	return cfg
}

// pipeline is everything one run needs: load, analyze, render.
type pipeline struct {
	cfg      config.Config
	from     string
	to       string
	window   config.Window
	lang     i18n.Language
	location *time.Location
	dataPath string
	prefix   string
	log      *logger.Logger
}

func newPipeline(cfg config.Config, f *sharedFlags, stderr io.Writer) (*pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &pipeline{cfg: cfg, from: f.from, to: f.to}
	if err := p.refreshWindow(time.Now()); err != nil {
		return nil, err
	}

	loc := time.Local
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, types.ValidationError{Field: "timezone", Message: err.Error()}
		}
	}

	dataPath := cfg.DataPath
	if dataPath == "" {
		dataPath = config.DefaultDataPath(os.Getenv)
	}
	prefix := cfg.StripPrefix
	if prefix == "" {
		prefix = config.DefaultProjectPrefix()
	}

	log, err := logger.New(logger.Options{Debug: f.debug, LogFile: cfg.LogFile, Stderr: stderr})
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	p.lang = config.ResolveLanguage(cfg.Language, os.Getenv)
	p.location = loc
	p.dataPath = dataPath
	p.prefix = prefix
	p.log = log
	return p, nil
}

// refreshWindow resolves the time window against now. A trailing-days
// window moves forward on every run; explicit dates stay put.
func (p *pipeline) refreshWindow(now time.Time) error {
	window, err := config.ResolveWindow(p.from, p.to, p.cfg.Days, now)
	if err != nil {
		return err
	}
	p.window = window
	return nil
}

func (p *pipeline) Close() error {
	return p.log.Close()
}

func (p *pipeline) loadSessions(ctx context.Context) ([]types.Session, error) {
	p.log.Info("loading sessions",
		"path", p.dataPath,
		"from", p.window.Start.Format(time.DateOnly),
		"to", p.window.End.Format(time.DateOnly),
		"project", p.cfg.Project)

	dataLoader := loader.New()
	dataLoader.SetLogger(p.log.With("component", "loader"))
	dataLoader.SetProjectPrefix(p.prefix)

	sessions, err := dataLoader.LoadSessions(ctx, p.dataPath, loader.Query{
		Start:   p.window.Start,
		End:     p.window.End,
		Project: p.cfg.Project,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load session logs: %w", err)
	}
	p.log.Debug("loaded sessions", "count", len(sessions))
	return sessions, nil
}

func (p *pipeline) analyze(sessions []types.Session) *types.AnalysisResult {
	p.log.Info("analyzing sessions", "count", len(sessions))

	agg := aggregator.New(summarizer.NewContentSummarizer(p.lang), summarizer.NewToolSummarizer(p.lang))
	agg.SetLocation(p.location)
	return agg.AnalyzeWindow(sessions, p.window.Start, p.window.End)
}

// report runs the whole pipeline from scratch.
func (p *pipeline) report(ctx context.Context, formatter *output.Formatter) (string, error) {
	if err := p.refreshWindow(time.Now()); err != nil {
		return "", err
	}
	sessions, err := p.loadSessions(ctx)
	if err != nil {
		return "", err
	}
	result := p.analyze(sessions)

	p.log.Info("rendering report", "format", p.cfg.Format)
	return formatter.FormatReport(result)
}
