package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/sdpower/ccreport-go/internal/output"
	"github.com/spf13/cobra"
)

type reportFlags struct {
	shared  sharedFlags
	output  string
	format  string
	noColor bool
}

// BindReport makes cmd generate the conversation report. The root command
// and the report subcommand share it.
func BindReport(cmd *cobra.Command) {
	var f reportFlags
	f.shared.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", output.FormatMarkdown, "Output format (markdown, table, json)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg := f.shared.loadConfig(cmd)
		if cmd.Flags().Changed("format") {
			cfg.Format = f.format
		}
		if cmd.Flags().Changed("no-color") {
			cfg.NoColor = f.noColor
		}

		p, err := newPipeline(cfg, &f.shared, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer p.Close()

		formatter := output.NewFormatter(output.FormatterOptions{
			Format:   cfg.Format,
			NoColor:  cfg.NoColor || f.output != "" || !stdoutIsTerminal(),
			Language: p.lang,
		})

		report, err := p.report(cmd.Context(), formatter)
		if err != nil {
			return err
		}

		if f.output == "" {
			fmt.Fprint(cmd.OutOrStdout(), ensureNewline(report))
			return nil
		}

		if dir := filepath.Dir(f.output); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(f.output, []byte(ensureNewline(report)), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		p.log.Info("report saved", "path", f.output)
		return nil
	}
}

func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a conversation history report",
		Long: `Summarize Claude Code conversation logs per project: sessions, messages,
main topics, tool usage, and daily and hourly activity.`,
	}
	BindReport(cmd)
	return cmd
}

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func ensureNewline(s string) string {
	if s == "" || s[len(s)-1] == '\n' {
		return s
	}
	return s + "\n"
}
