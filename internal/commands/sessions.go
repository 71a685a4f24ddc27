package commands

import (
	"fmt"

	"github.com/sdpower/ccreport-go/internal/output"
	"github.com/spf13/cobra"
)

func NewSessionsCommand() *cobra.Command {
	var (
		shared  sharedFlags
		format  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List loaded sessions",
		Long:  `List every session in the time window with its entry count, user messages and activity range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.loadConfig(cmd)
			// The report format does not apply here; only table and json do.
			cfg.Format = output.FormatTable
			if format == output.FormatJSON {
				cfg.Format = output.FormatJSON
			} else if format != output.FormatTable {
				return fmt.Errorf("unknown format %q (use table or json)", format)
			}

			p, err := newPipeline(cfg, &shared, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer p.Close()

			sessions, err := p.loadSessions(cmd.Context())
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(output.FormatterOptions{
				Format:   cfg.Format,
				NoColor:  noColor || cfg.NoColor || !stdoutIsTerminal(),
				Language: p.lang,
			})
			list, err := formatter.FormatSessionList(sessions)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), ensureNewline(list))
			return nil
		},
	}

	shared.register(cmd)
	cmd.Flags().StringVar(&format, "format", output.FormatTable, "Output format (table, json)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
