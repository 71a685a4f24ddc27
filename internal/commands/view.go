package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/output"
	"github.com/sdpower/ccreport-go/internal/viewer"
	"github.com/spf13/cobra"
)

func NewViewCommand() *cobra.Command {
	var (
		shared  sharedFlags
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the report in an interactive pager",
		Long: `Show the report in a scrollable full-screen view.
Press r to reload from disk, q to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !viewer.IsTerminal(os.Stdin) || !stdoutIsTerminal() {
				return errors.New("view needs an interactive terminal; use 'ccreport report' instead")
			}

			cfg := shared.loadConfig(cmd)
			cfg.Format = output.FormatTable
			if cmd.Flags().Changed("no-color") {
				cfg.NoColor = noColor
			}

			// Log lines would tear the full-screen view; keep them for
			// the log file unless debugging.
			var stderr io.Writer = io.Discard
			if shared.debug {
				stderr = cmd.ErrOrStderr()
			}

			p, err := newPipeline(cfg, &shared, stderr)
			if err != nil {
				return err
			}
			defer p.Close()

			formatter := output.NewFormatter(output.FormatterOptions{
				Format:   cfg.Format,
				NoColor:  cfg.NoColor,
				Language: p.lang,
			})
			reload := func(ctx context.Context) (string, error) {
				return p.report(ctx, formatter)
			}

			content, err := reload(cmd.Context())
			if err != nil {
				return err
			}

			v := viewer.New(viewer.Options{
				Title:   i18n.For(p.lang).Title,
				NoColor: cfg.NoColor,
				Reload:  reload,
			})
			if err := v.Run(cmd.Context(), content); err != nil {
				return fmt.Errorf("viewer: %w", err)
			}
			return nil
		},
	}

	shared.register(cmd)
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}
