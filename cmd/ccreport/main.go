package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sdpower/ccreport-go/internal/commands"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "ccreport",
		Short: "Claude Code conversation history report",
		Long: `A CLI tool that summarizes Claude Code conversation logs from local JSONL files.
Running it without a subcommand generates the report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.BindReport(rootCmd)

	rootCmd.AddCommand(
		commands.NewReportCommand(),
		commands.NewSessionsCommand(),
		commands.NewViewCommand(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
