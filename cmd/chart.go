package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quirk/internal/app"
	"github.com/abhisek/quirk/internal/scores"
)

var chartCmd = &cobra.Command{
	Use:   "chart [questionnaire]",
	Short: "Browse score charts in the terminal",
	Long: `Open the interactive chart browser. With a questionnaire name or path the
chart for that questionnaire opens directly; Esc returns to the list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
}

// runApp opens the store and launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		Store:        st,
		Logger:       logger,
		MinAutoWidth: cfg.Chart.MinWidth,
	}
	if len(args) == 1 {
		opts.Document = scores.DocumentName(args[0])
	}

	logger.Info("starting tui", slog.String("document", opts.Document))
	if err := app.Run(opts); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
