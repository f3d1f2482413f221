package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/quirk/internal/export"
	"github.com/abhisek/quirk/internal/scores"
)

var exportCmd = &cobra.Command{
	Use:   "export <questionnaire>",
	Short: "Export a score document to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Output .xlsx path (default <questionnaire>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := scores.DocumentName(args[0])
	if out == "" {
		out = name + ".xlsx"
	}

	doc, err := st.Load(cmd.Context(), name)
	if err != nil {
		return err
	}
	if err := export.WriteFile(out, doc, name, chartOptions(cfg)...); err != nil {
		return fmt.Errorf("export %s: %w", name, err)
	}
	logger.Info("exported", slog.String("document", name), slog.String("path", out))
	fmt.Printf("Wrote %s\n", out)
	return nil
}
