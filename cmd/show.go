package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/scores"
	"github.com/abhisek/quirk/internal/ui/components"
)

var showCmd = &cobra.Command{
	Use:   "show <questionnaire>",
	Short: "Print a questionnaire's score chart",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().Int("width", 100, "Chart width in columns")
	showCmd.Flags().Int("height", 24, "Chart height in rows")
	showCmd.Flags().Bool("from-start", false, "Show the earliest dates when the chart is wider than --width")
}

func runShow(cmd *cobra.Command, args []string) error {
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	fromStart, _ := cmd.Flags().GetBool("from-start")
	if width < 20 || height < 6 {
		return fmt.Errorf("chart needs at least 20x6 cells, got %dx%d", width, height)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := scores.DocumentName(args[0])
	doc := scores.LoadOrEmpty(cmd.Context(), st, name, logger)

	c := chart.New(chart.Auto, chartOptions(cfg)...)
	scores.Plot(c, doc)

	view := components.NewChartView(c)
	defer view.Close()
	out := view.View(width, height, false)
	if fromStart && view.CanPan() {
		view.PanStart()
		out = view.View(width, height, false)
	}
	lipgloss.Println(out)
	return nil
}
