package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/questionnaire"
	"github.com/abhisek/quirk/internal/scores"
	"github.com/abhisek/quirk/internal/ui/components"
	"github.com/abhisek/quirk/internal/ui/theme"
)

var recordCmd = &cobra.Command{
	Use:   "record <questionnaire>",
	Short: "Score a completed questionnaire and save the group totals",
	Long: `Score a questionnaire from --answer flags and append one entry per group
to the questionnaire's score document.

Example:
  quirk record weekly --answer rested=3 --answer focus=2 --answer calm=1`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringArrayP("answer", "a", nil, "Answer as question=value (repeat for every question)")
	recordCmd.Flags().String("date", "", "Entry date as YYYYMMDD (default today)")
	_ = recordCmd.MarkFlagRequired("answer")
}

func runRecord(cmd *cobra.Command, args []string) error {
	rawAnswers, _ := cmd.Flags().GetStringArray("answer")
	dateVal, _ := cmd.Flags().GetString("date")

	path, err := resolveQuestionnaire(args[0])
	if err != nil {
		return err
	}
	def, err := questionnaire.Load(path)
	if err != nil {
		return err
	}

	answers, err := parseAnswers(rawAnswers)
	if err != nil {
		return err
	}

	day := chart.Truncate(time.Now())
	if dateVal != "" {
		if day, err = chart.ParseDate(dateVal); err != nil {
			return fmt.Errorf("invalid --date %q: want YYYYMMDD", dateVal)
		}
	}

	totals, err := questionnaire.Score(def, answers)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	name := scores.DocumentName(path)
	if err := st.Append(cmd.Context(), name, questionnaire.Entries(totals, day)); err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	logger.Info("scores recorded",
		slog.String("document", name),
		slog.String("date", chart.FormatDate(day)),
		slog.Int("groups", len(totals)),
	)

	printTotals(def, totals, day)
	return nil
}

// parseAnswers turns question=value pairs into a map.
func parseAnswers(raw []string) (map[string]int, error) {
	answers := make(map[string]int, len(raw))
	for _, a := range raw {
		name, val, ok := strings.Cut(a, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid answer %q: want question=value", a)
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: value must be an integer", a)
		}
		if _, dup := answers[name]; dup {
			return nil, fmt.Errorf("question %q answered twice", name)
		}
		answers[name] = n
	}
	return answers, nil
}

func printTotals(def *questionnaire.Definition, totals map[string]int, day time.Time) {
	lipgloss.Println(theme.Title.Render(def.Title) + "  " + theme.Hint.Render(chart.FormatDate(day)))
	maxTotals := def.MaxTotals()
	for _, g := range def.Groups() {
		lipgloss.Println(components.NewScoreBar(g, totals[g], maxTotals[g], 50).View())
	}
}
