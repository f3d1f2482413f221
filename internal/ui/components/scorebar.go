package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quirk/internal/ui/theme"
)

// ScoreBar displays one group total against the best possible total.
type ScoreBar struct {
	Label string
	Score int
	Max   int
	Width int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(label string, score, maxScore, width int) ScoreBar {
	return ScoreBar{
		Label: label,
		Score: score,
		Max:   maxScore,
		Width: width,
	}
}

// Fraction returns Score/Max clamped to [0, 1].
func (p ScoreBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(float64(p.Score)/float64(p.Max), 0), 1)
}

// View renders the score bar.
func (p ScoreBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	total := fmt.Sprintf("  %d/%d", p.Score, p.Max)

	barWidth := p.Width - labelWidth - len(total)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Fraction())
	empty := barWidth - filled

	result += theme.ScoreFilled.Render(strings.Repeat(" ", filled)) +
		theme.ScoreEmpty.Render(strings.Repeat(" ", empty))

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(total)

	return result
}
