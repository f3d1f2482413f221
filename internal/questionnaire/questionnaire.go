// Package questionnaire loads questionnaire definitions and turns a full set
// of answers into per-group score totals.
package questionnaire

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/abhisek/quirk/internal/scores"
)

// TypeRange is the only supported question type: an integer choice in
// [ValueMin, ValueMax).
const TypeRange = "range"

// ErrUnknownQuestion is returned when an answer names a question the
// definition does not have.
var ErrUnknownQuestion = errors.New("unknown question")

// Definition is a questionnaire file.
type Definition struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Question is one prompt. Answers to questions sharing a Group are summed.
type Question struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Group    string `json:"average_group"`
	Type     string `json:"type"`
	ValueMin int    `json:"value_min"`
	ValueMax int    `json:"value_max"`
}

// Options lists the selectable answers. ValueMax itself is not offered.
func (q Question) Options() []int {
	if q.ValueMax <= q.ValueMin {
		return nil
	}
	opts := make([]int, 0, q.ValueMax-q.ValueMin)
	for v := q.ValueMin; v < q.ValueMax; v++ {
		opts = append(opts, v)
	}
	return opts
}

// Allows reports whether v is one of the question's options.
func (q Question) Allows(v int) bool {
	return v >= q.ValueMin && v < q.ValueMax
}

// Groups returns the distinct group names in first-appearance order.
func (d *Definition) Groups() []string {
	var groups []string
	for _, q := range d.Questions {
		if !slices.Contains(groups, q.Group) {
			groups = append(groups, q.Group)
		}
	}
	return groups
}

// MaxTotals returns the best possible total of each group.
func (d *Definition) MaxTotals() map[string]int {
	totals := make(map[string]int)
	for _, q := range d.Questions {
		if opts := q.Options(); len(opts) > 0 {
			totals[q.Group] += opts[len(opts)-1]
		}
	}
	return totals
}

// Question returns the question with the given name.
func (d *Definition) Question(name string) (Question, bool) {
	for _, q := range d.Questions {
		if q.Name == name {
			return q, true
		}
	}
	return Question{}, false
}

// Parse validates and decodes definition JSON.
func Parse(data []byte) (*Definition, error) {
	if err := validateDefinition(data); err != nil {
		return nil, err
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decode questionnaire: %w", err)
	}
	return &def, nil
}

// Load reads a definition from disk.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read questionnaire: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("questionnaire %s: %w", path, err)
	}
	return def, nil
}

// Score sums the answers per group. Every question must be answered with one
// of its options, and every answer must name a known question.
func Score(def *Definition, answers map[string]int) (map[string]int, error) {
	for name := range answers {
		if _, ok := def.Question(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownQuestion, name)
		}
	}

	totals := make(map[string]int)
	var problems []string
	for _, q := range def.Questions {
		v, ok := answers[q.Name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s: not answered", q.Name))
		case !q.Allows(v):
			problems = append(problems, fmt.Sprintf("%s: %d not in [%d, %d)", q.Name, v, q.ValueMin, q.ValueMax))
		default:
			totals[q.Group] += v
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return totals, nil
}

// Entries stamps each group total with day.
func Entries(totals map[string]int, day time.Time) map[string]scores.Entry {
	out := make(map[string]scores.Entry, len(totals))
	for group, total := range totals {
		out[group] = scores.Entry{Date: day, Score: total}
	}
	return out
}
