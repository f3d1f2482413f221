// Package scores persists questionnaire results: per-group lists of
// ("YYYYMMDD", score) pairs, one document per questionnaire.
package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/quirk/internal/chart"
)

// Entry is a single dated score. It is stored as a ["YYYYMMDD", score] pair.
type Entry struct {
	Date  time.Time
	Score int
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{chart.FormatDate(e.Date), e.Score})
}

func (e *Entry) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("score entry: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("score entry: want [date, score], got %d elements", len(raw))
	}
	var date string
	if err := json.Unmarshal(raw[0], &date); err != nil {
		return fmt.Errorf("score entry date: %w", err)
	}
	d, err := chart.ParseDate(date)
	if err != nil {
		return fmt.Errorf("score entry date %q: %w", date, err)
	}
	var score int
	if err := json.Unmarshal(raw[1], &score); err != nil {
		return fmt.Errorf("score entry value: %w", err)
	}
	e.Date, e.Score = d, score
	return nil
}

// Document maps a question group to its scores in recording order.
type Document map[string][]Entry

// Groups returns the group names in sorted order.
func (d Document) Groups() []string {
	groups := make([]string, 0, len(d))
	for g := range d {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Merge appends one entry per group.
func (d Document) Merge(entries map[string]Entry) {
	for group, e := range entries {
		d[group] = append(d[group], e)
	}
}

func sortedGroups(entries map[string]Entry) []string {
	groups := make([]string, 0, len(entries))
	for g := range entries {
		groups = append(groups, g)
	}
	slices.Sort(groups)
	return groups
}

// Parse validates raw document JSON and decodes it.
func Parse(data []byte) (Document, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// Store reads and appends score documents.
type Store interface {
	// Load returns the named document. A document that was never written
	// loads as empty.
	Load(ctx context.Context, name string) (Document, error)

	// Append adds one entry per group to the named document.
	Append(ctx context.Context, name string, entries map[string]Entry) error

	// List returns the names of all stored documents.
	List(ctx context.Context) ([]string, error)

	// Path returns the file whose changes signal an update of the document.
	Path(name string) string

	Close() error
}

// DocumentName derives the document name from a questionnaire file path.
func DocumentName(questionnairePath string) string {
	base := filepath.Base(questionnairePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
