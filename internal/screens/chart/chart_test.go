package chart

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/scores"
)

func testStore(t *testing.T) *scores.JSONStore {
	t.Helper()
	st, err := scores.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}

func record(t *testing.T, st scores.Store, name string, day time.Time, score int) {
	t.Helper()
	err := st.Append(context.Background(), name, map[string]scores.Entry{
		"mood": {Date: day, Score: score},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
}

func loaded(t *testing.T, s *ChartScreen) {
	t.Helper()
	msg := s.load()
	if _, ok := msg.(loadedMsg); !ok {
		t.Fatalf("load returned %T", msg)
	}
	s.Update(msg)
}

func TestChartScreen_LoadPlotsDocument(t *testing.T) {
	st := testStore(t)
	for i := 0; i < 5; i++ {
		record(t, st, "weekly", chart.Day(2024, 1, 1).AddDate(0, 0, 7*i), i+1)
	}

	s := New(Options{Store: st, Document: "weekly"})
	defer s.Close()
	if s.View(80, 20) != "" {
		t.Error("expected empty view before load")
	}
	loaded(t, s)

	if got := s.Status(); got != "5 entries" {
		t.Errorf("Status = %q, want %q", got, "5 entries")
	}
	if len(s.Chart().Series()) != 1 {
		t.Fatalf("series = %d, want 1", len(s.Chart().Series()))
	}
	d := s.Chart().Domain()
	if !d.MinDate.Equal(chart.Day(2024, 1, 1)) || !d.MaxDate.Equal(chart.Day(2024, 1, 29)) {
		t.Errorf("domain dates = %v..%v", d.MinDate, d.MaxDate)
	}
	if s.View(80, 20) == "" {
		t.Error("expected a rendered chart")
	}
	if s.Title() != "weekly" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestChartScreen_MalformedDocumentShowsEmptyChart(t *testing.T) {
	st := testStore(t)
	s := New(Options{Store: failingStore{st}, Document: "broken"})
	defer s.Close()
	loaded(t, s)

	if got := s.Status(); got != "0 entries" {
		t.Errorf("Status = %q", got)
	}
	if !s.Chart().Domain().IsEmpty() {
		t.Error("expected the sentinel domain")
	}
	if !strings.Contains(ansi.Strip(s.View(80, 20)), "No scores recorded yet.") {
		t.Error("expected the empty chart message")
	}
}

type failingStore struct{ scores.Store }

func (failingStore) Load(context.Context, string) (scores.Document, error) {
	return nil, &scores.MalformedError{Name: "broken", Err: errors.New("bad date")}
}

func TestChartScreen_PanKeys(t *testing.T) {
	st := testStore(t)
	for i := 0; i < 12; i++ {
		record(t, st, "long", chart.Day(2023, 1, 1).AddDate(0, i, 0), i%5)
	}
	s := New(Options{Store: st, Document: "long"})
	defer s.Close()
	loaded(t, s)
	s.View(80, 20)

	end := s.view.Offset()
	if end == 0 {
		t.Fatal("expected the view to start at the latest dates")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if got := s.view.Offset(); got != end-panStep {
		t.Errorf("offset after left = %d, want %d", got, end-panStep)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	if got := s.view.Offset(); got != 0 {
		t.Errorf("offset after home = %d, want 0", got)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if got := s.view.Offset(); got != panStep {
		t.Errorf("offset after right = %d, want %d", got, panStep)
	}
	if len(s.KeyHints()) != 4 {
		t.Errorf("expected pan hints on a wide chart, got %v", s.KeyHints())
	}
}

func TestChartScreen_ReloadKey(t *testing.T) {
	st := testStore(t)
	s := New(Options{Store: st, Document: "weekly"})
	defer s.Close()
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	if _, ok := cmd().(loadedMsg); !ok {
		t.Error("reload should produce a loadedMsg")
	}
}

func TestChartScreen_WatchReloads(t *testing.T) {
	st := testStore(t)
	record(t, st, "live", chart.Day(2024, 1, 1), 1)

	s := New(Options{Store: st, Document: "live", Watch: true})
	defer s.Close()
	s.Init()
	loaded(t, s)

	wait := s.waitForChange()
	if wait == nil {
		t.Fatal("expected a watch command")
	}
	got := make(chan tea.Msg, 1)
	go func() { got <- wait() }()

	record(t, st, "live", chart.Day(2024, 1, 8), 2)

	select {
	case msg := <-got:
		if _, ok := msg.(changedMsg); !ok {
			t.Fatalf("watch produced %T", msg)
		}
		_, cmd := s.Update(msg)
		if cmd == nil {
			t.Fatal("expected reload and re-arm commands")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	loaded(t, s)
	if got := s.Status(); got != "2 entries" {
		t.Errorf("Status after reload = %q", got)
	}
}

func TestChartScreen_WithoutWatchHasNoWaitCommand(t *testing.T) {
	s := New(Options{Store: testStore(t), Document: "x"})
	defer s.Close()
	if s.waitForChange() != nil {
		t.Error("expected no watch command")
	}
}
