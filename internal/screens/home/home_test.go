package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quirk/internal/chart"
	"github.com/abhisek/quirk/internal/router"
	"github.com/abhisek/quirk/internal/scores"
	chartscreen "github.com/abhisek/quirk/internal/screens/chart"
)

func newTestHome(t *testing.T, docs ...string) *HomeScreen {
	t.Helper()
	st, err := scores.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range docs {
		err := st.Append(context.Background(), d, map[string]scores.Entry{
			"g": {Date: chart.Day(2024, 1, 1), Score: 1},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	h := New(st, nil, chartscreen.Options{})
	h.Update(h.Init()())
	return h
}

func TestHomeScreen_ListsDocuments(t *testing.T) {
	h := newTestHome(t, "weekly", "daily")
	view := ansi.Strip(h.View(80, 24))

	for _, want := range []string{"daily", "weekly", "1 entry", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "daily") > strings.Index(view, "weekly") {
		t.Error("documents should be listed in name order")
	}
}

func TestHomeScreen_Empty(t *testing.T) {
	h := newTestHome(t)
	view := ansi.Strip(h.View(80, 24))
	if !strings.Contains(view, "Nothing recorded yet") {
		t.Errorf("expected empty hint:\n%s", view)
	}
}

func TestHomeScreen_EnterPushesChart(t *testing.T) {
	h := newTestHome(t, "weekly")
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	cs, ok := push.Screen.(*chartscreen.ChartScreen)
	if !ok {
		t.Fatalf("pushed %T, want chart screen", push.Screen)
	}
	defer cs.Close()
	if cs.Title() != "weekly" {
		t.Errorf("chart title = %q", cs.Title())
	}
}

func TestHomeScreen_ResumeReloads(t *testing.T) {
	h := newTestHome(t)
	_, cmd := h.Update(router.ResumedMsg{})
	if cmd == nil {
		t.Fatal("expected a reload on resume")
	}
	if _, ok := cmd().(documentsMsg); !ok {
		t.Error("resume should reload the document list")
	}
}

func TestHomeScreen_KeyHints(t *testing.T) {
	h := newTestHome(t)
	if len(h.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(h.KeyHints()))
	}
}
