package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testMenu(picked *string) Menu {
	pick := func(label string) func() tea.Cmd {
		return func() tea.Cmd {
			*picked = label
			return func() tea.Msg { return nil }
		}
	}
	return NewMenu([]MenuItem{
		{Label: "disabled", Disabled: true},
		{Label: "weekly", Detail: "12 entries", Action: pick("weekly")},
		{Label: "mood", Action: pick("mood")},
	})
}

func TestMenu_SkipsDisabledOnCreate(t *testing.T) {
	var picked string
	m := testMenu(&picked)
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_Navigation(t *testing.T) {
	var picked string
	m := testMenu(&picked)

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("after down Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Errorf("down at bottom moved to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up past disabled item: Selected = %d, want 1", m.Selected)
	}
}

func TestMenu_Enter(t *testing.T) {
	var picked string
	m := testMenu(&picked)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if picked != "weekly" {
		t.Errorf("picked = %q, want weekly", picked)
	}
}

func TestMenu_View(t *testing.T) {
	var picked string
	v := testMenu(&picked).View()
	if !strings.Contains(v, "▸ weekly") {
		t.Errorf("selected item not marked: %q", v)
	}
	if !strings.Contains(v, "12 entries") {
		t.Errorf("detail missing: %q", v)
	}
}
