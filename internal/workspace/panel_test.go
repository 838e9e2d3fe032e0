package workspace

import (
	"testing"

	"github.com/google/uuid"
)

func newTerminalTab(t *testing.T, title string) *Tab {
	t.Helper()
	return NewTab(title, TerminalContent{Handle: title})
}

func TestNewPanelActivatesFirstTab(t *testing.T) {
	tab := newTerminalTab(t, "shell")
	panel := NewPanel(tab)
	if panel == nil {
		t.Fatalf("NewPanel() returned nil")
	}
	if !tab.Active || panel.ActiveTabID != tab.ID {
		t.Fatalf("first tab should be active: %+v", panel)
	}
	if got := panel.ActiveTab(); got != tab {
		t.Fatalf("ActiveTab() = %+v, want first tab", got)
	}
}

func TestActivateTab(t *testing.T) {
	first := newTerminalTab(t, "one")
	second := newTerminalTab(t, "two")
	panel := NewPanel(first)
	panel.AddTab(second)

	if !second.Active || first.Active {
		t.Fatalf("AddTab should activate the new tab")
	}
	if !panel.ActivateTab(first.ID) {
		t.Fatalf("ActivateTab() failed for member tab")
	}
	if !first.Active || second.Active || panel.ActiveTabID != first.ID {
		t.Fatalf("activation flags wrong: first=%v second=%v", first.Active, second.Active)
	}
	if panel.ActivateTab(uuid.New()) {
		t.Fatalf("ActivateTab() should fail for unknown id")
	}
	if panel.ActiveTabID != first.ID {
		t.Fatalf("failed activation must not change the active tab")
	}
}

func TestCloseTab(t *testing.T) {
	first := newTerminalTab(t, "one")
	second := newTerminalTab(t, "two")
	third := newTerminalTab(t, "three")
	panel := NewPanel(first)
	panel.AddTab(second)
	panel.AddTab(third)

	if !panel.CloseTab(third.ID) {
		t.Fatalf("CloseTab() failed for member tab")
	}
	if len(panel.Tabs) != 2 {
		t.Fatalf("tab count = %d, want 2", len(panel.Tabs))
	}
	if panel.ActiveTabID != second.ID {
		t.Fatalf("closing the active tab should activate a neighbor, got %v", panel.ActiveTabID)
	}

	if panel.CloseTab(uuid.New()) {
		t.Fatalf("CloseTab() should fail for unknown id")
	}
	if !panel.CloseTab(first.ID) {
		t.Fatalf("CloseTab() failed for inactive tab")
	}
	if panel.CloseTab(second.ID) {
		t.Fatalf("CloseTab() must refuse to remove the last tab")
	}
	if len(panel.Tabs) != 1 || panel.ActiveTabID != second.ID {
		t.Fatalf("panel should keep its last tab active: %+v", panel)
	}
}

func TestReorderTabs(t *testing.T) {
	first := newTerminalTab(t, "one")
	second := newTerminalTab(t, "two")
	third := newTerminalTab(t, "three")
	panel := NewPanel(first)
	panel.AddTab(second)
	panel.AddTab(third)

	if !panel.ReorderTabs([]uuid.UUID{third.ID, first.ID, second.ID}) {
		t.Fatalf("ReorderTabs() failed for valid permutation")
	}
	got := panel.TabIDs()
	want := []uuid.UUID{third.ID, first.ID, second.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if panel.ReorderTabs([]uuid.UUID{first.ID, second.ID}) {
		t.Fatalf("ReorderTabs() should fail for wrong length")
	}
	if panel.ReorderTabs([]uuid.UUID{first.ID, second.ID, uuid.New()}) {
		t.Fatalf("ReorderTabs() should fail for foreign id")
	}
	if panel.ReorderTabs([]uuid.UUID{first.ID, first.ID, second.ID}) {
		t.Fatalf("ReorderTabs() should fail for duplicated id")
	}
}

func TestContentKinds(t *testing.T) {
	term := NewTab("term", TerminalContent{Handle: "pty-1"})
	view := NewTab("settings", ViewContent{Handle: "view-1"})

	if !IsTerminal(term.Content) || IsTerminal(view.Content) {
		t.Fatalf("content kind detection wrong")
	}
	if RenderHandle(term.Content) != "pty-1" || RenderHandle(view.Content) != "view-1" {
		t.Fatalf("render handles not preserved")
	}
}
