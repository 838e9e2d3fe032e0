package workspace

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vimo-ai/eterm/internal/layout"
)

func newTestWindow(t *testing.T) (*Window, *Page, *Panel) {
	t.Helper()
	page, panel := newTestPage(t)
	w, err := NewWindow(page)
	if err != nil {
		t.Fatalf("NewWindow() error: %v", err)
	}
	return w, page, panel
}

func TestNewWindowFocusesFirstPanel(t *testing.T) {
	w, page, panel := newTestWindow(t)
	if w.Focus == nil || w.Focus.PageID != page.ID || w.Focus.PanelID != panel.ID {
		t.Fatalf("unexpected initial focus: %+v", w.Focus)
	}
}

func TestSetActivePanelScopedToActivePage(t *testing.T) {
	w, page, panel := newTestWindow(t)
	other := NewPanel(newTerminalTab(t, "editor"))
	if err := page.SplitPanel(panel.ID, layout.AxisHorizontal, other); err != nil {
		t.Fatalf("SplitPanel() error: %v", err)
	}

	if !w.SetActivePanel(other.ID) {
		t.Fatalf("SetActivePanel() failed for panel on active page")
	}
	if w.Focus.PanelID != other.ID {
		t.Fatalf("focus = %v, want %v", w.Focus.PanelID, other.ID)
	}
	if w.SetActivePanel(uuid.New()) {
		t.Fatalf("SetActivePanel() should ignore foreign panels")
	}

	secondPage, secondPanel := newTestPage(t)
	if err := w.AddPage(secondPage, false); err != nil {
		t.Fatalf("AddPage() error: %v", err)
	}
	if w.SetActivePanel(secondPanel.ID) {
		t.Fatalf("SetActivePanel() must not focus panels of inactive pages")
	}
}

func TestSwitchToPageRestoresLastFocus(t *testing.T) {
	w, page, panel := newTestWindow(t)
	other := NewPanel(newTerminalTab(t, "editor"))
	if err := page.SplitPanel(panel.ID, layout.AxisHorizontal, other); err != nil {
		t.Fatalf("SplitPanel() error: %v", err)
	}
	if !w.SetActivePanel(other.ID) {
		t.Fatalf("SetActivePanel() failed")
	}

	secondPage, secondPanel := newTestPage(t)
	if err := w.AddPage(secondPage, true); err != nil {
		t.Fatalf("AddPage() error: %v", err)
	}
	if w.Focus.PageID != secondPage.ID || w.Focus.PanelID != secondPanel.ID {
		t.Fatalf("switch should focus new page's panel: %+v", w.Focus)
	}

	if !w.SwitchToPage(page.ID) {
		t.Fatalf("SwitchToPage() failed")
	}
	if w.Focus.PanelID != other.ID {
		t.Fatalf("focus = %v, want remembered panel %v", w.Focus.PanelID, other.ID)
	}

	// Remembered panel disappears: fall back to the page's first panel.
	if err := page.ClosePanel(other.ID); err != nil {
		t.Fatalf("ClosePanel() error: %v", err)
	}
	if !w.SwitchToPage(secondPage.ID) || !w.SwitchToPage(page.ID) {
		t.Fatalf("SwitchToPage() round trip failed")
	}
	if w.Focus.PanelID != panel.ID {
		t.Fatalf("focus = %v, want first panel %v", w.Focus.PanelID, panel.ID)
	}
}

func TestSwitchToUnknownPage(t *testing.T) {
	w, _, _ := newTestWindow(t)
	before := *w.Focus
	if w.SwitchToPage(uuid.New()) {
		t.Fatalf("SwitchToPage() should fail for unknown page")
	}
	if *w.Focus != before {
		t.Fatalf("failed switch must not move focus")
	}
}

func TestRemovePage(t *testing.T) {
	w, page, _ := newTestWindow(t)
	secondPage, _ := newTestPage(t)
	if err := w.AddPage(secondPage, true); err != nil {
		t.Fatalf("AddPage() error: %v", err)
	}

	// Removing the focused page switches to the adjacent one.
	if err := w.RemovePage(secondPage.ID, false); err != nil {
		t.Fatalf("RemovePage() error: %v", err)
	}
	if len(w.Pages) != 1 || w.Focus == nil || w.Focus.PageID != page.ID {
		t.Fatalf("expected focus on surviving page: %+v", w.Focus)
	}

	if err := w.RemovePage(page.ID, false); err == nil {
		t.Fatalf("expected error removing the last page without force")
	}
	if err := w.RemovePage(page.ID, true); err != nil {
		t.Fatalf("RemovePage(force) error: %v", err)
	}
	if len(w.Pages) != 0 || w.Focus != nil {
		t.Fatalf("forced removal should leave an empty window, got %+v", w)
	}
}

func TestRemoveUnknownPage(t *testing.T) {
	w, _, _ := newTestWindow(t)
	if err := w.RemovePage(uuid.New(), false); err == nil {
		t.Fatalf("expected error for unknown page")
	}
}
