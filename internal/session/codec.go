package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/vimo-ai/eterm/internal/layout"
	"github.com/vimo-ai/eterm/internal/workspace"
)

// ContextProvider is the content collaborator's snapshot surface: for a tab
// it reports the working context to record (e.g. the shell's cwd) and the
// command line that respawns the tab's process. Either may be empty.
type ContextProvider interface {
	WorkingContext(tabID uuid.UUID) string
	RestoreCommand(tabID uuid.UUID) string
}

// ContentFactory rebuilds opaque content handles at restore time. A nil
// factory restores tabs with empty handles, which is what headless tools
// (and tests) want.
type ContentFactory interface {
	Terminal(tab TabSnapshot) workspace.Content
	View(tab TabSnapshot) workspace.Content
}

// Capture walks every window into a fresh snapshot.
func Capture(windows []*workspace.Window, provider ContextProvider) *Snapshot {
	snap := &Snapshot{
		SchemaVersion: CurrentSchemaVersion,
		CapturedAt:    time.Now().UTC(),
	}
	for _, w := range windows {
		if w == nil || len(w.Pages) == 0 {
			continue
		}
		snap.Windows = append(snap.Windows, CaptureWindow(w, provider))
	}
	return snap
}

// CaptureWindow records a single window: frame, screen placement, pages with
// their layout trees, and the focus bookkeeping needed to restore it.
func CaptureWindow(w *workspace.Window, provider ContextProvider) WindowSnapshot {
	out := WindowSnapshot{
		Frame:           w.Frame,
		ActivePageIndex: w.ActivePageIndex(),
		ScreenID:        w.ScreenID,
		ScreenFrame:     w.ScreenFrame,
	}
	for _, page := range w.Pages {
		out.Pages = append(out.Pages, capturePage(w, page, provider))
	}
	return out
}

func capturePage(w *workspace.Window, page *workspace.Page, provider ContextProvider) PageSnapshot {
	snap := PageSnapshot{Title: page.Title}
	if node := captureNode(page, page.Root, provider); node != nil {
		snap.Layout = *node
	}

	panelID := uuid.Nil
	if w.Focus != nil && w.Focus.PageID == page.ID {
		panelID = w.Focus.PanelID
	} else if remembered, ok := w.LastFocusedPanel(page.ID); ok {
		panelID = remembered
	} else if first, ok := page.FirstPanelID(); ok {
		panelID = first
	}
	if panelID != uuid.Nil {
		snap.ActivePanelID = panelID.String()
	}
	return snap
}

func captureNode(page *workspace.Page, node *layout.Node, provider ContextProvider) *LayoutSnapshot {
	if node == nil {
		return nil
	}
	if !node.IsLeaf() {
		return &LayoutSnapshot{
			Axis:   node.Axis.String(),
			Ratio:  node.Ratio,
			First:  captureNode(page, node.First, provider),
			Second: captureNode(page, node.Second, provider),
		}
	}

	leaf := &LayoutSnapshot{PanelID: node.PanelID.String()}
	panel, ok := page.Panel(node.PanelID)
	if !ok {
		return leaf
	}
	for i, tab := range panel.Tabs {
		if tab.ID == panel.ActiveTabID {
			leaf.ActiveTabIndex = i
		}
		leaf.Tabs = append(leaf.Tabs, captureTab(tab, provider))
	}
	return leaf
}

func captureTab(tab *workspace.Tab, provider ContextProvider) TabSnapshot {
	snap := TabSnapshot{
		ID:    tab.ID.String(),
		Title: tab.Title,
		Kind:  TabKindView,
	}
	if workspace.IsTerminal(tab.Content) {
		snap.Kind = TabKindTerminal
		if provider != nil {
			snap.ContextHint = provider.WorkingContext(tab.ID)
			snap.RestoreCommand = provider.RestoreCommand(tab.ID)
		}
	}
	return snap
}

// Restore rebuilds every window of a snapshot. Windows that fail to decode
// are skipped with a warning; an error is returned only when nothing could
// be restored from a non-empty snapshot.
func Restore(snap *Snapshot, factory ContentFactory) ([]*workspace.Window, error) {
	if snap == nil {
		return nil, errors.New("session: snapshot is nil")
	}
	var out []*workspace.Window
	for i := range snap.Windows {
		w, err := RestoreWindow(&snap.Windows[i], factory)
		if err != nil {
			slog.Warn("skipping unrestorable window", "index", i, "err", err)
			continue
		}
		out = append(out, w)
	}
	if len(out) == 0 && len(snap.Windows) > 0 {
		return nil, errors.New("session: no window could be restored")
	}
	return out, nil
}

// RestoreWindow is the inverse of CaptureWindow: panels are rebuilt first as
// flat leaves, then the recorded split structure is folded back into a tree.
func RestoreWindow(snap *WindowSnapshot, factory ContentFactory) (*workspace.Window, error) {
	if snap == nil {
		return nil, errors.New("session: window snapshot is nil")
	}
	var pages []*workspace.Page
	focusByPage := make(map[uuid.UUID]uuid.UUID)
	for i := range snap.Pages {
		pageSnap := &snap.Pages[i]
		page, focus, err := restorePage(pageSnap, factory)
		if err != nil {
			return nil, fmt.Errorf("session: page %d: %w", i, err)
		}
		pages = append(pages, page)
		if focus != uuid.Nil {
			focusByPage[page.ID] = focus
		}
	}
	w, err := workspace.RestoreWindow(pages, snap.ActivePageIndex, focusByPage)
	if err != nil {
		return nil, err
	}
	w.Frame = snap.Frame
	w.ScreenID = snap.ScreenID
	w.ScreenFrame = snap.ScreenFrame
	return w, nil
}

func restorePage(snap *PageSnapshot, factory ContentFactory) (*workspace.Page, uuid.UUID, error) {
	panels := make(map[uuid.UUID]*workspace.Panel)
	root, err := restoreNode(&snap.Layout, factory, panels)
	if err != nil {
		return nil, uuid.Nil, err
	}
	page, err := workspace.RestorePage(snap.Title, root, panels)
	if err != nil {
		return nil, uuid.Nil, err
	}

	focus := uuid.Nil
	if snap.ActivePanelID != "" {
		parsed, err := uuid.Parse(snap.ActivePanelID)
		if err == nil {
			focus = parsed
		}
	}
	return page, focus, nil
}

func restoreNode(snap *LayoutSnapshot, factory ContentFactory, panels map[uuid.UUID]*workspace.Panel) (*layout.Node, error) {
	if snap == nil {
		return nil, errors.New("split child missing")
	}
	if !snap.IsLeaf() {
		axis, err := layout.ParseAxis(snap.Axis)
		if err != nil {
			return nil, err
		}
		ratio := snap.Ratio
		if ratio <= 0 || ratio >= 1 {
			ratio = layout.DefaultRatio
		}
		first, err := restoreNode(snap.First, factory, panels)
		if err != nil {
			return nil, err
		}
		second, err := restoreNode(snap.Second, factory, panels)
		if err != nil {
			return nil, err
		}
		return layout.Split(axis, first, second, ratio), nil
	}

	panel, err := restorePanel(snap, factory)
	if err != nil {
		return nil, err
	}
	if _, dup := panels[panel.ID]; dup {
		return nil, fmt.Errorf("panel %q appears twice", panel.ID)
	}
	panels[panel.ID] = panel
	return layout.Leaf(panel.ID), nil
}

func restorePanel(snap *LayoutSnapshot, factory ContentFactory) (*workspace.Panel, error) {
	panelID, err := uuid.Parse(snap.PanelID)
	if err != nil {
		return nil, fmt.Errorf("invalid panel id %q", snap.PanelID)
	}
	if len(snap.Tabs) == 0 {
		return nil, fmt.Errorf("panel %q has no tabs", snap.PanelID)
	}

	tabs := make([]*workspace.Tab, 0, len(snap.Tabs))
	for _, tabSnap := range snap.Tabs {
		tabs = append(tabs, restoreTab(tabSnap, factory))
	}
	active := snap.ActiveTabIndex
	if active < 0 || active >= len(tabs) {
		active = 0
	}
	panel := &workspace.Panel{
		ID:          panelID,
		Tabs:        tabs,
		ActiveTabID: tabs[active].ID,
	}
	tabs[active].Active = true
	return panel, nil
}

func restoreTab(snap TabSnapshot, factory ContentFactory) *workspace.Tab {
	tabID, err := uuid.Parse(snap.ID)
	if err != nil {
		// The recorded id is only a routing key for dead content; a fresh
		// one keeps the tab restorable.
		tabID = uuid.New()
	}
	if snap.RestoreCommand != "" {
		if _, err := shellquote.Split(snap.RestoreCommand); err != nil {
			slog.Warn("dropping malformed restore command", "tab", snap.ID, "err", err)
			snap.RestoreCommand = ""
		}
	}

	kind := snap.Kind
	if kind == "" {
		// Snapshots written before the kind field default to terminal.
		kind = TabKindTerminal
	}
	var content workspace.Content
	switch {
	case kind == TabKindTerminal && factory != nil:
		content = factory.Terminal(snap)
	case kind == TabKindTerminal:
		content = workspace.TerminalContent{}
	case factory != nil:
		content = factory.View(snap)
	default:
		content = workspace.ViewContent{}
	}
	return &workspace.Tab{
		ID:      tabID,
		Title:   snap.Title,
		Content: content,
	}
}
