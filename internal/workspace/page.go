package workspace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vimo-ai/eterm/internal/layout"
)

// Page is a named collection of panels arranged by a single layout tree. The
// set of leaf panel ids in the tree and the key set of the panel registry are
// kept in lockstep by every mutating operation.
type Page struct {
	ID     uuid.UUID
	Title  string
	Root   *layout.Node
	Panels map[uuid.UUID]*Panel
}

// NewPage creates a page holding its first panel as the sole leaf.
func NewPage(title string, panel *Panel) (*Page, error) {
	if panel == nil {
		return nil, errors.New("workspace: page requires a first panel")
	}
	return &Page{
		ID:     uuid.New(),
		Title:  strings.TrimSpace(title),
		Root:   layout.Leaf(panel.ID),
		Panels: map[uuid.UUID]*Panel{panel.ID: panel},
	}, nil
}

// RestorePage rebuilds a page from captured parts. The tree and registry
// must already agree; restore never patches one to match the other.
func RestorePage(title string, root *layout.Node, panels map[uuid.UUID]*Panel) (*Page, error) {
	if err := layout.Validate(root); err != nil {
		return nil, err
	}
	leaves := root.Leaves()
	if len(leaves) != len(panels) {
		return nil, fmt.Errorf("workspace: tree has %d leaves but registry has %d panels", len(leaves), len(panels))
	}
	for _, id := range leaves {
		if panels[id] == nil {
			return nil, fmt.Errorf("workspace: leaf %q has no registered panel", id)
		}
	}
	return &Page{
		ID:     uuid.New(),
		Title:  strings.TrimSpace(title),
		Root:   root,
		Panels: panels,
	}, nil
}

// Panel returns a registered panel.
func (pg *Page) Panel(id uuid.UUID) (*Panel, bool) {
	if pg == nil {
		return nil, false
	}
	panel, ok := pg.Panels[id]
	return panel, ok
}

// PanelCount returns the number of registered panels.
func (pg *Page) PanelCount() int {
	if pg == nil {
		return 0
	}
	return len(pg.Panels)
}

// FirstPanelID returns the first panel in tree order.
func (pg *Page) FirstPanelID() (uuid.UUID, bool) {
	if pg == nil || pg.Root == nil {
		return uuid.Nil, false
	}
	leaves := pg.Root.Leaves()
	if len(leaves) == 0 {
		return uuid.Nil, false
	}
	return leaves[0], true
}

// SplitPanel splits the target leaf along an axis, placing newPanel after the
// existing one, and registers newPanel on success.
func (pg *Page) SplitPanel(target uuid.UUID, axis layout.Axis, newPanel *Panel) error {
	return pg.splitWith(newPanel, func(root *layout.Node) (*layout.Node, error) {
		return layout.SplitAt(root, target, newPanel.ID, axis)
	})
}

// SplitPanelEdge splits the target leaf at a specific edge, which fixes the
// child ordering and therefore where the new panel lands on screen.
func (pg *Page) SplitPanelEdge(target uuid.UUID, edge layout.Edge, newPanel *Panel) error {
	return pg.splitWith(newPanel, func(root *layout.Node) (*layout.Node, error) {
		return layout.SplitAtEdge(root, target, newPanel.ID, edge)
	})
}

func (pg *Page) splitWith(newPanel *Panel, op func(*layout.Node) (*layout.Node, error)) error {
	if pg == nil {
		return errors.New("workspace: page is nil")
	}
	if newPanel == nil {
		return errors.New("workspace: split requires a new panel")
	}
	if _, exists := pg.Panels[newPanel.ID]; exists {
		return fmt.Errorf("workspace: panel %q already registered", newPanel.ID)
	}
	root, err := op(pg.Root)
	if err != nil {
		return err
	}
	pg.Root = root
	pg.Panels[newPanel.ID] = newPanel
	return nil
}

// ClosePanel removes a panel from the tree and the registry, destroying it.
// The page's last panel cannot be removed.
func (pg *Page) ClosePanel(id uuid.UUID) error {
	if pg == nil {
		return errors.New("workspace: page is nil")
	}
	if _, ok := pg.Panels[id]; !ok {
		return fmt.Errorf("workspace: panel %q not found", id)
	}
	root, err := layout.Remove(pg.Root, id)
	if err != nil {
		return err
	}
	pg.Root = root
	delete(pg.Panels, id)
	return nil
}

// MovePanel relocates a panel to an edge of another panel. Only the tree
// position changes; the registry entry, and with it all panel state, stays.
func (pg *Page) MovePanel(id, target uuid.UUID, edge layout.Edge) error {
	if pg == nil {
		return errors.New("workspace: page is nil")
	}
	root, err := layout.Move(pg.Root, id, target, edge)
	if err != nil {
		return err
	}
	pg.Root = root
	return nil
}

// SetSplitRatio updates the ratio of the split addressed by path. Stale paths
// are tolerated as no-ops, matching the layout package's leniency.
func (pg *Page) SetSplitRatio(path []int, ratio float64) {
	if pg == nil {
		return
	}
	pg.Root = layout.SetRatio(pg.Root, path, ratio)
}

// Renderable pairs a tab's opaque render handle with its computed rect.
type Renderable struct {
	PanelID uuid.UUID
	TabID   uuid.UUID
	Handle  any
	Bounds  layout.Rect
}

// Renderables computes bounds for the whole page and returns the active
// tab of every panel with its rect, in tree order. Each panel's cached
// Bounds is refreshed as a side effect; this is the only place that writes
// it.
func (pg *Page) Renderables(container layout.Rect, divider float64) []Renderable {
	if pg == nil || pg.Root == nil {
		return nil
	}
	rects := layout.Bounds(pg.Root, container, divider)
	leaves := pg.Root.Leaves()
	out := make([]Renderable, 0, len(leaves))
	for _, panelID := range leaves {
		panel, ok := pg.Panels[panelID]
		if !ok {
			continue
		}
		panel.Bounds = rects[panelID]
		tab := panel.ActiveTab()
		if tab == nil {
			continue
		}
		out = append(out, Renderable{
			PanelID: panelID,
			TabID:   tab.ID,
			Handle:  RenderHandle(tab.Content),
			Bounds:  panel.Bounds,
		})
	}
	return out
}
