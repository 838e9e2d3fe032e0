package workspace

import (
	"github.com/google/uuid"

	"github.com/vimo-ai/eterm/internal/layout"
)

// Panel is a rectangular region holding an ordered set of tabs, exactly one
// of which is active. A panel never exists with zero tabs: it is created with
// one and destroyed (via its page) when the last tab goes away.
type Panel struct {
	ID          uuid.UUID
	Tabs        []*Tab
	ActiveTabID uuid.UUID

	// Bounds is the last rect computed for this panel. Written only by the
	// bounds-computing caller, read by everyone else.
	Bounds layout.Rect
}

// NewPanel creates a panel around its first tab and activates it.
func NewPanel(tab *Tab) *Panel {
	if tab == nil {
		return nil
	}
	tab.Active = true
	return &Panel{
		ID:          uuid.New(),
		Tabs:        []*Tab{tab},
		ActiveTabID: tab.ID,
	}
}

// Tab returns the tab with the given id.
func (p *Panel) Tab(id uuid.UUID) *Tab {
	if p == nil {
		return nil
	}
	for _, tab := range p.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// ActiveTab returns the currently active tab.
func (p *Panel) ActiveTab() *Tab {
	return p.Tab(p.ActiveTabID)
}

// TabIDs returns tab identifiers in display order.
func (p *Panel) TabIDs() []uuid.UUID {
	if p == nil {
		return nil
	}
	out := make([]uuid.UUID, 0, len(p.Tabs))
	for _, tab := range p.Tabs {
		out = append(out, tab.ID)
	}
	return out
}

// AddTab appends a tab and makes it active.
func (p *Panel) AddTab(tab *Tab) {
	if p == nil || tab == nil {
		return
	}
	p.Tabs = append(p.Tabs, tab)
	p.activate(tab)
}

// ActivateTab switches the active tab. It reports false when id is not a
// member; the previous activation is left untouched in that case.
func (p *Panel) ActivateTab(id uuid.UUID) bool {
	tab := p.Tab(id)
	if tab == nil {
		return false
	}
	p.activate(tab)
	return true
}

func (p *Panel) activate(tab *Tab) {
	if prev := p.ActiveTab(); prev != nil && prev != tab {
		prev.Active = false
	}
	tab.Active = true
	p.ActiveTabID = tab.ID
}

// CloseTab removes a tab. It reports false when id is absent or when the tab
// is the panel's last one — a panel with zero tabs cannot exist, so closing
// the final tab goes through page-level panel removal instead.
func (p *Panel) CloseTab(id uuid.UUID) bool {
	if p == nil || len(p.Tabs) <= 1 {
		return false
	}
	idx := -1
	for i, tab := range p.Tabs {
		if tab.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	closing := p.Tabs[idx]
	p.Tabs = append(p.Tabs[:idx], p.Tabs[idx+1:]...)
	if closing.ID == p.ActiveTabID {
		next := idx
		if next >= len(p.Tabs) {
			next = len(p.Tabs) - 1
		}
		p.activate(p.Tabs[next])
	}
	return true
}

// ReorderTabs rearranges tabs to the given order. The order must be exactly
// a permutation of the current tab ids; anything else reports false and
// leaves the panel untouched.
func (p *Panel) ReorderTabs(order []uuid.UUID) bool {
	if p == nil || len(order) != len(p.Tabs) {
		return false
	}
	byID := make(map[uuid.UUID]*Tab, len(p.Tabs))
	for _, tab := range p.Tabs {
		byID[tab.ID] = tab
	}
	next := make([]*Tab, 0, len(order))
	for _, id := range order {
		tab, ok := byID[id]
		if !ok {
			return false
		}
		delete(byID, id)
		next = append(next, tab)
	}
	p.Tabs = next
	return true
}
