package workspace

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vimo-ai/eterm/internal/layout"
)

// Focus identifies the (page, panel) pair holding input focus.
type Focus struct {
	PageID  uuid.UUID
	PanelID uuid.UUID
}

// Window is the top-level container: an ordered list of pages, the current
// focus, and the per-page memory used to restore focus when switching back.
// Focus is nil only while the active page has no panels (non-layout content
// pages) or while the window is transiently empty during migration.
type Window struct {
	ID          uuid.UUID
	Frame       layout.Rect
	ScreenID    string
	ScreenFrame *layout.Rect

	Pages []*Page
	Focus *Focus

	lastFocused map[uuid.UUID]uuid.UUID
}

// NewWindow creates a window holding its first page and focuses that page's
// first panel.
func NewWindow(page *Page) (*Window, error) {
	if page == nil {
		return nil, errors.New("workspace: window requires a first page")
	}
	w := &Window{
		ID:          uuid.New(),
		Pages:       []*Page{page},
		lastFocused: make(map[uuid.UUID]uuid.UUID),
	}
	if panelID, ok := page.FirstPanelID(); ok {
		w.Focus = &Focus{PageID: page.ID, PanelID: panelID}
		w.lastFocused[page.ID] = panelID
	}
	return w, nil
}

// RestoreWindow rebuilds a window from captured state: an ordered page list,
// the index of the active page, and the remembered focus panel per page.
// Out-of-range indices and dead panel references are clamped rather than
// rejected so an imperfect snapshot still restores.
func RestoreWindow(pages []*Page, activeIndex int, focusByPage map[uuid.UUID]uuid.UUID) (*Window, error) {
	if len(pages) == 0 {
		return nil, errors.New("workspace: window requires at least one page")
	}
	w := &Window{
		ID:          uuid.New(),
		Pages:       pages,
		lastFocused: make(map[uuid.UUID]uuid.UUID),
	}
	for _, page := range pages {
		panelID, ok := focusByPage[page.ID]
		if ok {
			if _, alive := page.Panel(panelID); !alive {
				ok = false
			}
		}
		if !ok {
			panelID, ok = page.FirstPanelID()
		}
		if ok {
			w.lastFocused[page.ID] = panelID
		}
	}
	if activeIndex < 0 || activeIndex >= len(pages) {
		activeIndex = 0
	}
	active := pages[activeIndex]
	if panelID, ok := w.lastFocused[active.ID]; ok {
		w.Focus = &Focus{PageID: active.ID, PanelID: panelID}
	}
	return w, nil
}

// Page returns the page with the given id.
func (w *Window) Page(id uuid.UUID) (*Page, bool) {
	if w == nil {
		return nil, false
	}
	for _, page := range w.Pages {
		if page.ID == id {
			return page, true
		}
	}
	return nil, false
}

func (w *Window) pageIndex(id uuid.UUID) int {
	for i, page := range w.Pages {
		if page.ID == id {
			return i
		}
	}
	return -1
}

// ActivePage returns the focused page, or the first page when no focus is
// recorded.
func (w *Window) ActivePage() *Page {
	if w == nil || len(w.Pages) == 0 {
		return nil
	}
	if w.Focus != nil {
		if page, ok := w.Page(w.Focus.PageID); ok {
			return page
		}
	}
	return w.Pages[0]
}

// ActivePageIndex returns the index of the focused page, defaulting to 0.
func (w *Window) ActivePageIndex() int {
	page := w.ActivePage()
	if page == nil {
		return 0
	}
	if idx := w.pageIndex(page.ID); idx >= 0 {
		return idx
	}
	return 0
}

// LastFocusedPanel returns the panel remembered for a page.
func (w *Window) LastFocusedPanel(pageID uuid.UUID) (uuid.UUID, bool) {
	if w == nil {
		return uuid.Nil, false
	}
	id, ok := w.lastFocused[pageID]
	return id, ok
}

// SetActivePanel focuses a panel on the currently active page. Panels on
// other pages are ignored; switching pages is a separate operation.
func (w *Window) SetActivePanel(panelID uuid.UUID) bool {
	if w == nil {
		return false
	}
	page := w.ActivePage()
	if page == nil {
		return false
	}
	if _, ok := page.Panel(panelID); !ok {
		return false
	}
	w.Focus = &Focus{PageID: page.ID, PanelID: panelID}
	w.lastFocused[page.ID] = panelID
	return true
}

// SwitchToPage makes pageID the active page and restores its last-focused
// panel. When that panel is gone the page's first panel takes focus; a page
// with no panels keeps the previously focused panel id so focus can survive
// a round-trip through non-layout content pages.
func (w *Window) SwitchToPage(pageID uuid.UUID) bool {
	if w == nil {
		return false
	}
	page, ok := w.Page(pageID)
	if !ok {
		return false
	}
	if w.Focus != nil {
		w.lastFocused[w.Focus.PageID] = w.Focus.PanelID
	}

	panelID, remembered := w.lastFocused[page.ID]
	if remembered {
		if _, alive := page.Panel(panelID); !alive {
			remembered = false
		}
	}
	if !remembered {
		if first, hasPanels := page.FirstPanelID(); hasPanels {
			panelID = first
			remembered = true
		}
	}
	if !remembered && w.Focus != nil {
		panelID = w.Focus.PanelID
	}
	w.Focus = &Focus{PageID: page.ID, PanelID: panelID}
	if remembered {
		w.lastFocused[page.ID] = panelID
	}
	return true
}

// AddPage appends a page, optionally switching to it.
func (w *Window) AddPage(page *Page, activate bool) error {
	if w == nil {
		return errors.New("workspace: window is nil")
	}
	if page == nil {
		return errors.New("workspace: page is nil")
	}
	if _, exists := w.Page(page.ID); exists {
		return fmt.Errorf("workspace: page %q already present", page.ID)
	}
	w.Pages = append(w.Pages, page)
	if activate {
		w.SwitchToPage(page.ID)
	}
	return nil
}

// RemovePage drops a page. Removing the focused page switches to an adjacent
// one first. The last page can only be removed with force, which is reserved
// for cross-window page migration and leaves the window transiently empty.
func (w *Window) RemovePage(pageID uuid.UUID, force bool) error {
	if w == nil {
		return errors.New("workspace: window is nil")
	}
	idx := w.pageIndex(pageID)
	if idx < 0 {
		return fmt.Errorf("workspace: page %q not found", pageID)
	}
	if len(w.Pages) == 1 && !force {
		return errors.New("workspace: cannot remove the last page")
	}

	focusedHere := w.Focus != nil && w.Focus.PageID == pageID
	if focusedHere && len(w.Pages) > 1 {
		neighbor := idx + 1
		if neighbor >= len(w.Pages) {
			neighbor = idx - 1
		}
		w.SwitchToPage(w.Pages[neighbor].ID)
	}

	w.Pages = append(w.Pages[:idx], w.Pages[idx+1:]...)
	delete(w.lastFocused, pageID)
	if len(w.Pages) == 0 {
		w.Focus = nil
	}
	return nil
}
