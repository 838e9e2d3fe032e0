package workspace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Dispatcher re-posts a mutation onto the host's single interaction
// goroutine. All Window/Page/Panel mutation triggered by content events must
// go through it; the manager never mutates workspace state on a delivery
// goroutine.
type Dispatcher func(func())

// Manager is the process-wide service object owning the window arena and the
// routing table that maps content events back to their window. It replaces
// what the surrounding application would otherwise keep as global singletons.
//
// The routing table is the one piece of genuinely concurrent state in the
// engine: content events arrive on arbitrary goroutines.
type Manager struct {
	dispatch Dispatcher

	mu      sync.RWMutex
	windows map[uuid.UUID]*Window
	order   []uuid.UUID
	routes  map[uuid.UUID]uuid.UUID // tab id -> window id
}

// NewManager creates a manager. A nil dispatcher runs callbacks inline,
// which is only suitable for tests and single-threaded hosts.
func NewManager(dispatch Dispatcher) *Manager {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Manager{
		dispatch: dispatch,
		windows:  make(map[uuid.UUID]*Window),
		routes:   make(map[uuid.UUID]uuid.UUID),
	}
}

// AddWindow registers a window in the arena.
func (m *Manager) AddWindow(w *Window) error {
	if m == nil {
		return errors.New("workspace: manager is nil")
	}
	if w == nil {
		return errors.New("workspace: window is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.windows[w.ID]; exists {
		return fmt.Errorf("workspace: window %q already registered", w.ID)
	}
	m.windows[w.ID] = w
	m.order = append(m.order, w.ID)
	return nil
}

// RemoveWindow drops a window and every route pointing at it.
func (m *Manager) RemoveWindow(id uuid.UUID) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[id]; !ok {
		return
	}
	delete(m.windows, id)
	for i, candidate := range m.order {
		if candidate == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	for tabID, winID := range m.routes {
		if winID == id {
			delete(m.routes, tabID)
		}
	}
}

// Window returns a window from the arena.
func (m *Manager) Window(id uuid.UUID) (*Window, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.windows[id]
	return w, ok
}

// Exists is the liveness check routing entries rely on instead of weak
// references: a route may outlive its window between delivery and dispatch.
func (m *Manager) Exists(id uuid.UUID) bool {
	_, ok := m.Window(id)
	return ok
}

// Windows returns all windows in registration order.
func (m *Manager) Windows() []*Window {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Window, 0, len(m.order))
	for _, id := range m.order {
		if w, ok := m.windows[id]; ok {
			out = append(out, w)
		}
	}
	return out
}

// WindowCount returns the arena size.
func (m *Manager) WindowCount() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// BindTab routes content events for a tab to a window.
func (m *Manager) BindTab(tabID, windowID uuid.UUID) error {
	if m == nil {
		return errors.New("workspace: manager is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.windows[windowID]; !ok {
		return fmt.Errorf("workspace: window %q not found", windowID)
	}
	m.routes[tabID] = windowID
	return nil
}

// UnbindTab removes a tab route.
func (m *Manager) UnbindTab(tabID uuid.UUID) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.routes, tabID)
}

// WindowForTab resolves the window currently bound to a tab.
func (m *Manager) WindowForTab(tabID uuid.UUID) (uuid.UUID, bool) {
	if m == nil {
		return uuid.Nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.routes[tabID]
	return id, ok
}

// DeliverContentEvent resolves the route for a tab and re-dispatches fn with
// the owning window onto the interaction goroutine. Events for unrouted tabs
// or windows that died in the meantime are dropped; it reports whether the
// event was dispatched.
func (m *Manager) DeliverContentEvent(tabID uuid.UUID, fn func(*Window)) bool {
	if m == nil || fn == nil {
		return false
	}
	m.mu.RLock()
	windowID, ok := m.routes[tabID]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	m.dispatch(func() {
		// The window may have been removed between lookup and dispatch.
		if w, alive := m.Window(windowID); alive {
			fn(w)
		}
	})
	return true
}
