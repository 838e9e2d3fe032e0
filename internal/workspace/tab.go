// Package workspace owns the domain objects of the layout engine: tabs,
// panels, pages, and windows, plus the manager that routes content events
// back to their owning window.
//
// Everything in this package except Manager is mutated exclusively on the
// host's single interaction goroutine; none of these methods suspend or
// take locks.
package workspace

import (
	"strings"

	"github.com/google/uuid"
)

// Content is the payload behind a tab. It is a closed sum: terminal content
// or a generic view, both carrying a handle the layout engine never inspects.
type Content interface {
	isContent()
}

// TerminalContent wraps an opaque terminal emulator handle.
type TerminalContent struct {
	Handle any
}

func (TerminalContent) isContent() {}

// ViewContent wraps an opaque non-terminal view handle.
type ViewContent struct {
	Handle any
}

func (ViewContent) isContent() {}

// RenderHandle extracts the opaque handle from either content kind.
func RenderHandle(c Content) any {
	switch v := c.(type) {
	case TerminalContent:
		return v.Handle
	case ViewContent:
		return v.Handle
	default:
		return nil
	}
}

// IsTerminal reports whether the content is terminal-backed. Only terminal
// tabs record a working context and restore command in snapshots.
func IsTerminal(c Content) bool {
	_, ok := c.(TerminalContent)
	return ok
}

// Tab is one titled content surface inside a panel.
type Tab struct {
	ID      uuid.UUID
	Title   string
	Content Content
	Active  bool
}

// NewTab creates a tab with a fresh identifier.
func NewTab(title string, content Content) *Tab {
	return &Tab{
		ID:      uuid.New(),
		Title:   strings.TrimSpace(title),
		Content: content,
	}
}
