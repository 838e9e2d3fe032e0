// Package session serializes a window's full page/layout/panel/tab tree to a
// durable snapshot and reconstructs an equivalent tree from it, with
// crash-safe writes and rotating backups.
package session

import (
	"time"

	"github.com/vimo-ai/eterm/internal/layout"
)

// CurrentSchemaVersion identifies the persisted schema version.
const CurrentSchemaVersion = 1

// Snapshot is the top-level persisted document.
type Snapshot struct {
	SchemaVersion int               `json:"schemaVersion"`
	CapturedAt    time.Time         `json:"capturedAt,omitempty"`
	Windows       []WindowSnapshot  `json:"windows"`
	PluginData    map[string]string `json:"pluginData,omitempty"`
}

// Empty reports whether the snapshot carries no windows. Empty snapshots are
// never allowed to overwrite a good save.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Windows) == 0
}

// WindowSnapshot captures one window.
type WindowSnapshot struct {
	Frame           layout.Rect    `json:"frame"`
	Pages           []PageSnapshot `json:"pages"`
	ActivePageIndex int            `json:"activePageIndex"`
	ScreenID        string         `json:"screenId,omitempty"`
	ScreenFrame     *layout.Rect   `json:"screenFrame,omitempty"`
}

// PageSnapshot captures one page and its layout tree.
type PageSnapshot struct {
	Title         string         `json:"title"`
	Layout        LayoutSnapshot `json:"layout"`
	ActivePanelID string         `json:"activePanelId"`
}

// LayoutSnapshot is the recursive tree shape: a leaf carries a panel with its
// tabs, a split carries axis, ratio, and both children. Exactly one of the
// two field groups is populated.
type LayoutSnapshot struct {
	// Split fields.
	Axis   string          `json:"axis,omitempty"`
	Ratio  float64         `json:"ratio,omitempty"`
	First  *LayoutSnapshot `json:"first,omitempty"`
	Second *LayoutSnapshot `json:"second,omitempty"`

	// Leaf fields.
	PanelID        string        `json:"panelId,omitempty"`
	Tabs           []TabSnapshot `json:"tabs,omitempty"`
	ActiveTabIndex int           `json:"activeTabIndex,omitempty"`
}

// IsLeaf reports whether the node is a leaf.
func (ls *LayoutSnapshot) IsLeaf() bool {
	return ls != nil && ls.First == nil && ls.Second == nil
}

// Tab content kinds as persisted.
const (
	TabKindTerminal = "terminal"
	TabKindView     = "view"
)

// TabSnapshot captures one tab: identity, title, and the externally reported
// working context (e.g. a working directory) plus the command used to respawn
// terminal content.
type TabSnapshot struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Kind           string `json:"kind,omitempty"`
	ContextHint    string `json:"contextHint,omitempty"`
	RestoreCommand string `json:"restoreCommand,omitempty"`
}
