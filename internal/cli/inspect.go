package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vimo-ai/eterm/internal/session"
	"github.com/vimo-ai/eterm/internal/userpath"
)

const (
	titleWidth = 32
	pathWidth  = 48
)

// padCell pads or truncates a cell to the given display width, accounting
// for wide runes in titles and paths.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	w := runewidth.StringWidth(text)
	if w == width {
		return text
	}
	if w < width {
		return text + strings.Repeat(" ", width-w)
	}
	return runewidth.Truncate(text, width, "…")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeInspect(deps Dependencies, store *session.Store, snap *session.Snapshot) error {
	out := deps.Stdout
	fmt.Fprintf(out, "snapshot: %s\n", userpath.ShortenUser(store.Path()))
	if snap.Empty() {
		fmt.Fprintln(out, "no saved windows")
		return nil
	}
	if !snap.CapturedAt.IsZero() {
		fmt.Fprintf(out, "captured: %s\n", snap.CapturedAt.Local().Format("2006-01-02 15:04:05"))
	}
	for i, win := range snap.Windows {
		fmt.Fprintf(out, "window %d  %gx%g at (%g,%g)", i+1, win.Frame.W, win.Frame.H, win.Frame.X, win.Frame.Y)
		if win.ScreenID != "" {
			fmt.Fprintf(out, "  screen %s", win.ScreenID)
		}
		fmt.Fprintln(out)
		for j := range win.Pages {
			page := &win.Pages[j]
			marker := " "
			if j == win.ActivePageIndex {
				marker = "*"
			}
			fmt.Fprintf(out, "  page %s %s\n", marker, padCell(page.Title, titleWidth))
			writeLayout(deps, &page.Layout, page.ActivePanelID, "    ")
		}
	}
	return nil
}

func writeLayout(deps Dependencies, node *session.LayoutSnapshot, activePanel, indent string) {
	if node == nil {
		return
	}
	if !node.IsLeaf() {
		fmt.Fprintf(deps.Stdout, "%s%s split %.2f\n", indent, node.Axis, node.Ratio)
		writeLayout(deps, node.First, activePanel, indent+"  ")
		writeLayout(deps, node.Second, activePanel, indent+"  ")
		return
	}
	marker := " "
	if node.PanelID == activePanel {
		marker = "*"
	}
	titles := make([]string, 0, len(node.Tabs))
	for k, tab := range node.Tabs {
		title := tab.Title
		if title == "" {
			title = "(untitled)"
		}
		if k == node.ActiveTabIndex {
			title += "*"
		}
		titles = append(titles, title)
	}
	line := fmt.Sprintf("panel %s %s tabs: %s", marker, shortID(node.PanelID), strings.Join(titles, ", "))
	fmt.Fprintf(deps.Stdout, "%s%s\n", indent, runewidth.Truncate(line, 100, "…"))
}

func writeBackups(deps Dependencies, store *session.Store) error {
	out := deps.Stdout
	backups := store.Backups()
	if len(backups) == 0 {
		fmt.Fprintln(out, "no backups")
		return nil
	}
	for _, path := range backups {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(out, "%s  (stat: %v)\n", padCell(userpath.ShortenUser(path), pathWidth), err)
			continue
		}
		fmt.Fprintf(out, "%s  %8d bytes  %s\n",
			padCell(userpath.ShortenUser(path), pathWidth),
			info.Size(),
			info.ModTime().Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
