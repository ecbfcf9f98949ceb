package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autoneura/console/internal/api"
)

// CursorMarker is the prefix shown on the selected campaign row.
const CursorMarker = "▸ "

// listState manages the campaign table, cursor, and loading/error states
// for the My Campaigns section. The rows mirror the model's snapshot; a
// failed refresh keeps the previous rows on screen next to an inline
// error line rather than clearing them.
type listState struct {
	rows    []api.CampaignSummary
	cursor  int
	loading bool
	err     error
}

// newListState returns a listState in the loading state.
func newListState() listState {
	return listState{loading: true}
}

// refreshCampaigns returns a tea.Cmd that fetches the campaign list
// asynchronously and wraps the result in a CampaignListMsg.
func refreshCampaigns(lister CampaignLister) tea.Cmd {
	return func() tea.Msg {
		campaigns, err := lister.ListCampaigns(context.Background())
		return CampaignListMsg{Campaigns: campaigns, Err: err}
	}
}

// setRows replaces the table contents after a successful refresh,
// clearing the loading indicator and any stale error.
func (ls listState) setRows(rows []api.CampaignSummary) listState {
	ls.loading = false
	ls.err = nil
	ls.rows = append([]api.CampaignSummary(nil), rows...)
	if ls.cursor >= len(ls.rows) {
		ls.cursor = 0
	}
	return ls
}

// setError records a refresh failure. The previous rows stay untouched so
// the last known data remains visible.
func (ls listState) setError(err error) listState {
	ls.loading = false
	ls.err = err
	return ls
}

// handleKey processes key messages for the list section.
func (ls listState) handleKey(msg tea.KeyMsg) (listState, tea.Cmd) {
	if ls.loading {
		return ls, nil
	}

	switch msg.String() {
	case "up", "k":
		if len(ls.rows) > 0 {
			ls.cursor--
			if ls.cursor < 0 {
				ls.cursor = len(ls.rows) - 1
			}
		}
		return ls, nil

	case "down", "j":
		if len(ls.rows) > 0 {
			ls.cursor++
			if ls.cursor >= len(ls.rows) {
				ls.cursor = 0
			}
		}
		return ls, nil

	case "enter":
		if len(ls.rows) > 0 && ls.cursor < len(ls.rows) {
			selected := ls.rows[ls.cursor]
			return ls, func() tea.Msg {
				return OpenCampaignMsg{ID: selected.ID}
			}
		}
		return ls, nil

	case "r":
		ls.loading = true
		ls.err = nil
		return ls, func() tea.Msg { return RefreshCampaignsMsg{} }
	}

	return ls, nil
}

// SelectedID returns the campaign ID at the current cursor position,
// or "" if the table is empty or still loading.
func (ls listState) SelectedID() api.ID {
	if ls.loading || len(ls.rows) == 0 || ls.cursor < 0 || ls.cursor >= len(ls.rows) {
		return ""
	}
	return ls.rows[ls.cursor].ID
}

// View renders the campaign table for the given width.
// spinnerView is the current spinner frame (empty when inactive).
func (ls listState) View(width int, spinnerView string) string {
	if ls.loading {
		return fmt.Sprintf("%s Loading campaigns...", spinnerView)
	}

	var b strings.Builder

	if ls.err != nil {
		fmt.Fprintf(&b, "%s\n\n", errorStyle.Render(fmt.Sprintf("Connection error: %s — press r to retry", ls.err)))
	}

	if len(ls.rows) == 0 {
		if ls.err == nil {
			b.WriteString("No campaigns yet. Create the first one! (F1)")
		}
		return b.String()
	}

	nameWidth := ls.nameColumnWidth(width)
	fmt.Fprintf(&b, "  %-*s  %-10s  %-9s  %9s  %6s",
		nameWidth, "CAMPAIGN", "CREATED", "STATUS", "PROSPECTS", "LEADS")

	for i, row := range ls.rows {
		b.WriteByte('\n')
		if i == ls.cursor {
			b.WriteString(CursorMarker)
		} else {
			b.WriteString("  ")
		}

		created := row.CreatedAt
		if created == "" {
			created = "-"
		}
		fmt.Fprintf(&b, "%-*s  %-10s  %s  %9d  %6d",
			nameWidth, truncate(row.Name, nameWidth), created, statusLabel(row.Status), row.Prospects, row.Leads)
	}

	return b.String()
}

// nameColumnWidth sizes the campaign name column to the remaining width.
func (ls listState) nameColumnWidth(width int) int {
	w := width - 45
	if w < 12 {
		w = 12
	}
	if w > 40 {
		w = 40
	}
	return w
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
