package dashboard

import (
	"strings"
	"testing"
)

func TestListState_SetRowsClearsErrorAndLoading(t *testing.T) {
	// Given: a list mid-refresh with a stale error
	ls := newListState()
	ls.err = errBackendDown

	// When: rows arrive
	ls = ls.setRows(sampleCampaigns())

	// Then: the list is settled
	if ls.loading {
		t.Error("loading should be cleared")
	}
	if ls.err != nil {
		t.Errorf("err = %v, want nil", ls.err)
	}
	if len(ls.rows) != 2 {
		t.Errorf("rows = %d, want 2", len(ls.rows))
	}
}

func TestListState_SetErrorKeepsRows(t *testing.T) {
	// Given: a populated list
	ls := newListState().setRows(sampleCampaigns())

	// When: a refresh fails
	ls = ls.setError(errBackendDown)

	// Then: the previous rows remain visible next to the error
	if len(ls.rows) != 2 {
		t.Errorf("rows = %d, want previous 2 preserved", len(ls.rows))
	}
	view := stripANSI(ls.View(100, ""))
	if !strings.Contains(view, "Connection error") {
		t.Errorf("view missing error line:\n%s", view)
	}
	if !strings.Contains(view, "Spring Push") {
		t.Errorf("view missing stale rows:\n%s", view)
	}
}

func TestListState_CursorWraps(t *testing.T) {
	ls := newListState().setRows(sampleCampaigns())

	// Down from the last row wraps to the first.
	ls.cursor = 1
	ls, _ = ls.handleKey(keyMsg("down"))
	if ls.cursor != 0 {
		t.Errorf("cursor = %d, want wrap to 0", ls.cursor)
	}

	// Up from the first row wraps to the last.
	ls, _ = ls.handleKey(keyMsg("up"))
	if ls.cursor != 1 {
		t.Errorf("cursor = %d, want wrap to 1", ls.cursor)
	}
}

func TestListState_EnterOpensSelected(t *testing.T) {
	ls := newListState().setRows(sampleCampaigns())
	ls.cursor = 1

	_, cmd := ls.handleKey(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter should produce a command")
	}
	open, ok := cmd().(OpenCampaignMsg)
	if !ok {
		t.Fatalf("msg = %T, want OpenCampaignMsg", cmd())
	}
	if open.ID != "c2" {
		t.Errorf("opened id = %q, want c2", open.ID)
	}
}

func TestListState_EnterOnEmptyListIsNoop(t *testing.T) {
	ls := newListState().setRows(nil)

	ls, cmd := ls.handleKey(keyMsg("enter"))
	if cmd != nil {
		t.Error("enter on empty list should not produce a command")
	}
	if ls.SelectedID() != "" {
		t.Errorf("SelectedID() = %q, want empty", ls.SelectedID())
	}
}

func TestListState_RefreshKey(t *testing.T) {
	ls := newListState().setRows(sampleCampaigns())
	ls.err = errBackendDown

	ls, cmd := ls.handleKey(keyMsg("r"))
	if !ls.loading {
		t.Error("r should re-enter loading state")
	}
	if ls.err != nil {
		t.Error("r should clear the error before retrying")
	}
	if cmd == nil {
		t.Fatal("r should produce a command")
	}
	if _, ok := cmd().(RefreshCampaignsMsg); !ok {
		t.Errorf("msg = %T, want RefreshCampaignsMsg", cmd())
	}
}

func TestListState_KeysIgnoredWhileLoading(t *testing.T) {
	ls := newListState()

	ls, cmd := ls.handleKey(keyMsg("enter"))
	if cmd != nil {
		t.Error("keys should be ignored while loading")
	}
	if !ls.loading {
		t.Error("loading state should be unchanged")
	}
}

func TestListState_ViewEmptyCopy(t *testing.T) {
	ls := newListState().setRows(nil)

	view := stripANSI(ls.View(100, ""))
	if !strings.Contains(view, "No campaigns yet. Create the first one! (F1)") {
		t.Errorf("view = %q, want the empty-state copy", view)
	}
}

func TestListState_ViewMarksCursorRow(t *testing.T) {
	ls := newListState().setRows(sampleCampaigns())
	ls.cursor = 1

	for _, line := range strings.Split(stripANSI(ls.View(100, "")), "\n") {
		if strings.Contains(line, "Summer Blast") && !strings.HasPrefix(line, CursorMarker) {
			t.Errorf("selected row not marked: %q", line)
		}
		if strings.Contains(line, "Spring Push") && strings.HasPrefix(line, CursorMarker) {
			t.Errorf("unselected row marked: %q", line)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("a very long campaign name", 10); got != "a very lo…" {
		t.Errorf("truncate(long) = %q", got)
	}
}

func TestListState_SetRowsCopiesInput(t *testing.T) {
	// Mutating the caller's slice after setRows must not reach the list.
	rows := sampleCampaigns()
	ls := newListState().setRows(rows)

	rows[0].Name = "mutated"
	if ls.rows[0].Name != "Spring Push" {
		t.Error("setRows should copy the input slice")
	}
}
