package dashboard

import (
	"context"
	"errors"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autoneura/console/internal/api"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes color escape sequences so tests assert on plain text.
func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// collectMsgs executes a tea.Cmd synchronously, flattening batches, and
// returns every message produced.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// findListMsg returns the first campaign list message in msgs.
func findListMsg(msgs []tea.Msg) (CampaignListMsg, bool) {
	for _, m := range msgs {
		if lm, ok := m.(CampaignListMsg); ok {
			return lm, true
		}
	}
	return CampaignListMsg{}, false
}

// --- Backend stubs ---

type stubLister struct {
	campaigns []api.CampaignSummary
	err       error
	calls     int
}

func (s *stubLister) ListCampaigns(ctx context.Context) ([]api.CampaignSummary, error) {
	s.calls++
	return s.campaigns, s.err
}

type stubResolver struct {
	detail api.CampaignDetail
	err    error
}

func (s *stubResolver) GetCampaign(ctx context.Context, id api.ID) (api.CampaignDetail, error) {
	if s.err != nil {
		return api.CampaignDetail{}, s.err
	}
	d := s.detail
	d.ID = id
	return d, nil
}

type stubWriter struct {
	createErr error
	updateErr error
	creates   []api.CreatePayload
	updates   []api.UpdatePayload
}

func (s *stubWriter) CreateCampaign(ctx context.Context, p api.CreatePayload) error {
	s.creates = append(s.creates, p)
	return s.createErr
}

func (s *stubWriter) UpdateCampaign(ctx context.Context, p api.UpdatePayload) error {
	s.updates = append(s.updates, p)
	return s.updateErr
}

type stubChatter struct {
	reply string
	err   error
	paths []string
	sent  []string
}

func (s *stubChatter) Chat(ctx context.Context, path, message string) (string, error) {
	s.paths = append(s.paths, path)
	s.sent = append(s.sent, message)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// newTestModel builds a model over the given stubs (nil fields get fresh
// stubs) and plays the initial refresh through it so the snapshot and
// stage are settled.
func newTestModel(t *testing.T, deps Deps) Model {
	t.Helper()
	if deps.Lister == nil {
		deps.Lister = &stubLister{}
	}
	if deps.Resolver == nil {
		deps.Resolver = &stubResolver{}
	}
	if deps.Writer == nil {
		deps.Writer = &stubWriter{}
	}
	if deps.Chatter == nil {
		deps.Chatter = &stubChatter{}
	}
	m := NewModel(deps)
	m = m.resize(tea.WindowSizeMsg{Width: 100, Height: 40})

	msgs := collectMsgs(m.Init())
	lm, ok := findListMsg(msgs)
	if !ok {
		t.Fatal("Init() did not produce a campaign list message")
	}
	next, _ := m.Update(lm)
	return next.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "f3":
		return tea.KeyMsg{Type: tea.KeyF3}
	case "f4":
		return tea.KeyMsg{Type: tea.KeyF4}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

var errBackendDown = errors.New("connection refused")

func sampleCampaigns() []api.CampaignSummary {
	return []api.CampaignSummary{
		{ID: "c1", Name: "Spring Push", Status: api.StatusActive, CreatedAt: "2026-03-01", Prospects: 25, Leads: 4},
		{ID: "c2", Name: "Summer Blast", Status: api.StatusPaused, CreatedAt: "2026-06-01", Prospects: 15, Leads: 6},
	}
}
