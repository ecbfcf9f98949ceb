package dashboard

import (
	"testing"

	"github.com/autoneura/console/internal/api"
)

// stubFormatter records what the forms feed it and answers with a fixed
// normalized number.
type stubFormatter struct {
	set []string
	out string
}

func (f *stubFormatter) SetNumber(raw string) { f.set = append(f.set, raw) }
func (f *stubFormatter) Number() string       { return f.out }

func sampleDetail() api.CampaignDetail {
	return api.CampaignDetail{
		ID:                 "c1",
		Name:               "Spring Push",
		ProductDescription: "CRM seats",
		TargetAudience:     "SMB founders",
		Languages:          "en, es",
		TicketPrice:        "149.5",
		Competitors:        "BigCRM",
		CTAGoal:            "Book a call",
		PainPoints:         "Manual follow-up",
		ToneOfVoice:        "Professional",
		RedFlags:           "No budget",
		Constitution:       "Always polite.",
		Blackboard:         "Q2 focus.",
		DailyLimit:         15,
		WhatsAppNumber:     "+14155552671",
		SalesLink:          "https://example.com/buy",
	}
}

func TestManageState_ApplyPopulatesEveryField(t *testing.T) {
	// Given: an empty form and a fetched record
	ms := newManageState()
	f := &stubFormatter{}

	// When: the record is applied
	ms = ms.apply(sampleDetail(), f)

	// Then: identity, title, and plan derive from the record
	if ms.openID != "c1" {
		t.Errorf("openID = %q, want c1", ms.openID)
	}
	if ms.title != "Spring Push" {
		t.Errorf("title = %q", ms.title)
	}
	if ms.plan.Name != "Professional" {
		t.Errorf("plan = %s, want Professional for limit 15", ms.plan.Name)
	}

	// And: the inputs hold the record's values
	checks := map[int]string{
		manageFieldName:        "Spring Push",
		manageFieldProduct:     "CRM seats",
		manageFieldAudience:    "SMB founders",
		manageFieldLanguages:   "en, es",
		manageFieldTicket:      "149.5",
		manageFieldCompetitors: "BigCRM",
		manageFieldCTA:         "Book a call",
		manageFieldPainPoints:  "Manual follow-up",
		manageFieldRedFlags:    "No budget",
		manageFieldTone:        "Professional",
		manageFieldWhatsApp:    "+14155552671",
		manageFieldSalesLink:   "https://example.com/buy",
	}
	for field, want := range checks {
		if got := ms.fields[field].input.Value(); got != want {
			t.Errorf("field %d = %q, want %q", field, got, want)
		}
	}
	if ms.constitution.Value() != "Always polite." {
		t.Errorf("constitution = %q", ms.constitution.Value())
	}
	if ms.blackboard.Value() != "Q2 focus." {
		t.Errorf("blackboard = %q", ms.blackboard.Value())
	}

	// And: the raw server number was fed to the phone widget
	if len(f.set) != 1 || f.set[0] != "+14155552671" {
		t.Errorf("formatter fed %v, want the raw server number once", f.set)
	}
}

func TestManageState_ApplyOverwritesPreviousCampaign(t *testing.T) {
	// Given: a form already holding one campaign
	ms := newManageState().apply(sampleDetail(), nil)

	// When: a sparser record is applied on top
	second := api.CampaignDetail{ID: "c2", Name: "Bare", DailyLimit: 2}
	ms = ms.apply(second, nil)

	// Then: nothing from the first campaign leaks through
	if ms.openID != "c2" || ms.title != "Bare" {
		t.Errorf("identity = %q/%q, want c2/Bare", ms.openID, ms.title)
	}
	if got := ms.fields[manageFieldProduct].input.Value(); got != "" {
		t.Errorf("product = %q, want cleared", got)
	}
	if got := ms.constitution.Value(); got != "" {
		t.Errorf("constitution = %q, want cleared", got)
	}
	if ms.plan.Name != "Starter" {
		t.Errorf("plan = %s, want Starter for limit 2", ms.plan.Name)
	}
}

func TestManageState_PayloadReadsFormThroughFormatter(t *testing.T) {
	// Given: a populated form where the user retyped the phone number
	ms := newManageState().apply(sampleDetail(), nil)
	ms.fields[manageFieldWhatsApp].input.SetValue("415 555 2671")
	f := &stubFormatter{out: "+14155552671"}

	// When: the payload is built
	p := ms.payload(f)

	// Then: the number went raw-in, normalized-out
	if len(f.set) == 0 || f.set[len(f.set)-1] != "415 555 2671" {
		t.Errorf("formatter fed %v, want the typed value", f.set)
	}
	if p.WhatsAppNumber != "+14155552671" {
		t.Errorf("payload number = %q, want normalized", p.WhatsAppNumber)
	}
	if p.ID != "c1" || p.Name != "Spring Push" || p.TicketPrice != "149.5" {
		t.Errorf("payload = %+v", p)
	}
	if p.Constitution != "Always polite." || p.Blackboard != "Q2 focus." {
		t.Errorf("textareas = %q/%q", p.Constitution, p.Blackboard)
	}
}

func TestManageState_PayloadWithoutFormatterUsesRawValue(t *testing.T) {
	ms := newManageState().apply(sampleDetail(), nil)
	ms.fields[manageFieldWhatsApp].input.SetValue("415 555 2671")

	p := ms.payload(nil)
	if p.WhatsAppNumber != "415 555 2671" {
		t.Errorf("payload number = %q, want the raw value", p.WhatsAppNumber)
	}
}

func TestManageState_SaveIssuesOneRequest(t *testing.T) {
	// Given: a populated form
	ms := newManageState().apply(sampleDetail(), nil)
	w := &stubWriter{}

	// When: save is invoked twice in quick succession
	ms, cmd1 := ms.save(w, nil)
	ms, cmd2 := ms.save(w, nil)

	// Then: only the first invocation produced a request
	if cmd1 == nil {
		t.Fatal("first save should produce a command")
	}
	if cmd2 != nil {
		t.Error("second save while in flight should be a no-op")
	}
	if !ms.saving {
		t.Error("saving flag should be set")
	}

	res, ok := cmd1().(SaveResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want SaveResultMsg", cmd1())
	}
	if res.ID != "c1" || res.Err != nil {
		t.Errorf("result = %+v", res)
	}
	if len(w.updates) != 1 {
		t.Errorf("writer got %d updates, want exactly 1", len(w.updates))
	}
}

func TestManageState_SaveWithoutOpenCampaignIsNoop(t *testing.T) {
	ms := newManageState()
	w := &stubWriter{}

	_, cmd := ms.save(w, nil)
	if cmd != nil {
		t.Error("save with no open campaign should not produce a command")
	}
}

func TestManageState_TabCyclesFocus(t *testing.T) {
	ms := newManageState().apply(sampleDetail(), nil)

	// Tab walks every field and both textareas, then wraps.
	for i := 0; i < manageFocusCount; i++ {
		ms, _ = ms.handleKey(keyMsg("tab"))
	}
	if ms.focus != manageFieldName {
		t.Errorf("focus = %d after full cycle, want %d", ms.focus, manageFieldName)
	}

	ms, _ = ms.handleKey(keyMsg("shift+tab"))
	if ms.focus != manageFocusBlackboard {
		t.Errorf("focus = %d after shift+tab from start, want the blackboard", ms.focus)
	}
}
