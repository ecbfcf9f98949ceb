package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/autoneura/console/internal/api"
	"github.com/autoneura/console/internal/phone"
)

// Manage form single-line fields, in display and focus order.
const (
	manageFieldName = iota
	manageFieldProduct
	manageFieldAudience
	manageFieldLanguages
	manageFieldTicket
	manageFieldCompetitors
	manageFieldCTA
	manageFieldPainPoints
	manageFieldRedFlags
	manageFieldTone
	manageFieldWhatsApp
	manageFieldSalesLink

	manageFieldCount
)

// Textareas focus after the single-line fields.
const (
	manageFocusConstitution = manageFieldCount + iota
	manageFocusBlackboard

	manageFocusCount
)

// manageState is the detail/edit form for one campaign. Opening a
// campaign is a full replace: every field is rewritten from the fetched
// record, so nothing from a previously open campaign can leak through.
//
// Concurrent opens are last-response-wins. There is no request token or
// cancellation: a slow first fetch that resolves after a faster second
// one overwrites the form. That matches the behavior this console
// replaces, and the list refresh on save keeps the damage bounded.
type manageState struct {
	openID       api.ID
	title        string
	fields       [manageFieldCount]formField
	constitution textarea.Model
	blackboard   textarea.Model
	plan         Plan
	focus        int
	saving       bool
	err          string
}

// newManageState creates an empty manage form.
func newManageState() manageState {
	ms := manageState{
		plan:  Plans[0],
		focus: manageFieldName,
	}
	labels := [manageFieldCount]string{
		"Campaign name",
		"What do you sell",
		"Target audience",
		"Search languages",
		"Ticket price",
		"Main competitors",
		"Call-to-action goal",
		"Pain points",
		"Red flags",
		"Tone of voice",
		"WhatsApp number",
		"Sales link",
	}
	for i, label := range labels {
		ms.fields[i] = newField(label, "")
	}
	ms.constitution = newArea()
	ms.blackboard = newArea()
	return ms
}

// resolveCampaign returns a tea.Cmd that fetches one campaign's full
// record and wraps it in a CampaignResolvedMsg.
func resolveCampaign(resolver CampaignResolver, id api.ID) tea.Cmd {
	return func() tea.Msg {
		detail, err := resolver.GetCampaign(context.Background(), id)
		return CampaignResolvedMsg{ID: id, Detail: detail, Err: err}
	}
}

// apply populates the form from a fetched record. Every field write is
// unconditional; absent optional fields arrive as "" from the decoder and
// land as empty inputs, never as a stale previous value. The raw phone
// number is fed to the formatter on populate, per the widget contract.
func (ms manageState) apply(d api.CampaignDetail, f phone.Formatter) manageState {
	ms.openID = d.ID
	ms.title = d.Name
	ms.err = ""

	ms.fields[manageFieldName].input.SetValue(d.Name)
	ms.fields[manageFieldProduct].input.SetValue(d.ProductDescription)
	ms.fields[manageFieldAudience].input.SetValue(d.TargetAudience)
	ms.fields[manageFieldLanguages].input.SetValue(d.Languages)
	ms.fields[manageFieldTicket].input.SetValue(string(d.TicketPrice))
	ms.fields[manageFieldCompetitors].input.SetValue(d.Competitors)
	ms.fields[manageFieldCTA].input.SetValue(d.CTAGoal)
	ms.fields[manageFieldPainPoints].input.SetValue(d.PainPoints)
	ms.fields[manageFieldRedFlags].input.SetValue(d.RedFlags)
	ms.fields[manageFieldTone].input.SetValue(d.ToneOfVoice)
	ms.fields[manageFieldWhatsApp].input.SetValue(d.WhatsAppNumber)
	ms.fields[manageFieldSalesLink].input.SetValue(d.SalesLink)
	ms.constitution.SetValue(d.Constitution)
	ms.blackboard.SetValue(d.Blackboard)

	if f != nil {
		f.SetNumber(d.WhatsAppNumber)
	}

	ms.plan = PlanFor(d.DailyLimit)
	ms.focus = manageFieldName
	ms = ms.syncFocus()
	return ms
}

// payload builds the update request from the current form values, keyed
// by the campaign recorded at open time. The phone number is read back
// through the formatter; without one the raw input value is used.
func (ms manageState) payload(f phone.Formatter) api.UpdatePayload {
	number := ms.fields[manageFieldWhatsApp].input.Value()
	if f != nil {
		f.SetNumber(number)
		number = f.Number()
	}
	return api.UpdatePayload{
		ID:                 ms.openID,
		Name:               ms.fields[manageFieldName].input.Value(),
		ProductDescription: ms.fields[manageFieldProduct].input.Value(),
		TargetAudience:     ms.fields[manageFieldAudience].input.Value(),
		Languages:          ms.fields[manageFieldLanguages].input.Value(),
		TicketPrice:        ms.fields[manageFieldTicket].input.Value(),
		Competitors:        ms.fields[manageFieldCompetitors].input.Value(),
		CTAGoal:            ms.fields[manageFieldCTA].input.Value(),
		PainPoints:         ms.fields[manageFieldPainPoints].input.Value(),
		RedFlags:           ms.fields[manageFieldRedFlags].input.Value(),
		ToneOfVoice:        ms.fields[manageFieldTone].input.Value(),
		Constitution:       ms.constitution.Value(),
		Blackboard:         ms.blackboard.Value(),
		WhatsAppNumber:     number,
		SalesLink:          ms.fields[manageFieldSalesLink].input.Value(),
	}
}

// save submits the form. The saving flag is the re-entrancy guard: a
// second invocation while a request is in flight is a no-op, so rapid
// repeat keypresses issue exactly one update request.
func (ms manageState) save(writer CampaignWriter, f phone.Formatter) (manageState, tea.Cmd) {
	if ms.saving || ms.openID == "" {
		return ms, nil
	}
	ms.saving = true
	ms.err = ""
	p := ms.payload(f)
	id := ms.openID
	return ms, func() tea.Msg {
		return SaveResultMsg{ID: id, Err: writer.UpdateCampaign(context.Background(), p)}
	}
}

// handleKey processes field navigation and editing for the manage form.
// Save, back, and quit are intercepted by the root model.
func (ms manageState) handleKey(msg tea.KeyMsg) (manageState, tea.Cmd) {
	switch msg.String() {
	case "tab":
		ms.focus = (ms.focus + 1) % manageFocusCount
		return ms.syncFocus(), nil
	case "shift+tab":
		ms.focus--
		if ms.focus < 0 {
			ms.focus = manageFocusCount - 1
		}
		return ms.syncFocus(), nil
	}

	var cmd tea.Cmd
	switch {
	case ms.focus < manageFieldCount:
		ms.fields[ms.focus].input, cmd = ms.fields[ms.focus].input.Update(msg)
	case ms.focus == manageFocusConstitution:
		ms.constitution, cmd = ms.constitution.Update(msg)
	case ms.focus == manageFocusBlackboard:
		ms.blackboard, cmd = ms.blackboard.Update(msg)
	}
	return ms, cmd
}

// syncFocus focuses the widget under the focus index and blurs the rest.
func (ms manageState) syncFocus() manageState {
	for i := range ms.fields {
		if i == ms.focus {
			ms.fields[i].input.Focus()
		} else {
			ms.fields[i].input.Blur()
		}
	}
	if ms.focus == manageFocusConstitution {
		ms.constitution.Focus()
	} else {
		ms.constitution.Blur()
	}
	if ms.focus == manageFocusBlackboard {
		ms.blackboard.Focus()
	} else {
		ms.blackboard.Blur()
	}
	return ms
}

// setWidth resizes the form inputs.
func (ms manageState) setWidth(width int) manageState {
	w := width - 4
	if w < 20 {
		w = 20
	}
	for i := range ms.fields {
		ms.fields[i].input.Width = w
	}
	ms.constitution.SetWidth(w)
	ms.blackboard.SetWidth(w)
	return ms
}

// View renders the manage form.
func (ms manageState) View(width int) string {
	if ms.openID == "" {
		return "No campaign open. Select one from My Campaigns (F2)."
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Managing: %s\n", kpiValueStyle.Render(ms.title))
	b.WriteString(ms.viewPlanIndicator())
	b.WriteString("\n\n")

	for i, f := range ms.fields {
		b.WriteString(renderField(f, ms.focus == i))
		b.WriteByte('\n')
	}
	b.WriteString(renderArea("Corporate constitution", ms.constitution, ms.focus == manageFocusConstitution))
	b.WriteByte('\n')
	b.WriteString(renderArea("Context blackboard", ms.blackboard, ms.focus == manageFocusBlackboard))
	b.WriteByte('\n')

	if ms.saving {
		b.WriteString(mutedText.Render("Saving..."))
	} else {
		b.WriteString("Press ctrl+s to save changes")
	}
	if ms.err != "" {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render("Error: " + ms.err))
	}

	return b.String()
}

// viewPlanIndicator renders the three pricing tiers with the campaign's
// current tier highlighted. Read-only: the active plan is derived from
// the server's daily prospect limit.
func (ms manageState) viewPlanIndicator() string {
	parts := make([]string, 0, len(Plans))
	for _, p := range Plans {
		label := fmt.Sprintf("%s (≤%d/day)", p.Name, p.DailyLimit)
		if p.Name == ms.plan.Name {
			parts = append(parts, planActiveStyle.Render("● "+label))
		} else {
			parts = append(parts, mutedText.Render("○ "+label))
		}
	}
	return "Plan: " + strings.Join(parts, "  ")
}
