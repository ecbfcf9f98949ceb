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

// Create form single-line fields, in display and focus order.
const (
	createFieldName = iota
	createFieldSells
	createFieldAudience
	createFieldLanguages
	createFieldLocation
	createFieldTicket
	createFieldCTA
	createFieldCompetitors
	createFieldPainPoints
	createFieldRedFlags
	createFieldTone
	createFieldWhatsApp
	createFieldSalesLink

	createFieldCount
)

// Non-input focus stops after the single-line fields.
const (
	createFocusConstitution = createFieldCount + iota
	createFocusBlackboard
	createFocusProductType
	createFocusPlan

	createFocusCount
)

// Product types offered on the questionnaire.
var productTypes = []string{"digital", "physical"}

// createState is the campaign creation questionnaire: the full strategy
// form plus product type and plan selection. Launching requires a chosen
// plan; the launch button disables itself while the request is in flight.
type createState struct {
	fields       [createFieldCount]formField
	constitution textarea.Model
	blackboard   textarea.Model
	productType  int
	planIdx      int // -1 until the user picks a plan card.
	focus        int
	launching    bool
	err          string
}

// newCreateState creates an empty questionnaire with no plan selected.
func newCreateState() createState {
	cs := createState{planIdx: -1}
	labels := [createFieldCount]string{
		"Campaign name",
		"What do you sell",
		"Target audience",
		"Search languages",
		"Geographic location",
		"Ticket price",
		"Call-to-action goal",
		"Main competitors",
		"Pain points",
		"Red flags",
		"Tone of voice",
		"WhatsApp number",
		"Sales link",
	}
	placeholders := [createFieldCount]string{
		"Spring outreach",
		"Consulting, SaaS, courses...",
		"Who should we look for?",
		"es, en",
		"LATAM, US...",
		"500",
		"Book a call",
		"",
		"",
		"",
		"Professional",
		"+1 415 555 0100",
		"https://...",
	}
	for i := range labels {
		cs.fields[i] = newField(labels[i], placeholders[i])
	}
	cs.constitution = newArea()
	cs.blackboard = newArea()
	cs = cs.syncFocus()
	return cs
}

// payload builds the creation request from the current form values. The
// phone number is read back through the formatter; without one the raw
// input value is used.
func (cs createState) payload(f phone.Formatter) api.CreatePayload {
	number := cs.fields[createFieldWhatsApp].input.Value()
	if f != nil {
		f.SetNumber(number)
		number = f.Number()
	}
	return api.CreatePayload{
		Name:           cs.fields[createFieldName].input.Value(),
		Sells:          cs.fields[createFieldSells].input.Value(),
		Audience:       cs.fields[createFieldAudience].input.Value(),
		Languages:      cs.fields[createFieldLanguages].input.Value(),
		Location:       cs.fields[createFieldLocation].input.Value(),
		TicketPrice:    cs.fields[createFieldTicket].input.Value(),
		CTAGoal:        cs.fields[createFieldCTA].input.Value(),
		Competitors:    cs.fields[createFieldCompetitors].input.Value(),
		PainPoints:     cs.fields[createFieldPainPoints].input.Value(),
		RedFlags:       cs.fields[createFieldRedFlags].input.Value(),
		ToneOfVoice:    cs.fields[createFieldTone].input.Value(),
		Constitution:   cs.constitution.Value(),
		Blackboard:     cs.blackboard.Value(),
		ProductType:    productTypes[cs.productType],
		WhatsAppNumber: number,
		SalesLink:      cs.fields[createFieldSalesLink].input.Value(),
	}
}

// launch submits the questionnaire. A plan and a name are required;
// the launching flag makes repeat invocations no-ops while the request
// is in flight.
func (cs createState) launch(writer CampaignWriter, f phone.Formatter) (createState, tea.Cmd) {
	if cs.launching {
		return cs, nil
	}
	if cs.planIdx < 0 {
		cs.err = "Select a plan first."
		return cs, nil
	}
	if strings.TrimSpace(cs.fields[createFieldName].input.Value()) == "" {
		cs.err = "Campaign name is required."
		return cs, nil
	}
	cs.launching = true
	cs.err = ""
	p := cs.payload(f)
	return cs, func() tea.Msg {
		return CreateResultMsg{Err: writer.CreateCampaign(context.Background(), p)}
	}
}

// handleKey processes field navigation, editing, and selection for the
// create form. Launch and quit are intercepted by the root model.
func (cs createState) handleKey(msg tea.KeyMsg) (createState, tea.Cmd) {
	switch msg.String() {
	case "tab":
		cs.focus = (cs.focus + 1) % createFocusCount
		return cs.syncFocus(), nil
	case "shift+tab":
		cs.focus--
		if cs.focus < 0 {
			cs.focus = createFocusCount - 1
		}
		return cs.syncFocus(), nil
	case "left", "right":
		switch cs.focus {
		case createFocusProductType:
			cs.productType = (cs.productType + 1) % len(productTypes)
			return cs, nil
		case createFocusPlan:
			if msg.String() == "right" {
				cs.planIdx = (cs.planIdx + 1 + len(Plans)) % len(Plans)
			} else {
				if cs.planIdx < 0 {
					cs.planIdx = 0
				}
				cs.planIdx = (cs.planIdx - 1 + len(Plans)) % len(Plans)
			}
			cs.err = ""
			return cs, nil
		}
	}

	var cmd tea.Cmd
	switch {
	case cs.focus < createFieldCount:
		cs.fields[cs.focus].input, cmd = cs.fields[cs.focus].input.Update(msg)
	case cs.focus == createFocusConstitution:
		cs.constitution, cmd = cs.constitution.Update(msg)
	case cs.focus == createFocusBlackboard:
		cs.blackboard, cmd = cs.blackboard.Update(msg)
	}
	return cs, cmd
}

// syncFocus focuses the widget under the focus index and blurs the rest.
func (cs createState) syncFocus() createState {
	for i := range cs.fields {
		if i == cs.focus {
			cs.fields[i].input.Focus()
		} else {
			cs.fields[i].input.Blur()
		}
	}
	if cs.focus == createFocusConstitution {
		cs.constitution.Focus()
	} else {
		cs.constitution.Blur()
	}
	if cs.focus == createFocusBlackboard {
		cs.blackboard.Focus()
	} else {
		cs.blackboard.Blur()
	}
	return cs
}

// setWidth resizes the form inputs.
func (cs createState) setWidth(width int) createState {
	w := width - 4
	if w < 20 {
		w = 20
	}
	for i := range cs.fields {
		cs.fields[i].input.Width = w
	}
	cs.constitution.SetWidth(w)
	cs.blackboard.SetWidth(w)
	return cs
}

// View renders the create questionnaire.
func (cs createState) View(width int) string {
	var b strings.Builder

	b.WriteString("Launch a new campaign\n\n")

	for i, f := range cs.fields {
		b.WriteString(renderField(f, cs.focus == i))
		b.WriteByte('\n')
	}
	b.WriteString(renderArea("Corporate constitution", cs.constitution, cs.focus == createFocusConstitution))
	b.WriteByte('\n')
	b.WriteString(renderArea("Context blackboard", cs.blackboard, cs.focus == createFocusBlackboard))
	b.WriteByte('\n')

	b.WriteString(cs.viewProductType())
	b.WriteByte('\n')
	b.WriteString(cs.viewPlans())
	b.WriteString("\n\n")
	b.WriteString(cs.viewSummary())
	b.WriteByte('\n')

	if cs.launching {
		b.WriteString(mutedText.Render("Launching..."))
	} else {
		b.WriteString("Press ctrl+s to launch the campaign")
	}
	if cs.err != "" {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render("Error: " + cs.err))
	}

	return b.String()
}

// viewProductType renders the digital/physical selector.
func (cs createState) viewProductType() string {
	label := fieldLabelStyle.Render("Product type")
	if cs.focus == createFocusProductType {
		label = focusedLabelStyle.Render("Product type")
	}
	parts := make([]string, 0, len(productTypes))
	for i, pt := range productTypes {
		if i == cs.productType {
			parts = append(parts, planActiveStyle.Render("● "+pt))
		} else {
			parts = append(parts, mutedText.Render("○ "+pt))
		}
	}
	return label + "\n  " + strings.Join(parts, "  ")
}

// viewPlans renders the plan cards.
func (cs createState) viewPlans() string {
	label := fieldLabelStyle.Render("Plan")
	if cs.focus == createFocusPlan {
		label = focusedLabelStyle.Render("Plan")
	}
	parts := make([]string, 0, len(Plans))
	for i, p := range Plans {
		card := fmt.Sprintf("%s $%d (%d/day)", p.Name, p.Price, p.DailyLimit)
		if i == cs.planIdx {
			parts = append(parts, planActiveStyle.Render("● "+card))
		} else {
			parts = append(parts, mutedText.Render("○ "+card))
		}
	}
	return label + "\n  " + strings.Join(parts, "  ")
}

// viewSummary renders the order summary box driven by the selected plan.
func (cs createState) viewSummary() string {
	if cs.planIdx < 0 {
		return mutedText.Render("No plan selected")
	}
	p := Plans[cs.planIdx]
	return fmt.Sprintf("Summary: %s — %d prospects/day — %s/month",
		p.Name, p.DailyLimit, kpiValueStyle.Render(fmt.Sprintf("$%d.00", p.Price)))
}
