package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/autoneura/console/internal/api"
	"github.com/autoneura/console/internal/lifecycle"
	"github.com/autoneura/console/internal/metrics"
	"github.com/autoneura/console/internal/phone"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// tabBarHeight is the number of lines consumed by the section tab bar.
const tabBarHeight = 2

// borderChrome is the number of lines consumed by top + bottom borders.
const borderChrome = 2

// Deps are the external collaborators the dashboard talks to. A single
// *api.Client satisfies all four interfaces; tests substitute stubs.
type Deps struct {
	Lister   CampaignLister
	Resolver CampaignResolver
	Writer   CampaignWriter
	Chatter  ChatSender
	Phone    phone.Formatter
}

// Model is the root Bubble Tea model for the campaign console. It owns
// the one piece of ambient UI state — which section is visible — plus the
// campaign snapshot and everything derived from it (KPIs, lifecycle
// stage). All snapshot mutation flows through the list refresh; the rest
// of the model only reads it.
type Model struct {
	section Section
	width   int
	height  int

	snapshot []api.CampaignSummary
	kpis     metrics.KPIs
	stage    lifecycle.Stage

	lister   CampaignLister
	resolver CampaignResolver
	writer   CampaignWriter
	chatter  ChatSender
	phone    phone.Formatter

	list   listState
	create createState
	manage manageState
	chat   chatState

	spinner spinner.Model
	help    help.Model
}

// NewModel creates the console model. It opens on the campaign list; the
// first refresh decides whether the user stays there or is moved to the
// creation section.
func NewModel(deps Deps) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{
		section:  SectionCampaigns,
		stage:    lifecycle.StageEstablished,
		lister:   deps.Lister,
		resolver: deps.Resolver,
		writer:   deps.Writer,
		chatter:  deps.Chatter,
		phone:    deps.Phone,
		list:     newListState(),
		create:   newCreateState(),
		manage:   newManageState(),
		chat:     newChatState(),
		spinner:  sp,
		help:     help.New(),
	}
}

// Init triggers the initial campaign refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCampaigns(m.lister), m.spinner.Tick, textinput.Blink)
}

// Update handles incoming messages with section-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.busy() {
			return m, cmd
		}
		return m, nil

	case CampaignListMsg:
		return m.applyCampaignList(msg)

	case RefreshCampaignsMsg:
		m.list.loading = true
		m.list.err = nil
		return m, tea.Batch(refreshCampaigns(m.lister), m.spinner.Tick)

	case OpenCampaignMsg:
		return m, resolveCampaign(m.resolver, msg.ID)

	case CampaignResolvedMsg:
		return m.applyCampaignResolved(msg)

	case SaveResultMsg:
		m.manage.saving = false
		if msg.Err != nil {
			// The form stays populated and editable; nothing typed is lost.
			m.manage.err = msg.Err.Error()
			return m, nil
		}
		return m.switchSection(SectionCampaigns)

	case CreateResultMsg:
		m.create.launching = false
		if msg.Err != nil {
			m.create.err = msg.Err.Error()
			return m, nil
		}
		// Jump straight to the list even if it is still gated: the refresh
		// about to land will reclassify the user as established.
		m.section = SectionCampaigns
		m.list.loading = true
		m.list.err = nil
		return m, tea.Batch(refreshCampaigns(m.lister), m.spinner.Tick)

	case ChatReplyMsg:
		m.chat = m.chat.applyReply(msg)
		return m, nil
	}

	return m, nil
}

// handleKey processes key messages with global and section-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		return m.switchSection(SectionCreate)
	case "f2":
		return m.switchSection(SectionCampaigns)
	case "f3":
		return m.switchSection(SectionManage)
	case "f4":
		return m.switchSection(SectionChat)
	}

	var cmd tea.Cmd
	switch m.section {
	case SectionCampaigns:
		if msg.String() == "q" {
			return m, tea.Quit
		}
		m.list, cmd = m.list.handleKey(msg)

	case SectionManage:
		switch msg.String() {
		case "esc":
			return m.switchSection(SectionCampaigns)
		case "ctrl+s":
			m.manage, cmd = m.manage.save(m.writer, m.phone)
			return m, cmd
		}
		m.manage, cmd = m.manage.handleKey(msg)

	case SectionCreate:
		if msg.String() == "ctrl+s" {
			m.create, cmd = m.create.launch(m.writer, m.phone)
			return m, cmd
		}
		m.create, cmd = m.create.handleKey(msg)

	case SectionChat:
		if msg.String() == "enter" {
			return m.sendChat()
		}
		m.chat, cmd = m.chat.handleKey(msg)
	}

	return m, cmd
}

// switchSection makes the requested section the single visible one.
// Requests for a section that is not currently available — an advanced
// section while the user has no campaigns, or the manage form with no
// campaign open — are no-ops rather than errors. Entering the campaign
// list always refetches, so re-entry never shows stale data.
func (m Model) switchSection(s Section) (Model, tea.Cmd) {
	if !m.sectionAvailable(s) {
		return m, nil
	}
	m.section = s
	if s == SectionCampaigns {
		m.list.loading = true
		m.list.err = nil
		return m, tea.Batch(refreshCampaigns(m.lister), m.spinner.Tick)
	}
	if s == SectionChat {
		m.chat.input.Focus()
	} else {
		m.chat.input.Blur()
	}
	return m, nil
}

// sectionAvailable reports whether a section can be shown right now.
func (m Model) sectionAvailable(s Section) bool {
	if s < 0 || s >= sectionCount {
		return false
	}
	if s.advanced() && !m.stage.AdvancedVisible() {
		return false
	}
	if s == SectionManage && m.manage.openID == "" {
		return false
	}
	return true
}

// applyCampaignList folds a refresh result into the model. On failure the
// previous snapshot, KPIs, and stage stay exactly as they were; only an
// inline error line appears. On success the snapshot is replaced in full
// and everything derived from it is recomputed.
func (m Model) applyCampaignList(msg CampaignListMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.list = m.list.setError(msg.Err)
		return m, nil
	}

	m.snapshot = append([]api.CampaignSummary(nil), msg.Campaigns...)
	m.list = m.list.setRows(m.snapshot)
	m.kpis = metrics.Aggregate(m.snapshot)
	m.stage = lifecycle.Classify(m.snapshot)

	if m.stage == lifecycle.StageNew {
		m.chat = m.chat.setSalesGreeting()
		// Never leave the user stranded on a section that just became
		// hidden: force them to the creation flow.
		if m.section.advanced() {
			m.section = SectionCreate
		}
	}
	return m, nil
}

// applyCampaignResolved populates the manage form from a fetched record
// and shows it. Resolutions apply unconditionally in arrival order, so
// when two opens race, the last response wins.
func (m Model) applyCampaignResolved(msg CampaignResolvedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.list = m.list.setError(msg.Err)
		return m, nil
	}
	m.manage = m.manage.apply(msg.Detail, m.phone)
	return m.switchSection(SectionManage)
}

// sendChat posts the typed message to whichever assistant the current
// stage selects. The stage is re-read on every send: a refresh that
// changed it redirects this message, mid-conversation or not.
func (m Model) sendChat() (Model, tea.Cmd) {
	var (
		text string
		idx  int
	)
	m.chat, text, idx = m.chat.send()
	if idx < 0 {
		return m, nil
	}
	return m, sendChat(m.chatter, m.stage.ChatPath(), text, idx)
}

// busy reports whether any async work warrants spinner animation.
func (m Model) busy() bool {
	return m.list.loading || m.manage.saving || m.create.launching
}

// resize propagates the window size to every section.
func (m Model) resize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width

	contentWidth := msg.Width - borderChrome
	if contentWidth < 0 {
		contentWidth = 0
	}
	m.create = m.create.setWidth(contentWidth)
	m.manage = m.manage.setWidth(contentWidth)
	m.chat = m.chat.setSize(contentWidth, m.contentHeight())
	return m
}

// contentHeight returns the usable height for section content,
// accounting for the tab bar, border chrome, and the help bar.
func (m Model) contentHeight() int {
	h := m.height - tabBarHeight - borderChrome - helpBarHeight
	if h < 1 {
		return 1
	}
	return h
}

// View renders the tab bar, the single visible section, and the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	frame := FrameBorder().
		Width(m.width - borderChrome).
		Height(m.contentHeight())

	content := frame.Render(m.viewSection())
	helpView := m.help.View(m.helpBindings())

	return lipgloss.JoinVertical(lipgloss.Left, m.viewTabBar(), content, helpView)
}

// viewSection renders the active section's content.
func (m Model) viewSection() string {
	width := m.width - borderChrome
	switch m.section {
	case SectionCreate:
		return m.create.View(width)
	case SectionCampaigns:
		return m.viewCampaigns(width)
	case SectionManage:
		return m.manage.View(width)
	case SectionChat:
		return m.chat.View()
	default:
		return ""
	}
}

// viewCampaigns renders the KPI header over the campaign table.
func (m Model) viewCampaigns(width int) string {
	kpiLine := "Prospects " + kpiValueStyle.Render(strconv.Itoa(m.kpis.Prospects)) +
		"   Leads " + kpiValueStyle.Render(strconv.Itoa(m.kpis.Leads)) +
		"   Conversion " + kpiValueStyle.Render(m.kpis.FormatRate())
	return kpiLine + "\n\n" + m.list.View(width, m.spinner.View())
}

// viewTabBar renders one tab per visible section. Advanced tabs disappear
// for users with no campaigns; the manage tab is muted until a campaign
// is open.
func (m Model) viewTabBar() string {
	hints := [sectionCount]string{"F1", "F2", "F3", "F4"}
	var tabs []string
	for s := Section(0); s < sectionCount; s++ {
		if s.advanced() && !m.stage.AdvancedVisible() {
			continue
		}
		label := hints[s] + " " + s.String()
		switch {
		case s == m.section:
			tabs = append(tabs, activeTabStyle.Render(label))
		case !m.sectionAvailable(s):
			tabs = append(tabs, mutedText.Render(label))
		default:
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(tabs, "   ") + "\n"
}

// helpBindings returns the help bar key map for the active section.
func (m Model) helpBindings() help.KeyMap {
	switch m.section {
	case SectionCampaigns:
		return ListKeyMap()
	case SectionManage, SectionCreate:
		return FormKeyMap()
	default:
		return ChatKeyMap()
	}
}
