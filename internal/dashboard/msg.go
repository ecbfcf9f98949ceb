// Package dashboard implements the interactive campaign console TUI:
// a tabbed single-page view over the AutoNeura backend with a campaign
// list, a creation questionnaire, a detail/edit form, and the assistant
// chat panel.
package dashboard

import (
	"context"

	"github.com/autoneura/console/internal/api"
)

// Section identifies one mutually exclusive region of the UI.
// Exactly one section is visible at a time.
type Section int

const (
	SectionCreate    Section = iota // Campaign creation questionnaire.
	SectionCampaigns                // Campaign list with KPI header.
	SectionManage                   // Detail/edit form for one campaign.
	SectionChat                     // Assistant chat panel.

	sectionCount
)

// advanced reports whether this section is hidden for users with no
// campaigns yet.
func (s Section) advanced() bool {
	return s == SectionCampaigns || s == SectionManage
}

func (s Section) String() string {
	switch s {
	case SectionCreate:
		return "Create"
	case SectionCampaigns:
		return "My Campaigns"
	case SectionManage:
		return "Manage"
	case SectionChat:
		return "Assistant"
	default:
		return "?"
	}
}

// --- Consumer-side interfaces ---

// CampaignLister fetches the full campaign list.
type CampaignLister interface {
	ListCampaigns(ctx context.Context) ([]api.CampaignSummary, error)
}

// CampaignResolver fetches the full record for a single campaign.
type CampaignResolver interface {
	GetCampaign(ctx context.Context, id api.ID) (api.CampaignDetail, error)
}

// CampaignWriter creates and updates campaigns.
type CampaignWriter interface {
	CreateCampaign(ctx context.Context, p api.CreatePayload) error
	UpdateCampaign(ctx context.Context, p api.UpdatePayload) error
}

// ChatSender posts a chat message to a backend endpoint path and returns
// the assistant's reply.
type ChatSender interface {
	Chat(ctx context.Context, path, message string) (string, error)
}

// --- tea.Msg types ---

// CampaignListMsg carries the result of a CampaignLister.ListCampaigns call.
type CampaignListMsg struct {
	Campaigns []api.CampaignSummary
	Err       error
}

// OpenCampaignMsg signals the user has selected a campaign to manage.
type OpenCampaignMsg struct {
	ID api.ID
}

// CampaignResolvedMsg carries the result of a CampaignResolver.GetCampaign
// call. Whichever resolution arrives last populates the form; there is no
// request sequencing (see the package race note in manage.go).
type CampaignResolvedMsg struct {
	ID     api.ID
	Detail api.CampaignDetail
	Err    error
}

// SaveResultMsg carries the result of an update request from the manage form.
type SaveResultMsg struct {
	ID  api.ID
	Err error
}

// CreateResultMsg carries the result of a campaign creation request.
type CreateResultMsg struct {
	Err error
}

// ChatReplyMsg carries one assistant reply. Index names the transcript
// entry the reply belongs to, so out-of-order replies land in the right
// place.
type ChatReplyMsg struct {
	Index int
	Reply string
	Err   error
}

// RefreshCampaignsMsg signals that the campaign list should be reloaded.
// listState emits this on 'r'; Model.Update intercepts it and refetches.
type RefreshCampaignsMsg struct{}
