// Package lifecycle classifies a user's stage from their campaign snapshot
// and derives the decisions that follow from it: which UI sections are
// visible and which assistant answers their chat messages.
//
// Stage is a pure function of the snapshot. It is recomputed on demand
// rather than stored, so it can never disagree with the data it describes.
package lifecycle

import (
	"github.com/autoneura/console/internal/api"
)

// Stage is the coarse classification of a user.
type Stage int

const (
	// StageNew means the user has no campaigns yet. Advanced sections are
	// hidden and chat routes to the persuasive sales assistant.
	StageNew Stage = iota
	// StageEstablished means at least one campaign exists. Advanced
	// sections are visible and chat routes to the data-aware analyst.
	StageEstablished
)

// Classify derives the stage from the latest campaign snapshot.
func Classify(snapshot []api.CampaignSummary) Stage {
	if len(snapshot) == 0 {
		return StageNew
	}
	return StageEstablished
}

// ChatPath returns the backend chat endpoint for this stage. Callers must
// re-evaluate the stage on every send; a refresh that changes the stage
// changes where the very next message goes.
func (s Stage) ChatPath() string {
	if s == StageNew {
		return api.SalesChatPath
	}
	return api.AnalystChatPath
}

// AdvancedVisible reports whether the advanced UI sections (campaign list,
// campaign management) should be shown.
func (s Stage) AdvancedVisible() bool {
	return s == StageEstablished
}

func (s Stage) String() string {
	if s == StageNew {
		return "new"
	}
	return "established"
}
