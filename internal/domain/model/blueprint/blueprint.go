package blueprint

import (
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// TimelinePhase is one ordered phase of the projected delivery schedule
type TimelinePhase struct {
	Phase       string `json:"phase"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Estimate is the computed cost, time and breakdown for a feature
// selection. It is derived data: recomputed deterministically from the
// selected features and never persisted on its own.
type Estimate struct {
	TotalCost      int             `json:"totalCost"`
	CostLabel      string          `json:"costLabel"`
	TotalDays      int             `json:"totalDays"` // parallelization-adjusted, rounded up
	MinDays        int             `json:"minDays"`
	MaxDays        int             `json:"maxDays"`
	TimeLabel      string          `json:"timeLabel"`
	CostBreakdown  map[string]int  `json:"costBreakdown"`
	TimelinePhases []TimelinePhase `json:"timelinePhases"`
}

// Report is the full detailed report for a completed feature selection
type Report struct {
	AppOverview      string            `json:"appOverview"`
	SelectedFeatures []feature.Feature `json:"selectedFeatures"`
	Estimate         Estimate          `json:"estimate"`
}

// Artifact is a generated downloadable blueprint document. ReportID is the
// durable identity used for idempotent re-download; RemoteURL is set only
// after a successful upload.
type Artifact struct {
	Content   []byte
	ReportID  string
	RemoteURL string
}
