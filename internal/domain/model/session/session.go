package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/model/feature"
)

// TTL is the staleness window after which a persisted session is discarded
const TTL = 24 * time.Hour

// Step identifies the wizard stage. The zero value is invalid so a Session
// always carries an explicit step.
type Step int

const (
	StepUserInfo Step = iota + 1
	StepAppDescription
	StepFeatureSelection
	StepReport
)

// IsValid validates the step
func (s Step) IsValid() bool {
	return s >= StepUserInfo && s <= StepReport
}

// String returns the step title shown to the user
func (s Step) String() string {
	switch s {
	case StepUserInfo:
		return "Personal Information"
	case StepAppDescription:
		return "App Description"
	case StepFeatureSelection:
		return "Feature Selection"
	case StepReport:
		return "Detailed Report"
	default:
		return "Unknown"
	}
}

// PersonalDetails holds the client's contact information from step 1
type PersonalDetails struct {
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	CompanyName  string `json:"companyName"`
}

// AppDescription holds the app idea and target platforms from step 2
type AppDescription struct {
	Description string   `json:"description"`
	Platforms   []string `json:"selectedPlatforms"`
}

// Session is one in-progress or completed wizard run with its accumulated
// input and derived results. Exactly one exists per wizard instance and it
// is mutated only by the wizard use case.
type Session struct {
	SessionID         string            `json:"sessionId"`
	Step              Step              `json:"step"`
	PersonalDetails   PersonalDetails   `json:"personalDetails"`
	AppDescription    AppDescription    `json:"appDescription"`
	Catalogue         *feature.Catalogue `json:"aiAnalysisResult,omitempty"`
	Report            *blueprint.Report `json:"detailedReport,omitempty"`
	ClientRecordID    string            `json:"userDocumentId,omitempty"`
	ArtifactRef       string            `json:"artifactRef,omitempty"`
	FallbackCatalogue bool              `json:"fallbackCatalogue,omitempty"`
	LastUpdated       time.Time         `json:"lastUpdated"`
}

// New creates a fresh session at step 1
func New() *Session {
	return &Session{
		SessionID:   uuid.New().String(),
		Step:        StepUserInfo,
		LastUpdated: time.Now().UTC(),
	}
}

// Advance moves the session forward one step
func (s *Session) Advance() {
	if s.Step < StepReport {
		s.Step++
		s.Touch()
	}
}

// Back moves the session back one step. At step 1 it is a no-op; previously
// entered data is always preserved.
func (s *Session) Back() {
	if s.Step > StepUserInfo {
		s.Step--
		s.Touch()
	}
}

// Touch updates the last-modified timestamp
func (s *Session) Touch() {
	s.LastUpdated = time.Now().UTC()
}

// IsStale reports whether the session has passed the staleness window
func (s *Session) IsStale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.LastUpdated) > ttl
}
