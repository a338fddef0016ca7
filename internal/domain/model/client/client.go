package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/aviniti/blueprint/internal/domain/model/session"
)

// Status tracks how far a client record has progressed through the intake
type Status string

const (
	StatusNew             Status = "new"
	StatusPendingFeatures Status = "pending-features"
	StatusReportGenerated Status = "report-generated"
	StatusCompleted       Status = "completed"
)

// Record is the intake record kept in the persistence backend. The wizard
// creates it after step 1 and appends derived data after steps 2 and 3;
// write failures are surfaced but never corrupt in-memory wizard state.
type Record struct {
	ID               string
	FullName         string
	EmailAddress     string
	PhoneNumber      string
	CompanyName      string
	AppDescription   string
	Platforms        []string
	SelectedFeatures string // JSON snapshot of the selected feature set
	TotalCost        string
	TotalTime        string
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewRecord creates a record from the step-1 personal details
func NewRecord(details session.PersonalDetails) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:           uuid.New().String(),
		FullName:     details.FullName,
		EmailAddress: details.EmailAddress,
		PhoneNumber:  details.PhoneNumber,
		CompanyName:  details.CompanyName,
		Status:       StatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
