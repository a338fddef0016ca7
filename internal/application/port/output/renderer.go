package output

import (
	"context"
	"time"

	"github.com/aviniti/blueprint/internal/domain/model/blueprint"
	"github.com/aviniti/blueprint/internal/domain/model/session"
)

// ReportRenderer turns a detailed report into document bytes. Only the
// input/output contract matters to the engine; the rendering primitives
// are an external concern.
type ReportRenderer interface {
	Render(ctx context.Context, req RenderRequest) ([]byte, error)
}

// RenderRequest is the payload handed to the renderer
type RenderRequest struct {
	Details     session.PersonalDetails
	Description session.AppDescription
	Report      *blueprint.Report
	GeneratedAt time.Time
}
