package output

import (
	"context"
	"time"
)

// StorageGateway is the interface for the render+upload backend's storage
// side. Supports both local filesystem and cloud storage (S3, GCS, etc.)
type StorageGateway interface {
	// SaveBlueprint uploads a rendered blueprint document
	SaveBlueprint(ctx context.Context, req SaveBlueprintRequest) (*BlueprintLocation, error)

	// LoadBlueprint retrieves a previously uploaded blueprint by identity
	LoadBlueprint(ctx context.Context, sessionID, reportID string) ([]byte, error)
}

// SaveBlueprintRequest represents a request to store a blueprint document
type SaveBlueprintRequest struct {
	SessionID   string            // Owning wizard session
	ReportID    string            // Durable report identity
	Content     []byte            // Rendered document bytes
	ContentType string            // MIME type, e.g. "application/pdf"
	Metadata    map[string]string // Additional metadata
}

// BlueprintLocation describes where a stored blueprint lives
type BlueprintLocation struct {
	ReportID   string    // Durable report identity
	RemoteURL  string    // Durable reference for re-download
	Size       int64     // Size in bytes
	UploadedAt time.Time // Upload timestamp
}
