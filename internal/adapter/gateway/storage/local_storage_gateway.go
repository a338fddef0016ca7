package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/aviniti/blueprint/internal/application/port/output"
)

// LocalStorageGateway stores blueprints on the local filesystem. Directory
// layout mirrors the S3 gateway: <base>/blueprints/<sessionID>/<reportID>/
type LocalStorageGateway struct {
	fs   afero.Fs
	base string
}

// NewLocalStorageGateway creates a filesystem-backed gateway rooted at base
func NewLocalStorageGateway(fs afero.Fs, base string) *LocalStorageGateway {
	return &LocalStorageGateway{fs: fs, base: base}
}

// SaveBlueprint writes the blueprint and its metadata under the report dir
func (g *LocalStorageGateway) SaveBlueprint(_ context.Context, req output.SaveBlueprintRequest) (*output.BlueprintLocation, error) {
	dir := g.reportDir(req.SessionID, req.ReportID)
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blueprint dir: %w", err)
	}

	contentPath := filepath.Join(dir, "blueprint.pdf")
	if err := afero.WriteFile(g.fs, contentPath, req.Content, 0o644); err != nil {
		return nil, fmt.Errorf("write blueprint: %w", err)
	}

	loc := &output.BlueprintLocation{
		ReportID:   req.ReportID,
		RemoteURL:  "file://" + contentPath,
		Size:       int64(len(req.Content)),
		UploadedAt: time.Now().UTC(),
	}
	metadataJSON, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("marshal blueprint metadata: %w", err)
	}
	if err := afero.WriteFile(g.fs, filepath.Join(dir, "metadata.json"), metadataJSON, 0o644); err != nil {
		return nil, fmt.Errorf("write blueprint metadata: %w", err)
	}
	return loc, nil
}

// LoadBlueprint reads a previously stored blueprint
func (g *LocalStorageGateway) LoadBlueprint(_ context.Context, sessionID, reportID string) ([]byte, error) {
	contentPath := filepath.Join(g.reportDir(sessionID, reportID), "blueprint.pdf")
	content, err := afero.ReadFile(g.fs, contentPath)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}
	return content, nil
}

func (g *LocalStorageGateway) reportDir(sessionID, reportID string) string {
	return filepath.Join(g.base, "blueprints", sessionID, reportID)
}
