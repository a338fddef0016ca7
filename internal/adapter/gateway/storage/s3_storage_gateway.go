// Package storage provides blueprint document stores: S3 for durable
// uploads and an afero-backed local directory for offline use.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/aviniti/blueprint/internal/application/port/output"
)

// S3StorageGateway stores rendered blueprints in S3.
// Bucket layout: s3://<bucket>/<prefix>/blueprints/<sessionID>/<reportID>/
//   - blueprint.pdf: rendered document
//   - metadata.json: upload metadata
type S3StorageGateway struct {
	client S3API
	bucket string
	prefix string
}

// S3Config holds the S3 gateway configuration
type S3Config struct {
	Bucket string
	Prefix string
	Region string // optional, falls back to the SDK default chain
}

// NewS3StorageGateway creates a gateway backed by the real S3 client
func NewS3StorageGateway(ctx context.Context, cfg S3Config) (*S3StorageGateway, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, &output.ConfigurationError{
			Component: "storage",
			Reason:    "S3 bucket is not configured",
		}
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	if cfg.Region != "" {
		awsCfg.Region = cfg.Region
	}
	return &S3StorageGateway{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// NewS3StorageGatewayWithClient creates a gateway with a custom client,
// used by tests with an in-memory S3
func NewS3StorageGatewayWithClient(client S3API, bucket, prefix string) *S3StorageGateway {
	return &S3StorageGateway{client: client, bucket: bucket, prefix: prefix}
}

// SaveBlueprint uploads a rendered blueprint and its metadata
func (g *S3StorageGateway) SaveBlueprint(ctx context.Context, req output.SaveBlueprintRequest) (*output.BlueprintLocation, error) {
	contentKey := g.contentKey(req.SessionID, req.ReportID)

	s3Metadata := map[string]string{
		"report-id":  req.ReportID,
		"session-id": req.SessionID,
	}
	for k, v := range req.Metadata {
		s3Metadata[k] = v
	}

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(contentKey),
		Body:        bytes.NewReader(req.Content),
		ContentType: aws.String(req.ContentType),
		Metadata:    s3Metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("upload blueprint to S3: %w", err)
	}

	loc := &output.BlueprintLocation{
		ReportID:   req.ReportID,
		RemoteURL:  fmt.Sprintf("s3://%s/%s", g.bucket, contentKey),
		Size:       int64(len(req.Content)),
		UploadedAt: time.Now().UTC(),
	}

	metadataJSON, err := json.Marshal(loc)
	if err != nil {
		return nil, fmt.Errorf("marshal blueprint metadata: %w", err)
	}
	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(g.metadataKey(req.SessionID, req.ReportID)),
		Body:        bytes.NewReader(metadataJSON),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload blueprint metadata to S3: %w", err)
	}

	return loc, nil
}

// LoadBlueprint fetches a previously uploaded blueprint by identity
func (g *S3StorageGateway) LoadBlueprint(ctx context.Context, sessionID, reportID string) ([]byte, error) {
	obj, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(g.contentKey(sessionID, reportID)),
	})
	if err != nil {
		return nil, fmt.Errorf("download blueprint from S3: %w", err)
	}
	defer obj.Body.Close()

	content, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, fmt.Errorf("read blueprint body: %w", err)
	}
	return content, nil
}

// DeleteBlueprint removes a stored blueprint and its metadata
func (g *S3StorageGateway) DeleteBlueprint(ctx context.Context, sessionID, reportID string) error {
	for _, key := range []string{g.contentKey(sessionID, reportID), g.metadataKey(sessionID, reportID)} {
		_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(g.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return fmt.Errorf("delete %s from S3: %w", key, err)
		}
	}
	return nil
}

func (g *S3StorageGateway) contentKey(sessionID, reportID string) string {
	return g.key(sessionID, reportID, "blueprint.pdf")
}

func (g *S3StorageGateway) metadataKey(sessionID, reportID string) string {
	return g.key(sessionID, reportID, "metadata.json")
}

func (g *S3StorageGateway) key(sessionID, reportID, name string) string {
	parts := []string{"blueprints", sessionID, reportID, name}
	if g.prefix != "" {
		parts = append([]string{g.prefix}, parts...)
	}
	return path.Join(parts...)
}
