// Package sqlite implements the intake record repository on SQLite
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/aviniti/blueprint/internal/domain/model/client"
	"github.com/aviniti/blueprint/internal/domain/repository"
)

// ClientRecordRepositoryImpl implements repository.ClientRecordRepository
// with SQLite
type ClientRecordRepositoryImpl struct {
	db *sql.DB
}

// NewClientRecordRepository opens the database at dbPath and ensures the
// schema exists
func NewClientRecordRepository(dbPath string) (*ClientRecordRepositoryImpl, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	repo := &ClientRecordRepositoryImpl{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return repo, nil
}

// NewClientRecordRepositoryWithDB wraps an existing database handle, used
// by tests with an in-memory database
func NewClientRecordRepositoryWithDB(db *sql.DB) (*ClientRecordRepositoryImpl, error) {
	repo := &ClientRecordRepositoryImpl{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ClientRecordRepositoryImpl) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS client_records (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email_address TEXT NOT NULL,
			phone_number TEXT,
			company_name TEXT,
			app_description TEXT,
			platforms TEXT,
			selected_features TEXT,
			total_cost TEXT,
			total_time TEXT,
			status TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("create client_records table: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (r *ClientRecordRepositoryImpl) Close() error {
	return r.db.Close()
}

// Save inserts or updates the record by ID
func (r *ClientRecordRepositoryImpl) Save(ctx context.Context, rec *client.Record) error {
	platformsJSON, err := json.Marshal(rec.Platforms)
	if err != nil {
		return fmt.Errorf("marshal platforms: %w", err)
	}

	query := `
		INSERT INTO client_records (
			id, full_name, email_address, phone_number, company_name,
			app_description, platforms, selected_features,
			total_cost, total_time, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email_address = excluded.email_address,
			phone_number = excluded.phone_number,
			company_name = excluded.company_name,
			app_description = excluded.app_description,
			platforms = excluded.platforms,
			selected_features = excluded.selected_features,
			total_cost = excluded.total_cost,
			total_time = excluded.total_time,
			status = excluded.status,
			updated_at = excluded.updated_at
	`
	_, err = r.db.ExecContext(ctx, query,
		rec.ID,
		rec.FullName,
		rec.EmailAddress,
		rec.PhoneNumber,
		rec.CompanyName,
		rec.AppDescription,
		string(platformsJSON),
		rec.SelectedFeatures,
		rec.TotalCost,
		rec.TotalTime,
		string(rec.Status),
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save client record: %w", err)
	}
	return nil
}

// Find returns the record with the given ID
func (r *ClientRecordRepositoryImpl) Find(ctx context.Context, id string) (*client.Record, error) {
	query := `
		SELECT id, full_name, email_address, phone_number, company_name,
			app_description, platforms, selected_features,
			total_cost, total_time, status, created_at, updated_at
		FROM client_records WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, id)

	var rec client.Record
	var platformsJSON, status, createdAt, updatedAt string
	err := row.Scan(
		&rec.ID,
		&rec.FullName,
		&rec.EmailAddress,
		&rec.PhoneNumber,
		&rec.CompanyName,
		&rec.AppDescription,
		&platformsJSON,
		&rec.SelectedFeatures,
		&rec.TotalCost,
		&rec.TotalTime,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client record not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find client record: %w", err)
	}

	if platformsJSON != "" {
		if err := json.Unmarshal([]byte(platformsJSON), &rec.Platforms); err != nil {
			return nil, fmt.Errorf("unmarshal platforms: %w", err)
		}
	}
	rec.Status = client.Status(status)
	if rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &rec, nil
}

var _ repository.ClientRecordRepository = (*ClientRecordRepositoryImpl)(nil)
