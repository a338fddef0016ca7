// Package file implements the single-slot session store on the local
// filesystem
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/aviniti/blueprint/internal/domain/model/session"
)

const sessionFile = "var/session.json"

// SessionStore persists the one active wizard session as a JSON record.
// Stale or unreadable records are discarded at read time, never repaired.
type SessionStore struct {
	fs   afero.Fs
	base string
	ttl  time.Duration
	now  func() time.Time
}

// NewSessionStore creates a store rooted at base
func NewSessionStore(fs afero.Fs, base string) *SessionStore {
	return &SessionStore{
		fs:   fs,
		base: base,
		ttl:  session.TTL,
		now:  time.Now,
	}
}

// WithTTL overrides the staleness window, for tests
func (s *SessionStore) WithTTL(ttl time.Duration) *SessionStore {
	s.ttl = ttl
	return s
}

// WithClock overrides the time source, for tests
func (s *SessionStore) WithClock(now func() time.Time) *SessionStore {
	s.now = now
	return s
}

// Save writes the session record atomically
func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := writeFileAtomic(s.fs, s.path(), data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Load returns the stored session, or nil when no usable record exists.
// Corrupt and expired records are removed so the next run starts clean.
func (s *SessionStore) Load(_ context.Context) (*session.Session, error) {
	data, err := afero.ReadFile(s.fs, s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.fs.Remove(s.path())
		return nil, nil
	}
	if !sess.Step.IsValid() || sess.IsStale(s.ttl, s.now().UTC()) {
		s.fs.Remove(s.path())
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the session record. A missing record is not an error.
func (s *SessionStore) Clear(_ context.Context) error {
	err := s.fs.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *SessionStore) path() string {
	return filepath.Join(s.base, sessionFile)
}

// writeFileAtomic writes via temp file + rename so a crash mid-write never
// leaves a torn record
func writeFileAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpFile, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer fs.Remove(tmpPath)

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}
