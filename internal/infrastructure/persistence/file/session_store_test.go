package file

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviniti/blueprint/internal/domain/model/session"
)

func TestSessionStoreRoundtrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSessionStore(fs, "/home")
	ctx := context.Background()

	sess := session.New()
	sess.PersonalDetails.FullName = "Dana Client"
	sess.Advance()

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.SessionID, loaded.SessionID)
	assert.Equal(t, session.StepAppDescription, loaded.Step)
	assert.Equal(t, "Dana Client", loaded.PersonalDetails.FullName)
}

func TestSessionStoreLoadMissing(t *testing.T) {
	store := NewSessionStore(afero.NewMemMapFs(), "/home")

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStoreDiscardsStaleRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	ctx := context.Background()

	store := NewSessionStore(fs, "/home")
	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))

	// fast-forward past the TTL
	store.WithClock(func() time.Time { return time.Now().Add(session.TTL + time.Minute) })

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// the stale record is removed, not just skipped
	exists, err := afero.Exists(fs, filepath.Join("/home", "var", "session.json"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSessionStoreDiscardsCorruptRecord(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := filepath.Join("/home", "var", "session.json")
	require.NoError(t, afero.WriteFile(fs, path, []byte("{not json"), 0o644))

	store := NewSessionStore(fs, "/home")
	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	exists, _ := afero.Exists(fs, path)
	assert.False(t, exists)
}

func TestSessionStoreClear(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSessionStore(fs, "/home")
	ctx := context.Background()

	require.NoError(t, store.Clear(ctx), "clearing an empty store is fine")

	require.NoError(t, store.Save(ctx, session.New()))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStoreSaveOverwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewSessionStore(fs, "/home")
	ctx := context.Background()

	sess := session.New()
	require.NoError(t, store.Save(ctx, sess))
	sess.Advance()
	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, session.StepAppDescription, loaded.Step)
}
