package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviniti/blueprint/internal/domain/model/client"
	"github.com/aviniti/blueprint/internal/domain/model/session"
)

func newTestRepo(t *testing.T) *ClientRecordRepositoryImpl {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := NewClientRecordRepositoryWithDB(db)
	require.NoError(t, err)
	return repo
}

func TestSaveAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := client.NewRecord(session.PersonalDetails{
		FullName:     "Dana Client",
		EmailAddress: "dana@example.com",
		PhoneNumber:  "555-0100",
		CompanyName:  "Acme",
	})
	rec.Platforms = []string{"iOS", "Web"}
	require.NoError(t, repo.Save(ctx, rec))

	found, err := repo.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana Client", found.FullName)
	assert.Equal(t, "dana@example.com", found.EmailAddress)
	assert.Equal(t, []string{"iOS", "Web"}, found.Platforms)
	assert.Equal(t, client.StatusNew, found.Status)
	assert.WithinDuration(t, rec.CreatedAt, found.CreatedAt, time.Second)
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := client.NewRecord(session.PersonalDetails{
		FullName:     "Dana Client",
		EmailAddress: "dana@example.com",
	})
	require.NoError(t, repo.Save(ctx, rec))

	rec.AppDescription = "A marketplace for artisans"
	rec.Status = client.StatusPendingFeatures
	rec.TotalCost = "$3,200"
	require.NoError(t, repo.Save(ctx, rec))

	found, err := repo.Find(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, client.StatusPendingFeatures, found.Status)
	assert.Equal(t, "A marketplace for artisans", found.AppDescription)
	assert.Equal(t, "$3,200", found.TotalCost)
}

func TestFindMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Find(context.Background(), "nope")
	assert.Error(t, err)
}
