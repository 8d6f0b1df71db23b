package workers

import (
	"testing"
	"time"

	dbpkg "dumbbell/db"
	"dumbbell/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpiredTokens(t *testing.T) {
	db, err := dbpkg.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, dbpkg.Migrate(db))

	now := time.Now()
	old := now.Add(-48 * time.Hour)
	fresh := now.Add(-time.Hour)
	require.NoError(t, db.Create(&models.AuthToken{Key: "old", UserID: 1, CreatedAt: &old}).Error)
	require.NoError(t, db.Create(&models.AuthToken{Key: "fresh", UserID: 2, CreatedAt: &fresh}).Error)

	removed, err := PurgeExpiredTokens(db, 24*time.Hour, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	var keys []string
	require.NoError(t, db.Model(&models.AuthToken{}).Pluck("token_key", &keys).Error)
	assert.Equal(t, []string{"fresh"}, keys)
}
