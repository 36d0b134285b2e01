package data

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeltrust/mtrust/pkg/score"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), DataFileName)
	require.NoError(t, Init(path))

	db, err := GetDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func testScoreRecord(name string) score.Record {
	return score.Record{
		Name:     name,
		Category: "MODEL",
		NetScore: 0.72,
		SizeScore: map[string]float64{
			score.HardwareDesktopPC: 1,
		},
	}
}

func TestInit_EmptyPath(t *testing.T) {
	assert.Error(t, Init(""))
}

func TestSaveRecord_NilDB(t *testing.T) {
	assert.Error(t, SaveRecord(nil, "url", testScoreRecord("m")))
}

func TestSaveRecord_Upsert(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SaveRecord(db, "https://huggingface.co/org/m", testScoreRecord("org/m")))

	// saving again replaces the row instead of failing the PK
	updated := testScoreRecord("org/m")
	updated.NetScore = 0.9
	require.NoError(t, SaveRecord(db, "https://huggingface.co/org/m", updated))

	list, err := ListScores(db, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "org/m", list[0].Name)
	assert.InDelta(t, 0.9, list[0].NetScore, 0.0001)
}

func TestListScores_Empty(t *testing.T) {
	db := setupTestDB(t)

	list, err := ListScores(db, 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListScores_NilDB(t *testing.T) {
	_, err := ListScores(nil, 10)
	assert.Error(t, err)
}

func TestCache_GetFreshRecord(t *testing.T) {
	db := setupTestDB(t)
	c := NewCache(db, true)

	c.Put("https://huggingface.co/org/m", testScoreRecord("org/m"))

	rec, ok := c.Get("org/m")
	require.True(t, ok)
	assert.Equal(t, "org/m", rec.Name)
	assert.InDelta(t, 0.72, rec.NetScore, 0.0001)
	assert.Equal(t, 1.0, rec.SizeScore[score.HardwareDesktopPC])
}

func TestCache_MissUnknownName(t *testing.T) {
	c := NewCache(setupTestDB(t), true)

	_, ok := c.Get("org/never-scored")
	assert.False(t, ok)
}

func TestCache_ReuseDisabled(t *testing.T) {
	db := setupTestDB(t)

	// write-only cache still persists
	NewCache(db, false).Put("url", testScoreRecord("org/m"))

	list, err := ListScores(db, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// but never serves reads
	_, ok := NewCache(db, false).Get("org/m")
	assert.False(t, ok)
}

func TestCache_StaleRecordIgnored(t *testing.T) {
	db := setupTestDB(t)
	c := NewCache(db, true)
	c.Put("url", testScoreRecord("org/m"))

	// age the row past the freshness window
	_, err := db.Exec(`UPDATE model_score SET created_at = '2020-01-01T00:00:00Z' WHERE name = ?`, "org/m")
	require.NoError(t, err)

	_, ok := c.Get("org/m")
	assert.False(t, ok)
}
