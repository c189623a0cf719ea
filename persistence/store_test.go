package persistence

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smidy/ChickenFight-sub000/models"
)

func exerciseStorage(t *testing.T, store Storage) {
	t.Helper()

	mapID := "map-" + uuid.NewString()
	_, err := store.LoadMapLayout(mapID)
	assert.ErrorIs(t, err, ErrNotFound)

	layout, err := models.NewSeededLayout(mapID, "Green Plains", 4, 3, "grass")
	require.NoError(t, err)
	require.NoError(t, store.SaveMapLayout(layout))

	loaded, err := store.LoadMapLayout(mapID)
	require.NoError(t, err)
	assert.Equal(t, layout, loaded)

	winner, loser := uuid.NewString(), uuid.NewString()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := &models.FightRecord{
		ID: uuid.NewString(), FightID: "f1", MapID: mapID, WinnerID: winner, LoserID: loser,
		Reason: "Defeated", Turns: 4, StartedAt: start, EndedAt: start.Add(time.Minute),
	}
	newer := &models.FightRecord{
		ID: uuid.NewString(), FightID: "f2", MapID: mapID, WinnerID: loser, LoserID: winner,
		Reason: "Player disconnected", Turns: 1, StartedAt: start.Add(time.Hour), EndedAt: start.Add(2 * time.Hour),
	}
	require.NoError(t, store.SaveFightRecord(older))
	require.NoError(t, store.SaveFightRecord(newer))

	records, err := store.LoadFightRecords(winner)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "f2", records[0].FightID)
	assert.Equal(t, "f1", records[1].FightID)
	assert.True(t, older.EndedAt.Equal(records[1].EndedAt))

	none, err := store.LoadFightRecords("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)
	exerciseStorage(t, store)
	require.NoError(t, store.Close())
}

func TestJSONStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := NewJSONStore(path)
	require.NoError(t, err)

	layout, err := models.NewSeededLayout("map1", "Green Plains", 2, 2, "grass")
	require.NoError(t, err)
	require.NoError(t, store.SaveMapLayout(layout))

	reopened, err := NewJSONStore(path)
	require.NoError(t, err)
	loaded, err := reopened.LoadMapLayout("map1")
	require.NoError(t, err)
	assert.Equal(t, layout.Tiles, loaded.Tiles)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))
	_, err := NewJSONStore(path)
	assert.Error(t, err)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	store, err := NewPostgresStore(dsn, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	defer store.Close()
	exerciseStorage(t, store)
}
