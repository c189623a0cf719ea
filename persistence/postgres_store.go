package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/smidy/ChickenFight-sub000/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string, logger *log.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, logger: logger}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (dm *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS map_layouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		tiles JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS fight_records (
		id TEXT PRIMARY KEY,
		fight_id TEXT NOT NULL,
		map_id TEXT NOT NULL,
		winner_id TEXT NOT NULL,
		loser_id TEXT NOT NULL,
		reason TEXT NOT NULL,
		turns INTEGER NOT NULL,
		started_at TIMESTAMP WITH TIME ZONE NOT NULL,
		ended_at TIMESTAMP WITH TIME ZONE NOT NULL
	);

	CREATE INDEX IF NOT EXISTS fight_records_winner_idx ON fight_records (winner_id);
	CREATE INDEX IF NOT EXISTS fight_records_loser_idx ON fight_records (loser_id);
	`

	_, err := dm.db.Exec(schema)
	return err
}

// SaveMapLayout upserts a map definition
func (dm *PostgresStore) SaveMapLayout(layout *models.MapLayout) error {
	tilesJSON, err := json.Marshal(layout.Tiles)
	if err != nil {
		return fmt.Errorf("failed to marshal map tiles: %w", err)
	}

	query := `
	INSERT INTO map_layouts (id, name, width, height, tiles)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id)
	DO UPDATE SET
		name = $2, width = $3, height = $4, tiles = $5,
		updated_at = NOW()
	`

	_, err = dm.db.Exec(query, layout.ID, layout.Name, layout.Width, layout.Height, string(tilesJSON))
	if err != nil {
		return fmt.Errorf("failed to save map layout: %w", err)
	}

	return nil
}

// LoadMapLayout loads a map definition by id
func (dm *PostgresStore) LoadMapLayout(mapID string) (*models.MapLayout, error) {
	query := `SELECT id, name, width, height, tiles FROM map_layouts WHERE id = $1`

	var layout models.MapLayout
	var tilesJSON string

	err := dm.db.QueryRow(query, mapID).Scan(&layout.ID, &layout.Name, &layout.Width, &layout.Height, &tilesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("map %s: %w", mapID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load map layout: %w", err)
	}

	if err := json.Unmarshal([]byte(tilesJSON), &layout.Tiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal map tiles: %w", err)
	}

	return &layout, nil
}

// SaveFightRecord archives a finished fight
func (dm *PostgresStore) SaveFightRecord(record *models.FightRecord) error {
	query := `
	INSERT INTO fight_records (id, fight_id, map_id, winner_id, loser_id, reason, turns, started_at, ended_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING
	`

	_, err := dm.db.Exec(query,
		record.ID, record.FightID, record.MapID, record.WinnerID, record.LoserID,
		record.Reason, record.Turns, record.StartedAt, record.EndedAt)
	if err != nil {
		return fmt.Errorf("failed to save fight record: %w", err)
	}

	return nil
}

// LoadFightRecords returns the fights a player took part in, newest first
func (dm *PostgresStore) LoadFightRecords(playerID string) ([]*models.FightRecord, error) {
	query := `
	SELECT id, fight_id, map_id, winner_id, loser_id, reason, turns, started_at, ended_at
	FROM fight_records
	WHERE winner_id = $1 OR loser_id = $1
	ORDER BY ended_at DESC
	`

	rows, err := dm.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fight records: %w", err)
	}
	defer rows.Close()

	var records []*models.FightRecord
	for rows.Next() {
		var r models.FightRecord
		if err := rows.Scan(&r.ID, &r.FightID, &r.MapID, &r.WinnerID, &r.LoserID,
			&r.Reason, &r.Turns, &r.StartedAt, &r.EndedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fight record: %w", err)
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}

// Close closes the database connection
func (dm *PostgresStore) Close() error {
	dm.logger.Println("Closing database connection...")
	return dm.db.Close()
}
