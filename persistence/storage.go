package persistence

import (
	"errors"

	"github.com/smidy/ChickenFight-sub000/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("not found")

// Storage defines the interface for data persistence. Live game state is never
// stored; only map definitions and the archive of finished fights.
type Storage interface {
	SaveMapLayout(layout *models.MapLayout) error
	LoadMapLayout(mapID string) (*models.MapLayout, error)
	SaveFightRecord(record *models.FightRecord) error
	LoadFightRecords(playerID string) ([]*models.FightRecord, error)
	Close() error
}
