package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/smidy/ChickenFight-sub000/models"
)

// JSONStore handles data persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Maps   map[string]*models.MapLayout `json:"maps"`
	Fights []*models.FightRecord        `json:"fights"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Maps: make(map[string]*models.MapLayout),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Maps == nil {
		js.data.Maps = make(map[string]*models.MapLayout)
	}
	return nil
}

func (js *JSONStore) saveToFile() error {
	js.mutex.RLock()
	data, err := json.MarshalIndent(js.data, "", "  ")
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveMapLayout stores a map definition
func (js *JSONStore) SaveMapLayout(layout *models.MapLayout) error {
	js.mutex.Lock()
	js.data.Maps[layout.ID] = layout
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadMapLayout loads a map definition by id
func (js *JSONStore) LoadMapLayout(mapID string) (*models.MapLayout, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	layout, exists := js.data.Maps[mapID]
	if !exists {
		return nil, fmt.Errorf("map %s: %w", mapID, ErrNotFound)
	}
	copied := *layout
	copied.Tiles = append([]int(nil), layout.Tiles...)
	return &copied, nil
}

// SaveFightRecord appends a finished fight to the archive
func (js *JSONStore) SaveFightRecord(record *models.FightRecord) error {
	js.mutex.Lock()
	js.data.Fights = append(js.data.Fights, record)
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadFightRecords returns the fights a player took part in, newest first
func (js *JSONStore) LoadFightRecords(playerID string) ([]*models.FightRecord, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	var records []*models.FightRecord
	for _, r := range js.data.Fights {
		if r.WinnerID == playerID || r.LoserID == playerID {
			copied := *r
			records = append(records, &copied)
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].EndedAt.After(records[j].EndedAt) })
	return records, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
