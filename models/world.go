package models

import (
	"errors"
	"fmt"
	"sort"
)

// Tile types represented as integers for memory efficiency
const (
	TileFloor = iota
	TileWall
	TileDoor
	TileWater
	TileGrass
	TileTree
	TileStairsUp
	TileStairsDown
	TileSand
	TilePavement
	TileSnow
	TileLava
	TileAsh
	TileCactus
	TileIce
)

var terrainTiles = map[string]int{
	"floor":    TileFloor,
	"grass":    TileGrass,
	"sand":     TileSand,
	"snow":     TileSnow,
	"ash":      TileAsh,
	"ice":      TileIce,
	"pavement": TilePavement,
}

// TerrainTile maps a terrain name to its tile type, defaulting to grass
func TerrainTile(name string) int {
	if t, ok := terrainTiles[name]; ok {
		return t
	}
	return TileGrass
}

// IsWalkable reports whether a player may stand on the tile
func IsWalkable(tile int) bool {
	return tile != TileWall && tile != TileWater
}

var (
	ErrMapFull          = errors.New("Map is full")
	ErrPlayerNotInMap   = errors.New("Player not found in map")
	ErrInvalidMove      = errors.New("Invalid move")
	ErrAlreadyInMap     = errors.New("Player already in map")
	ErrPlayerInFight    = errors.New("Player not available for a fight")
	ErrInvalidDimension = errors.New("map dimensions must be positive")
)

// MapLayout is the persisted, immutable definition of a map
type MapLayout struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []int  `json:"tiles"`
}

// NewSeededLayout builds a uniform terrain bisected by a cross-shaped pavement path
func NewSeededLayout(id, name string, width, height int, terrain string) (*MapLayout, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	fill := TerrainTile(terrain)
	tiles := make([]int, width*height)
	midX, midY := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := fill
			if x == midX || y == midY {
				t = TilePavement
			}
			tiles[y*width+x] = t
		}
	}
	return &MapLayout{ID: id, Name: name, Width: width, Height: height, Tiles: tiles}, nil
}

// GameMap is a live map: the tile grid plus who stands where.
// It is not safe for concurrent use; a single map actor owns it.
type GameMap struct {
	ID        string
	Name      string
	Width     int
	Height    int
	Tiles     []int
	positions map[string]Position
	names     map[string]string
	fights    map[string]string
}

// NewGameMap creates a live map from a layout
func NewGameMap(layout *MapLayout) (*GameMap, error) {
	if layout.Width <= 0 || layout.Height <= 0 {
		return nil, ErrInvalidDimension
	}
	if len(layout.Tiles) != layout.Width*layout.Height {
		return nil, fmt.Errorf("map %s: expected %d tiles, got %d", layout.ID, layout.Width*layout.Height, len(layout.Tiles))
	}
	tiles := make([]int, len(layout.Tiles))
	copy(tiles, layout.Tiles)
	return &GameMap{
		ID:        layout.ID,
		Name:      layout.Name,
		Width:     layout.Width,
		Height:    layout.Height,
		Tiles:     tiles,
		positions: make(map[string]Position),
		names:     make(map[string]string),
		fights:    make(map[string]string),
	}, nil
}

// TileAt returns the tile at p; p must be valid
func (m *GameMap) TileAt(p Position) int {
	return m.Tiles[p.Y*m.Width+p.X]
}

// PlayerCount returns the number of players on the map
func (m *GameMap) PlayerCount() int {
	return len(m.positions)
}

// PlayerPosition returns where a player stands
func (m *GameMap) PlayerPosition(playerID string) (Position, bool) {
	p, ok := m.positions[playerID]
	return p, ok
}

// IsOccupied reports whether any player stands on p
func (m *GameMap) IsOccupied(p Position) bool {
	for _, pos := range m.positions {
		if pos == p {
			return true
		}
	}
	return false
}

// AddPlayer places a player on the first free walkable cell, scanning rows top to bottom
// and each row left to right.
func (m *GameMap) AddPlayer(playerID, name string) (Position, error) {
	if _, exists := m.positions[playerID]; exists {
		return Position{}, ErrAlreadyInMap
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := Position{X: x, Y: y}
			if !IsWalkable(m.TileAt(p)) || m.IsOccupied(p) {
				continue
			}
			m.positions[playerID] = p
			m.names[playerID] = name
			return p, nil
		}
	}
	return Position{}, ErrMapFull
}

// RemovePlayer drops a player and any fight marker it carries
func (m *GameMap) RemovePlayer(playerID string) error {
	if _, exists := m.positions[playerID]; !exists {
		return ErrPlayerNotInMap
	}
	delete(m.positions, playerID)
	delete(m.names, playerID)
	delete(m.fights, playerID)
	return nil
}

// ValidateMove moves a player to an adjacent, free, in-bounds cell.
// A rejected move leaves the map untouched.
func (m *GameMap) ValidateMove(playerID string, to Position) error {
	from, exists := m.positions[playerID]
	if !exists {
		return ErrInvalidMove
	}
	if !to.IsValid(m.Width, m.Height) || !from.IsAdjacent(to) {
		return ErrInvalidMove
	}
	if !IsWalkable(m.TileAt(to)) || m.IsOccupied(to) {
		return ErrInvalidMove
	}
	m.positions[playerID] = to
	return nil
}

// SetFight marks a player as in combat; an empty fightID clears the marker
func (m *GameMap) SetFight(playerID, fightID string) {
	if fightID == "" {
		delete(m.fights, playerID)
		return
	}
	m.fights[playerID] = fightID
}

// FightOf returns the fight a player is marked in
func (m *GameMap) FightOf(playerID string) string {
	return m.fights[playerID]
}

// Snapshot copies the other players on the map, ordered by id
func (m *GameMap) Snapshot(excludeID string) []PlayerSnapshot {
	players := make([]PlayerSnapshot, 0, len(m.positions))
	for id, pos := range m.positions {
		if id == excludeID {
			continue
		}
		players = append(players, PlayerSnapshot{
			ID:       id,
			Name:     m.names[id],
			Position: pos,
			FightID:  m.fights[id],
		})
	}
	sort.Slice(players, func(i, j int) bool { return players[i].ID < players[j].ID })
	return players
}

// TileSnapshot returns a copy of the tile grid
func (m *GameMap) TileSnapshot() []int {
	tiles := make([]int, len(m.Tiles))
	copy(tiles, m.Tiles)
	return tiles
}
