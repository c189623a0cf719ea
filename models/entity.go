package models

// DiagonalMovement makes diagonal neighbours count as adjacent (Chebyshev distance 1).
const DiagonalMovement = true

// Position is a cell on a map grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IsValid reports whether the position lies inside a width x height grid
func (p Position) IsValid(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// IsAdjacent reports whether other is exactly one step away from p
func (p Position) IsAdjacent(other Position) bool {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if !DiagonalMovement {
		return dx+dy == 1
	}
	return max(dx, dy) == 1
}

// Player is the session-owned view of a connected player
type Player struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	CurrentMapID   string    `json:"current_map_id,omitempty"`
	Position       *Position `json:"position,omitempty"`
	CurrentFightID string    `json:"current_fight_id,omitempty"`
}

// InMap reports whether the player currently resides on a map
func (p *Player) InMap() bool {
	return p.CurrentMapID != ""
}

// InFight reports whether the player is a participant of a live fight
func (p *Player) InFight() bool {
	return p.CurrentFightID != ""
}

// PlayerSnapshot is the copy of another player's state sent with map snapshots
type PlayerSnapshot struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	FightID  string   `json:"fightId,omitempty"`
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
