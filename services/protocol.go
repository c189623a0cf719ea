package services

import (
	"errors"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
)

// Rejection reasons produced by the player actor before anything is forwarded
var (
	ErrJoinInProgress   = errors.New("Join already in progress")
	ErrMoveInProgress   = errors.New("Move already in progress")
	ErrLeaveInProgress  = errors.New("Leave already in progress")
	ErrAlreadyInMap     = errors.New("Already in a map")
	ErrNotInMap         = errors.New("Not in a map")
	ErrMoveDuringFight  = errors.New("Cannot move during a fight")
	ErrLeaveDuringFight = errors.New("Cannot leave map during a fight")
	ErrAlreadyInFight   = errors.New("Already in a fight")
	ErrNotInFight       = errors.New("Not in a fight")
	ErrChallengeSelf    = errors.New("Cannot challenge yourself")
	ErrTargetNotOnMap   = errors.New("Target not on your map")
	ErrRequestTimedOut  = errors.New("Request timed out")
	ErrMapNotFound      = errors.New("Map not found")
	ErrPlayerNotFound   = errors.New("Player not found")
	ErrPlayerExists     = errors.New("Player already registered")
)

// Fight end reasons
const (
	ReasonDefeated     = "Defeated"
	ReasonDisconnected = "Player disconnected"
)

// ClientSink delivers outbound wire messages to one connected client
type ClientSink interface {
	SendMessage(msg messages.Message) error
}

// Notify carries a wire message that the receiving player actor forwards to its client
type Notify struct {
	Message messages.Message
}

// Disconnect tells a player actor its connection is gone
type Disconnect struct{}

// Manager protocol

type CreatePlayer struct {
	PlayerID string
	Name     string
	Sink     ClientSink
	ReplyTo  *actor.PID
}

type PlayerCreated struct {
	PlayerID string
	PID      *actor.PID
	Err      error
}

type GetMapList struct {
	ReplyTo *actor.PID
}

type MapList struct {
	Maps []messages.MapInfo
}

type JoinMap struct {
	MapID    string
	PlayerID string
	Name     string
	ReplyTo  *actor.PID
	Seq      uint64
}

// EvictPlayer removes a player from a map through the manager, ordered after any
// join the manager already forwarded.
type EvictPlayer struct {
	MapID    string
	PlayerID string
}

type ChallengePlayer struct {
	ChallengerID string
	TargetID     string
	MapID        string
	Challenger   *actor.PID
}

type UnregisterPlayer struct {
	PlayerID string
}

type MapPopulationChanged struct {
	MapID string
	Count int
}

type ArchiveFight struct {
	Record models.FightRecord
}

// Map protocol

type AddPlayer struct {
	PlayerID string
	Name     string
	ReplyTo  *actor.PID
	Seq      uint64
}

type AddPlayerAccepted struct {
	MapID    string
	Map      *actor.PID
	Position models.Position
	Tilemap  messages.Tilemap
	Players  []models.PlayerSnapshot
	Seq      uint64
}

type AddPlayerRejected struct {
	MapID  string
	Reason string
	Seq    uint64
}

type RemovePlayer struct {
	PlayerID string
	ReplyTo  *actor.PID
	Seq      uint64
}

type RemovePlayerAccepted struct {
	MapID string
	Seq   uint64
}

type RemovePlayerRejected struct {
	MapID  string
	Reason string
	Seq    uint64
}

type ValidateMove struct {
	PlayerID string
	Position models.Position
	ReplyTo  *actor.PID
	Seq      uint64
}

type MoveAccepted struct {
	Position models.Position
	Seq      uint64
}

type MoveRejected struct {
	Position models.Position
	Reason   string
	Seq      uint64
}

type Subscribe struct {
	Subscriber *actor.PID
}

type Unsubscribe struct {
	Subscriber *actor.PID
}

type StartFight struct {
	ChallengerID string
	TargetID     string
	Challenger   *actor.PID
	Target       *actor.PID
}

// ChallengeRejected tells a challenger that no fight was started
type ChallengeRejected struct {
	TargetID string
	Reason   string
}

// ChallengeReceived is delivered to the target of a challenge
type ChallengeReceived struct {
	ChallengerID string
	MapID        string
	Challenger   *actor.PID
}

// fightFinished is sent by a fight actor to its parent map
type fightFinished struct {
	Record models.FightRecord
}

// Fight protocol

type PlayCard struct {
	PlayerID string
	CardID   string
	ReplyTo  *actor.PID
}

type EndTurn struct {
	PlayerID string
	ReplyTo  *actor.PID
}

type PlayerDisconnected struct {
	PlayerID string
}

type EndFight struct {
	WinnerID string
	LoserID  string
	Reason   string
}

// FightAssigned tells a participant which fight actor it now belongs to
type FightAssigned struct {
	Fight   *actor.PID
	Started messages.FightStarted
}

// FightOver tells a participant its fight has ended
type FightOver struct {
	Ended messages.FightEnded
}
