package messages

import "github.com/smidy/ChickenFight-sub000/models"

// MessageType defines the type of message being sent
type MessageType string

// Client to server
const (
	TypeIDRequest             MessageType = "id_request"
	TypeMapListRequest        MessageType = "map_list_request"
	TypeJoinMapRequest        MessageType = "join_map_request"
	TypeLeaveMapRequest       MessageType = "leave_map_request"
	TypeMoveRequest           MessageType = "move_request"
	TypeFightChallengeRequest MessageType = "fight_challenge_request"
	TypePlayCardRequest       MessageType = "play_card_request"
	TypeEndTurnRequest        MessageType = "end_turn_request"
)

// Server to client
const (
	TypeIDResponse             MessageType = "id_response"
	TypeMapListResponse        MessageType = "map_list_response"
	TypeJoinMapInitiated       MessageType = "join_map_initiated"
	TypeJoinMapCompleted       MessageType = "join_map_completed"
	TypeJoinMapFailed          MessageType = "join_map_failed"
	TypeLeaveMapInitiated      MessageType = "leave_map_initiated"
	TypeLeaveMapCompleted      MessageType = "leave_map_completed"
	TypeLeaveMapFailed         MessageType = "leave_map_failed"
	TypeMoveInitiated          MessageType = "move_initiated"
	TypeMoveCompleted          MessageType = "move_completed"
	TypeMoveFailed             MessageType = "move_failed"
	TypePlayerJoinedMap        MessageType = "player_joined_map"
	TypePlayerLeftMap          MessageType = "player_left_map"
	TypePlayerPositionChanged  MessageType = "player_position_changed"
	TypePlayerFightStatus      MessageType = "player_fight_status"
	TypeFightChallengeReceived MessageType = "fight_challenge_received"
	TypeFightChallengeFailed   MessageType = "fight_challenge_failed"
	TypeFightStarted           MessageType = "fight_started"
	TypeFightEnded             MessageType = "fight_ended"
	TypeCardPlayed             MessageType = "card_played"
	TypePlayCardFailed         MessageType = "play_card_failed"
	TypeEndTurnFailed          MessageType = "end_turn_failed"
	TypeTurnStarted            MessageType = "turn_started"
	TypeTurnEnded              MessageType = "turn_ended"
	TypeEffectApplied          MessageType = "effect_applied"
	TypeFightStateUpdate       MessageType = "fight_state_update"
	TypeError                  MessageType = "error"
)

// Message is implemented by every payload that travels over the wire
type Message interface {
	MessageType() MessageType
}

// IDRequest asks for the session's player id
type IDRequest struct{}

// IDResponse carries the session's player id
type IDResponse struct {
	PlayerID string `json:"playerId"`
}

// MapListRequest asks for the live maps
type MapListRequest struct{}

// MapInfo describes one live map
type MapInfo struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	CurrentPlayerCount int    `json:"currentPlayerCount"`
}

// MapListResponse lists the live maps
type MapListResponse struct {
	Maps []MapInfo `json:"maps"`
}

// JoinMapRequest asks to enter a map
type JoinMapRequest struct {
	MapID string `json:"mapId"`
}

// JoinMapInitiated acknowledges a join request
type JoinMapInitiated struct {
	MapID string `json:"mapId"`
}

// Tilemap is a snapshot of a map's tile grid, row-major
type Tilemap struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Tiles  []int `json:"tiles"`
}

// JoinMapCompleted confirms the join with the starting position and a map snapshot
type JoinMapCompleted struct {
	MapID    string                  `json:"mapId"`
	Position models.Position         `json:"position"`
	Tilemap  Tilemap                 `json:"tilemap"`
	Players  []models.PlayerSnapshot `json:"players"`
}

// JoinMapFailed reports a rejected join
type JoinMapFailed struct {
	MapID string `json:"mapId"`
	Error string `json:"error"`
}

// LeaveMapRequest asks to leave the current map
type LeaveMapRequest struct {
	MapID string `json:"mapId,omitempty"`
}

// LeaveMapInitiated acknowledges a leave request
type LeaveMapInitiated struct {
	MapID string `json:"mapId"`
}

// LeaveMapCompleted confirms the player left
type LeaveMapCompleted struct {
	MapID string `json:"mapId"`
}

// LeaveMapFailed reports a rejected leave
type LeaveMapFailed struct {
	MapID string `json:"mapId,omitempty"`
	Error string `json:"error"`
}

// MoveRequest asks to step onto a cell
type MoveRequest struct {
	Position models.Position `json:"position"`
}

// MoveInitiated acknowledges a move request
type MoveInitiated struct {
	Position models.Position `json:"position"`
}

// MoveCompleted confirms the player's new position
type MoveCompleted struct {
	Position models.Position `json:"position"`
}

// MoveFailed reports a rejected move
type MoveFailed struct {
	Position models.Position `json:"position"`
	Error    string          `json:"error"`
}

// PlayerJoinedMap announces another player on the map
type PlayerJoinedMap struct {
	PlayerID string          `json:"playerId"`
	Name     string          `json:"name"`
	Position models.Position `json:"position"`
}

// PlayerLeftMap announces a player leaving the map
type PlayerLeftMap struct {
	PlayerID string `json:"playerId"`
}

// PlayerPositionChanged announces a move on the map
type PlayerPositionChanged struct {
	PlayerID string          `json:"playerId"`
	Position models.Position `json:"position"`
}

// PlayerFightStatus marks a player as in combat; an empty FightID clears the mark
type PlayerFightStatus struct {
	PlayerID string `json:"playerId"`
	FightID  string `json:"fightId,omitempty"`
}

// FightChallengeRequest challenges another player
type FightChallengeRequest struct {
	TargetID string `json:"targetId"`
}

// FightChallengeReceived tells a player they were challenged
type FightChallengeReceived struct {
	ChallengerID string `json:"challengerId"`
}

// FightChallengeFailed reports a challenge that could not start a fight
type FightChallengeFailed struct {
	TargetID string `json:"targetId"`
	Error    string `json:"error"`
}

// FightStarted announces a new fight
type FightStarted struct {
	FightID   string `json:"fightId"`
	Player1ID string `json:"player1Id"`
	Player2ID string `json:"player2Id"`
}

// FightEnded announces the result of a fight
type FightEnded struct {
	FightID  string `json:"fightId"`
	WinnerID string `json:"winnerId"`
	LoserID  string `json:"loserId"`
	Reason   string `json:"reason"`
}

// PlayCardRequest plays a card from the hand
type PlayCardRequest struct {
	CardID string `json:"cardId"`
}

// CardPlayed announces a resolved card. Card is nil when the card is hidden from
// the receiving opponent.
type CardPlayed struct {
	PlayerID            string       `json:"playerId"`
	Card                *models.Card `json:"card,omitempty"`
	Effect              string       `json:"effect"`
	IsVisibleToOpponent bool         `json:"isVisibleToOpponent"`
}

// PlayCardFailed reports a rejected card play
type PlayCardFailed struct {
	CardID string `json:"cardId"`
	Error  string `json:"error"`
}

// EndTurnRequest ends the player's turn
type EndTurnRequest struct{}

// EndTurnFailed reports a rejected turn end
type EndTurnFailed struct {
	Error string `json:"error"`
}

// TurnStarted announces whose turn it is
type TurnStarted struct {
	ActivePlayerID string `json:"activePlayerId"`
}

// TurnEnded announces that a player ended their turn
type TurnEnded struct {
	PlayerID string `json:"playerId"`
}

// EffectApplied announces one resolved effect
type EffectApplied struct {
	TargetID   string `json:"targetId"`
	EffectType string `json:"effectType"`
	Value      int    `json:"value"`
	Source     string `json:"source"`
}

// FightStateUpdate is the full fight state from the receiver's point of view
type FightStateUpdate struct {
	CurrentTurnPlayerID string             `json:"currentTurnPlayerId"`
	PlayerState         models.FighterView `json:"playerState"`
	OpponentState       models.FighterView `json:"opponentState"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (IDRequest) MessageType() MessageType              { return TypeIDRequest }
func (IDResponse) MessageType() MessageType             { return TypeIDResponse }
func (MapListRequest) MessageType() MessageType         { return TypeMapListRequest }
func (MapListResponse) MessageType() MessageType        { return TypeMapListResponse }
func (JoinMapRequest) MessageType() MessageType         { return TypeJoinMapRequest }
func (JoinMapInitiated) MessageType() MessageType       { return TypeJoinMapInitiated }
func (JoinMapCompleted) MessageType() MessageType       { return TypeJoinMapCompleted }
func (JoinMapFailed) MessageType() MessageType          { return TypeJoinMapFailed }
func (LeaveMapRequest) MessageType() MessageType        { return TypeLeaveMapRequest }
func (LeaveMapInitiated) MessageType() MessageType      { return TypeLeaveMapInitiated }
func (LeaveMapCompleted) MessageType() MessageType      { return TypeLeaveMapCompleted }
func (LeaveMapFailed) MessageType() MessageType         { return TypeLeaveMapFailed }
func (MoveRequest) MessageType() MessageType            { return TypeMoveRequest }
func (MoveInitiated) MessageType() MessageType          { return TypeMoveInitiated }
func (MoveCompleted) MessageType() MessageType          { return TypeMoveCompleted }
func (MoveFailed) MessageType() MessageType             { return TypeMoveFailed }
func (PlayerJoinedMap) MessageType() MessageType        { return TypePlayerJoinedMap }
func (PlayerLeftMap) MessageType() MessageType          { return TypePlayerLeftMap }
func (PlayerPositionChanged) MessageType() MessageType  { return TypePlayerPositionChanged }
func (PlayerFightStatus) MessageType() MessageType      { return TypePlayerFightStatus }
func (FightChallengeRequest) MessageType() MessageType  { return TypeFightChallengeRequest }
func (FightChallengeReceived) MessageType() MessageType { return TypeFightChallengeReceived }
func (FightChallengeFailed) MessageType() MessageType   { return TypeFightChallengeFailed }
func (FightStarted) MessageType() MessageType           { return TypeFightStarted }
func (FightEnded) MessageType() MessageType             { return TypeFightEnded }
func (PlayCardRequest) MessageType() MessageType        { return TypePlayCardRequest }
func (CardPlayed) MessageType() MessageType             { return TypeCardPlayed }
func (PlayCardFailed) MessageType() MessageType         { return TypePlayCardFailed }
func (EndTurnRequest) MessageType() MessageType         { return TypeEndTurnRequest }
func (EndTurnFailed) MessageType() MessageType          { return TypeEndTurnFailed }
func (TurnStarted) MessageType() MessageType            { return TypeTurnStarted }
func (TurnEnded) MessageType() MessageType              { return TypeTurnEnded }
func (EffectApplied) MessageType() MessageType          { return TypeEffectApplied }
func (FightStateUpdate) MessageType() MessageType       { return TypeFightStateUpdate }
func (ErrorMessage) MessageType() MessageType           { return TypeError }
