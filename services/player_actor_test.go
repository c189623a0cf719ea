package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
)

type playerHarness struct {
	player  *actor.PID
	client  *recorder
	manager *probe
	mapPID  *probe
}

func spawnPlayer(t *testing.T, timeout time.Duration) *playerHarness {
	t.Helper()
	h := &playerHarness{
		client:  newRecorder(),
		manager: newProbe(t, "manager"),
		mapPID:  newProbe(t, "map/map1"),
	}
	h.player = actor.Spawn("player/p1", nil, NewPlayerActor("p1", "Pip", h.client, h.manager.pid, timeout, quietLogger()))
	t.Cleanup(h.player.Stop)
	return h
}

// enterMap completes a join through the probes
func (h *playerHarness) enterMap(t *testing.T) {
	t.Helper()
	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	req := next[JoinMap](t, h.manager.ch)
	h.player.Send(AddPlayerAccepted{MapID: "map1", Map: h.mapPID.pid, Position: models.Position{X: 2, Y: 3}, Seq: req.Seq})
	next[messages.JoinMapCompleted](t, h.client.ch)
}

func TestPlayerActor_IDRequest(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.player.Send(messages.IDRequest{})
	assert.Equal(t, messages.IDResponse{PlayerID: "p1"}, next[messages.IDResponse](t, h.client.ch))
}

func TestPlayerActor_MapList(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.player.Send(messages.MapListRequest{})
	req := next[GetMapList](t, h.manager.ch)
	req.ReplyTo.Send(MapList{Maps: []messages.MapInfo{{ID: "map1", CurrentPlayerCount: 2}}})

	resp := next[messages.MapListResponse](t, h.client.ch)
	require.Len(t, resp.Maps, 1)
	assert.Equal(t, 2, resp.Maps[0].CurrentPlayerCount)
}

func TestPlayerActor_JoinFlow(t *testing.T) {
	h := spawnPlayer(t, 0)

	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	h.player.Send(messages.JoinMapRequest{MapID: "map2"})

	assert.Equal(t, messages.JoinMapInitiated{MapID: "map1"}, next[messages.JoinMapInitiated](t, h.client.ch))
	failed := next[messages.JoinMapFailed](t, h.client.ch)
	assert.Equal(t, messages.JoinMapFailed{MapID: "map2", Error: "Join already in progress"}, failed)

	req := next[JoinMap](t, h.manager.ch)
	assert.Equal(t, "p1", req.PlayerID)
	assert.Equal(t, "Pip", req.Name)
	h.player.Send(AddPlayerAccepted{MapID: "map1", Map: h.mapPID.pid, Position: models.Position{X: 2, Y: 3}, Seq: req.Seq})

	done := next[messages.JoinMapCompleted](t, h.client.ch)
	assert.Equal(t, models.Position{X: 2, Y: 3}, done.Position)

	h.player.Send(messages.JoinMapRequest{MapID: "map2"})
	assert.Equal(t, "Already in a map", next[messages.JoinMapFailed](t, h.client.ch).Error)
}

func TestPlayerActor_JoinRejected(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.player.Send(messages.JoinMapRequest{MapID: "nowhere"})
	req := next[JoinMap](t, h.manager.ch)
	h.player.Send(AddPlayerRejected{MapID: "nowhere", Reason: "Map not found", Seq: req.Seq})
	assert.Equal(t, messages.JoinMapFailed{MapID: "nowhere", Error: "Map not found"}, next[messages.JoinMapFailed](t, h.client.ch))

	// the slot is free again
	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	next[JoinMap](t, h.manager.ch)
}

func TestPlayerActor_JoinTimeout(t *testing.T) {
	h := spawnPlayer(t, 20*time.Millisecond)

	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	req := next[JoinMap](t, h.manager.ch)
	failed := next[messages.JoinMapFailed](t, h.client.ch)
	assert.Equal(t, messages.JoinMapFailed{MapID: "map1", Error: "Request timed out"}, failed)

	// a late acceptance is rolled back on the map
	h.player.Send(AddPlayerAccepted{MapID: "map1", Map: h.mapPID.pid, Seq: req.Seq})
	assert.Equal(t, "p1", next[RemovePlayer](t, h.mapPID.ch).PlayerID)

	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	retry := next[JoinMap](t, h.manager.ch)
	assert.Greater(t, retry.Seq, req.Seq)
}

func TestPlayerActor_MoveFlow(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.enterMap(t)

	target := models.Position{X: 3, Y: 3}
	h.player.Send(messages.MoveRequest{Position: target})
	h.player.Send(messages.MoveRequest{Position: models.Position{X: 1, Y: 3}})

	assert.Equal(t, messages.MoveInitiated{Position: target}, next[messages.MoveInitiated](t, h.client.ch))
	assert.Equal(t, "Move already in progress", next[messages.MoveFailed](t, h.client.ch).Error)

	req := next[ValidateMove](t, h.mapPID.ch)
	assert.Equal(t, target, req.Position)
	h.player.Send(MoveRejected{Position: target, Reason: "Invalid move", Seq: req.Seq})
	assert.Equal(t, messages.MoveFailed{Position: target, Error: "Invalid move"}, next[messages.MoveFailed](t, h.client.ch))

	h.player.Send(messages.MoveRequest{Position: target})
	req = next[ValidateMove](t, h.mapPID.ch)
	h.player.Send(MoveAccepted{Position: target, Seq: req.Seq})
	assert.Equal(t, messages.MoveCompleted{Position: target}, next[messages.MoveCompleted](t, h.client.ch))
}

func TestPlayerActor_StaleMoveReplyIsIgnored(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.enterMap(t)

	h.player.Send(messages.MoveRequest{Position: models.Position{X: 3, Y: 3}})
	req := next[ValidateMove](t, h.mapPID.ch)
	h.player.Send(MoveRejected{Reason: "Invalid move", Seq: req.Seq + 10})
	h.player.Send(MoveAccepted{Position: req.Position, Seq: req.Seq})

	next[messages.MoveInitiated](t, h.client.ch)
	msg := next[messages.Message](t, h.client.ch)
	assert.Equal(t, messages.MoveCompleted{Position: req.Position}, msg)
}

func TestPlayerActor_LeaveFlow(t *testing.T) {
	h := spawnPlayer(t, 0)

	h.player.Send(messages.LeaveMapRequest{})
	assert.Equal(t, "Not in a map", next[messages.LeaveMapFailed](t, h.client.ch).Error)

	h.enterMap(t)
	h.player.Send(messages.LeaveMapRequest{MapID: "map2"})
	assert.Equal(t, "Not in a map", next[messages.LeaveMapFailed](t, h.client.ch).Error)

	h.player.Send(messages.LeaveMapRequest{MapID: "map1"})
	h.player.Send(messages.LeaveMapRequest{MapID: "map1"})
	assert.Equal(t, messages.LeaveMapInitiated{MapID: "map1"}, next[messages.LeaveMapInitiated](t, h.client.ch))
	assert.Equal(t, "Leave already in progress", next[messages.LeaveMapFailed](t, h.client.ch).Error)

	req := next[RemovePlayer](t, h.mapPID.ch)
	h.player.Send(RemovePlayerAccepted{MapID: "map1", Seq: req.Seq})
	assert.Equal(t, messages.LeaveMapCompleted{MapID: "map1"}, next[messages.LeaveMapCompleted](t, h.client.ch))

	h.player.Send(messages.MoveRequest{Position: models.Position{X: 1, Y: 1}})
	assert.Equal(t, "Not in a map", next[messages.MoveFailed](t, h.client.ch).Error)
}

func TestPlayerActor_Validation(t *testing.T) {
	h := spawnPlayer(t, 0)

	h.player.Send(messages.FightChallengeRequest{TargetID: "p2"})
	assert.Equal(t, "Not in a map", next[messages.FightChallengeFailed](t, h.client.ch).Error)

	h.player.Send(messages.PlayCardRequest{CardID: "atk_001"})
	assert.Equal(t, messages.PlayCardFailed{CardID: "atk_001", Error: "Not in a fight"}, next[messages.PlayCardFailed](t, h.client.ch))

	h.player.Send(messages.EndTurnRequest{})
	assert.Equal(t, "Not in a fight", next[messages.EndTurnFailed](t, h.client.ch).Error)

	h.enterMap(t)
	h.player.Send(messages.FightChallengeRequest{TargetID: "p1"})
	assert.Equal(t, "Cannot challenge yourself", next[messages.FightChallengeFailed](t, h.client.ch).Error)

	h.player.Send(messages.FightChallengeRequest{TargetID: "p2"})
	challenge := next[ChallengePlayer](t, h.manager.ch)
	assert.Equal(t, ChallengePlayer{ChallengerID: "p1", TargetID: "p2", MapID: "map1", Challenger: h.player}, challenge)
}

func TestPlayerActor_ChallengeReceived(t *testing.T) {
	h := spawnPlayer(t, 0)
	challenger := newProbe(t, "player/p2")

	h.player.Send(ChallengeReceived{ChallengerID: "p2", MapID: "map1", Challenger: challenger.pid})
	assert.Equal(t, ChallengeRejected{TargetID: "p1", Reason: "Target not on your map"}, next[ChallengeRejected](t, challenger.ch))

	h.enterMap(t)
	h.player.Send(ChallengeReceived{ChallengerID: "p2", MapID: "map1", Challenger: challenger.pid})
	assert.Equal(t, messages.FightChallengeReceived{ChallengerID: "p2"}, next[messages.FightChallengeReceived](t, h.client.ch))

	start := next[StartFight](t, h.mapPID.ch)
	assert.Equal(t, StartFight{ChallengerID: "p2", TargetID: "p1", Challenger: challenger.pid, Target: h.player}, start)
}

func TestPlayerActor_FightLifecycle(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.enterMap(t)
	fight := newProbe(t, "fight/f1")

	h.player.Send(FightAssigned{Fight: fight.pid, Started: messages.FightStarted{FightID: "f1", Player1ID: "p1", Player2ID: "p2"}})
	assert.Equal(t, "f1", next[messages.FightStarted](t, h.client.ch).FightID)

	h.player.Send(messages.MoveRequest{Position: models.Position{X: 2, Y: 4}})
	assert.Equal(t, "Cannot move during a fight", next[messages.MoveFailed](t, h.client.ch).Error)
	h.player.Send(messages.LeaveMapRequest{})
	assert.Equal(t, "Cannot leave map during a fight", next[messages.LeaveMapFailed](t, h.client.ch).Error)
	h.player.Send(messages.FightChallengeRequest{TargetID: "p3"})
	assert.Equal(t, "Already in a fight", next[messages.FightChallengeFailed](t, h.client.ch).Error)

	h.player.Send(messages.PlayCardRequest{CardID: "atk_001"})
	assert.Equal(t, PlayCard{PlayerID: "p1", CardID: "atk_001", ReplyTo: h.player}, next[PlayCard](t, fight.ch))
	h.player.Send(messages.EndTurnRequest{})
	assert.Equal(t, "p1", next[EndTurn](t, fight.ch).PlayerID)

	h.player.Send(Notify{Message: messages.TurnStarted{ActivePlayerID: "p2"}})
	assert.Equal(t, "p2", next[messages.TurnStarted](t, h.client.ch).ActivePlayerID)

	// results of other fights are ignored
	h.player.Send(FightOver{Ended: messages.FightEnded{FightID: "other"}})
	h.player.Send(FightOver{Ended: messages.FightEnded{FightID: "f1", WinnerID: "p1", LoserID: "p2", Reason: ReasonDefeated}})
	assert.Equal(t, "f1", next[messages.FightEnded](t, h.client.ch).FightID)

	h.player.Send(messages.PlayCardRequest{CardID: "atk_001"})
	assert.Equal(t, "Not in a fight", next[messages.PlayCardFailed](t, h.client.ch).Error)
}

func TestPlayerActor_Disconnect(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.enterMap(t)
	fight := newProbe(t, "fight/f1")
	h.player.Send(FightAssigned{Fight: fight.pid, Started: messages.FightStarted{FightID: "f1"}})

	h.player.Send(Disconnect{})

	assert.Equal(t, PlayerDisconnected{PlayerID: "p1"}, next[PlayerDisconnected](t, fight.ch))
	assert.Equal(t, "p1", next[RemovePlayer](t, h.mapPID.ch).PlayerID)
	assert.Equal(t, UnregisterPlayer{PlayerID: "p1"}, next[UnregisterPlayer](t, h.manager.ch))

	select {
	case <-h.player.Done():
	case <-time.After(waitTimeout):
		t.Fatal("player actor did not stop")
	}
}

func TestPlayerActor_DisconnectDuringJoin(t *testing.T) {
	h := spawnPlayer(t, 0)
	h.player.Send(messages.JoinMapRequest{MapID: "map1"})
	h.player.Send(Disconnect{})

	assert.Equal(t, EvictPlayer{MapID: "map1", PlayerID: "p1"}, next[EvictPlayer](t, h.manager.ch))
}
