package services

import (
	"log"
	"time"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
)

type pendingKind int

const (
	pendingJoin pendingKind = iota
	pendingMove
	pendingLeave
)

// pendingOp is one in-flight request awaiting a reply from a map
type pendingOp struct {
	seq      uint64
	mapID    string
	position models.Position
	timer    *time.Timer
}

// pendingTimeout fires when a pending request got no reply in time
type pendingTimeout struct {
	kind pendingKind
	seq  uint64
}

// PlayerActor mediates between one client connection and the map and fight actors.
// It owns the session's Player and the correlation state of its in-flight requests.
type PlayerActor struct {
	player  models.Player
	sink    ClientSink
	manager *actor.PID
	mapPID  *actor.PID
	fight   *actor.PID
	pending map[pendingKind]*pendingOp
	seq     uint64
	timeout time.Duration
	logger  *log.Logger
}

// NewPlayerActor creates the actor for a connected session
func NewPlayerActor(id, name string, sink ClientSink, manager *actor.PID, timeout time.Duration, logger *log.Logger) *PlayerActor {
	return &PlayerActor{
		player:  models.Player{ID: id, Name: name},
		sink:    sink,
		manager: manager,
		pending: make(map[pendingKind]*pendingOp),
		timeout: timeout,
		logger:  logger,
	}
}

func (p *PlayerActor) Receive(ctx *actor.Context, msg actor.Message) {
	switch msg := msg.(type) {
	case actor.Started:
		p.logger.Printf("Player %s session started", p.player.ID)

	// client requests
	case messages.IDRequest:
		p.send(messages.IDResponse{PlayerID: p.player.ID})
	case messages.MapListRequest:
		p.manager.Send(GetMapList{ReplyTo: ctx.Self()})
	case messages.JoinMapRequest:
		p.requestJoin(ctx, msg)
	case messages.LeaveMapRequest:
		p.requestLeave(ctx, msg)
	case messages.MoveRequest:
		p.requestMove(ctx, msg)
	case messages.FightChallengeRequest:
		p.requestChallenge(ctx, msg)
	case messages.PlayCardRequest:
		if !p.player.InFight() {
			p.send(messages.PlayCardFailed{CardID: msg.CardID, Error: ErrNotInFight.Error()})
			return
		}
		p.fight.Send(PlayCard{PlayerID: p.player.ID, CardID: msg.CardID, ReplyTo: ctx.Self()})
	case messages.EndTurnRequest:
		if !p.player.InFight() {
			p.send(messages.EndTurnFailed{Error: ErrNotInFight.Error()})
			return
		}
		p.fight.Send(EndTurn{PlayerID: p.player.ID, ReplyTo: ctx.Self()})

	// replies
	case MapList:
		p.send(messages.MapListResponse{Maps: msg.Maps})
	case AddPlayerAccepted:
		p.joinAccepted(msg)
	case AddPlayerRejected:
		if op := p.settle(pendingJoin, msg.Seq); op != nil {
			p.send(messages.JoinMapFailed{MapID: op.mapID, Error: msg.Reason})
		}
	case RemovePlayerAccepted:
		p.leaveAccepted(msg)
	case RemovePlayerRejected:
		if op := p.settle(pendingLeave, msg.Seq); op != nil {
			p.send(messages.LeaveMapFailed{MapID: op.mapID, Error: msg.Reason})
		}
	case MoveAccepted:
		p.moveAccepted(msg)
	case MoveRejected:
		if op := p.settle(pendingMove, msg.Seq); op != nil {
			p.send(messages.MoveFailed{Position: op.position, Error: msg.Reason})
		}
	case pendingTimeout:
		p.expire(msg)

	// fights
	case ChallengeReceived:
		p.challenged(ctx, msg)
	case ChallengeRejected:
		p.send(messages.FightChallengeFailed{TargetID: msg.TargetID, Error: msg.Reason})
	case FightAssigned:
		p.player.CurrentFightID = msg.Started.FightID
		p.fight = msg.Fight
		p.send(msg.Started)
	case FightOver:
		if msg.Ended.FightID != p.player.CurrentFightID {
			return
		}
		p.player.CurrentFightID = ""
		p.fight = nil
		p.send(msg.Ended)

	case Notify:
		p.send(msg.Message)
	case Disconnect:
		p.disconnect(ctx)
	case actor.Stopping:
		for kind := range p.pending {
			p.clear(kind)
		}
	case messages.Message:
		p.logger.Printf("Player %s: dropping unsupported request %s", p.player.ID, msg.MessageType())
	default:
		p.logger.Printf("Player %s: unexpected message %T", p.player.ID, msg)
	}
}

func (p *PlayerActor) requestJoin(ctx *actor.Context, msg messages.JoinMapRequest) {
	switch {
	case p.pending[pendingJoin] != nil:
		p.send(messages.JoinMapFailed{MapID: msg.MapID, Error: ErrJoinInProgress.Error()})
		return
	case p.player.InMap():
		p.send(messages.JoinMapFailed{MapID: msg.MapID, Error: ErrAlreadyInMap.Error()})
		return
	}
	op := p.arm(ctx, pendingJoin)
	op.mapID = msg.MapID
	p.send(messages.JoinMapInitiated{MapID: msg.MapID})
	p.manager.Send(JoinMap{MapID: msg.MapID, PlayerID: p.player.ID, Name: p.player.Name, ReplyTo: ctx.Self(), Seq: op.seq})
}

func (p *PlayerActor) joinAccepted(msg AddPlayerAccepted) {
	if p.settle(pendingJoin, msg.Seq) == nil {
		// the client was already told the join failed
		p.logger.Printf("Player %s: late join of map %s, undoing", p.player.ID, msg.MapID)
		msg.Map.Send(RemovePlayer{PlayerID: p.player.ID})
		return
	}
	pos := msg.Position
	p.player.CurrentMapID = msg.MapID
	p.player.Position = &pos
	p.mapPID = msg.Map
	p.send(messages.JoinMapCompleted{MapID: msg.MapID, Position: pos, Tilemap: msg.Tilemap, Players: msg.Players})
}

func (p *PlayerActor) requestLeave(ctx *actor.Context, msg messages.LeaveMapRequest) {
	var err error
	switch {
	case p.pending[pendingLeave] != nil:
		err = ErrLeaveInProgress
	case !p.player.InMap() || (msg.MapID != "" && msg.MapID != p.player.CurrentMapID):
		err = ErrNotInMap
	case p.player.InFight():
		err = ErrLeaveDuringFight
	}
	if err != nil {
		p.send(messages.LeaveMapFailed{MapID: msg.MapID, Error: err.Error()})
		return
	}
	op := p.arm(ctx, pendingLeave)
	op.mapID = p.player.CurrentMapID
	p.send(messages.LeaveMapInitiated{MapID: op.mapID})
	p.mapPID.Send(RemovePlayer{PlayerID: p.player.ID, ReplyTo: ctx.Self(), Seq: op.seq})
}

func (p *PlayerActor) leaveAccepted(msg RemovePlayerAccepted) {
	op := p.settle(pendingLeave, msg.Seq)
	if msg.MapID != p.player.CurrentMapID {
		return
	}
	p.player.CurrentMapID = ""
	p.player.Position = nil
	p.mapPID = nil
	if op != nil {
		p.send(messages.LeaveMapCompleted{MapID: msg.MapID})
	} else {
		p.send(messages.PlayerLeftMap{PlayerID: p.player.ID})
	}
}

func (p *PlayerActor) requestMove(ctx *actor.Context, msg messages.MoveRequest) {
	var err error
	switch {
	case p.pending[pendingMove] != nil:
		err = ErrMoveInProgress
	case !p.player.InMap():
		err = ErrNotInMap
	case p.player.InFight():
		err = ErrMoveDuringFight
	}
	if err != nil {
		p.send(messages.MoveFailed{Position: msg.Position, Error: err.Error()})
		return
	}
	op := p.arm(ctx, pendingMove)
	op.position = msg.Position
	p.send(messages.MoveInitiated{Position: msg.Position})
	p.mapPID.Send(ValidateMove{PlayerID: p.player.ID, Position: msg.Position, ReplyTo: ctx.Self(), Seq: op.seq})
}

func (p *PlayerActor) moveAccepted(msg MoveAccepted) {
	op := p.settle(pendingMove, msg.Seq)
	if !p.player.InMap() {
		return
	}
	pos := msg.Position
	p.player.Position = &pos
	if op != nil {
		p.send(messages.MoveCompleted{Position: pos})
	} else {
		// the map moved us after the client saw a timeout
		p.send(messages.PlayerPositionChanged{PlayerID: p.player.ID, Position: pos})
	}
}

func (p *PlayerActor) requestChallenge(ctx *actor.Context, msg messages.FightChallengeRequest) {
	var err error
	switch {
	case p.player.InFight():
		err = ErrAlreadyInFight
	case !p.player.InMap():
		err = ErrNotInMap
	case msg.TargetID == p.player.ID:
		err = ErrChallengeSelf
	}
	if err != nil {
		p.send(messages.FightChallengeFailed{TargetID: msg.TargetID, Error: err.Error()})
		return
	}
	p.manager.Send(ChallengePlayer{
		ChallengerID: p.player.ID,
		TargetID:     msg.TargetID,
		MapID:        p.player.CurrentMapID,
		Challenger:   ctx.Self(),
	})
}

// challenged auto-accepts and asks the shared map to start the fight
func (p *PlayerActor) challenged(ctx *actor.Context, msg ChallengeReceived) {
	if !p.player.InMap() || p.player.CurrentMapID != msg.MapID {
		msg.Challenger.Send(ChallengeRejected{TargetID: p.player.ID, Reason: ErrTargetNotOnMap.Error()})
		return
	}
	if p.player.InFight() {
		msg.Challenger.Send(ChallengeRejected{TargetID: p.player.ID, Reason: models.ErrPlayerInFight.Error()})
		return
	}
	p.send(messages.FightChallengeReceived{ChallengerID: msg.ChallengerID})
	p.mapPID.Send(StartFight{
		ChallengerID: msg.ChallengerID,
		TargetID:     p.player.ID,
		Challenger:   msg.Challenger,
		Target:       ctx.Self(),
	})
}

func (p *PlayerActor) disconnect(ctx *actor.Context) {
	if p.fight != nil {
		p.fight.Send(PlayerDisconnected{PlayerID: p.player.ID})
	}
	if p.mapPID != nil {
		p.mapPID.Send(RemovePlayer{PlayerID: p.player.ID})
	}
	if op := p.pending[pendingJoin]; op != nil {
		p.manager.Send(EvictPlayer{MapID: op.mapID, PlayerID: p.player.ID})
	}
	p.manager.Send(UnregisterPlayer{PlayerID: p.player.ID})
	p.logger.Printf("Player %s disconnected", p.player.ID)
	ctx.Stop()
}

// arm opens a pending slot and starts its timeout
func (p *PlayerActor) arm(ctx *actor.Context, kind pendingKind) *pendingOp {
	p.seq++
	op := &pendingOp{seq: p.seq}
	if p.timeout > 0 {
		op.timer = actor.SendAfter(ctx.Self(), p.timeout, pendingTimeout{kind: kind, seq: op.seq})
	}
	p.pending[kind] = op
	return op
}

// settle closes the pending slot if seq matches it; a nil result means the reply is stale
func (p *PlayerActor) settle(kind pendingKind, seq uint64) *pendingOp {
	op := p.pending[kind]
	if op == nil || op.seq != seq {
		return nil
	}
	p.clear(kind)
	return op
}

func (p *PlayerActor) clear(kind pendingKind) {
	if op := p.pending[kind]; op != nil && op.timer != nil {
		op.timer.Stop()
	}
	delete(p.pending, kind)
}

func (p *PlayerActor) expire(msg pendingTimeout) {
	op := p.settle(msg.kind, msg.seq)
	if op == nil {
		return
	}
	reason := ErrRequestTimedOut.Error()
	switch msg.kind {
	case pendingJoin:
		p.send(messages.JoinMapFailed{MapID: op.mapID, Error: reason})
	case pendingMove:
		p.send(messages.MoveFailed{Position: op.position, Error: reason})
	case pendingLeave:
		p.send(messages.LeaveMapFailed{MapID: op.mapID, Error: reason})
	}
}

func (p *PlayerActor) send(msg messages.Message) {
	if err := p.sink.SendMessage(msg); err != nil {
		p.logger.Printf("Player %s: failed to send %s: %v", p.player.ID, msg.MessageType(), err)
	}
}
