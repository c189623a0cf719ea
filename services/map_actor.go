package services

import (
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/cards"
	"github.com/smidy/ChickenFight-sub000/combat"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
)

// MapActor owns one live map. Its grid, residents and subscribers are only touched
// from Receive.
type MapActor struct {
	grid        *models.GameMap
	members     map[string]*actor.PID // playerID -> player actor
	subscribers map[string]*actor.PID // pid id -> subscriber
	fights      map[string]*actor.PID // fightID -> fight actor
	resolver    *combat.Resolver
	rng         *rand.Rand
	logger      *log.Logger
}

// NewMapActor creates the actor for a live map
func NewMapActor(grid *models.GameMap, resolver *combat.Resolver, rng *rand.Rand, logger *log.Logger) *MapActor {
	return &MapActor{
		grid:        grid,
		members:     make(map[string]*actor.PID),
		subscribers: make(map[string]*actor.PID),
		fights:      make(map[string]*actor.PID),
		resolver:    resolver,
		rng:         rng,
		logger:      logger,
	}
}

func (m *MapActor) Receive(ctx *actor.Context, msg actor.Message) {
	switch msg := msg.(type) {
	case actor.Started:
		m.logger.Printf("Map %s (%s) online, %dx%d", m.grid.ID, m.grid.Name, m.grid.Width, m.grid.Height)
	case AddPlayer:
		m.addPlayer(ctx, msg)
	case RemovePlayer:
		m.removePlayer(ctx, msg)
	case ValidateMove:
		m.validateMove(msg)
	case Subscribe:
		if msg.Subscriber != nil {
			m.subscribers[msg.Subscriber.ID()] = msg.Subscriber
		}
	case Unsubscribe:
		if msg.Subscriber != nil {
			delete(m.subscribers, msg.Subscriber.ID())
		}
	case StartFight:
		m.startFight(ctx, msg)
	case fightFinished:
		m.fightFinished(ctx, msg)
	case actor.Stopping:
		for _, f := range m.fights {
			f.Stop()
		}
	default:
		m.logger.Printf("Map %s: unexpected message %T", m.grid.ID, msg)
	}
}

func (m *MapActor) addPlayer(ctx *actor.Context, msg AddPlayer) {
	pos, err := m.grid.AddPlayer(msg.PlayerID, msg.Name)
	if err != nil {
		msg.ReplyTo.Send(AddPlayerRejected{MapID: m.grid.ID, Reason: err.Error(), Seq: msg.Seq})
		return
	}
	m.broadcast(messages.PlayerJoinedMap{PlayerID: msg.PlayerID, Name: msg.Name, Position: pos}, msg.PlayerID)
	if msg.ReplyTo != nil {
		m.members[msg.PlayerID] = msg.ReplyTo
		m.subscribers[msg.ReplyTo.ID()] = msg.ReplyTo
	}
	m.reportPopulation(ctx)
	msg.ReplyTo.Send(AddPlayerAccepted{
		MapID:    m.grid.ID,
		Map:      ctx.Self(),
		Position: pos,
		Tilemap:  messages.Tilemap{Width: m.grid.Width, Height: m.grid.Height, Tiles: m.grid.TileSnapshot()},
		Players:  m.grid.Snapshot(msg.PlayerID),
		Seq:      msg.Seq,
	})
	m.logger.Printf("Player %s joined map %s at (%d,%d)", msg.PlayerID, m.grid.ID, pos.X, pos.Y)
}

func (m *MapActor) removePlayer(ctx *actor.Context, msg RemovePlayer) {
	// a fighter leaving the map forfeits, even before its player learned of the fight
	if fight, ok := m.fights[m.grid.FightOf(msg.PlayerID)]; ok {
		fight.Send(PlayerDisconnected{PlayerID: msg.PlayerID})
	}
	if err := m.grid.RemovePlayer(msg.PlayerID); err != nil {
		msg.ReplyTo.Send(RemovePlayerRejected{MapID: m.grid.ID, Reason: err.Error(), Seq: msg.Seq})
		return
	}
	if pid, ok := m.members[msg.PlayerID]; ok {
		delete(m.subscribers, pid.ID())
		delete(m.members, msg.PlayerID)
	}
	m.broadcast(messages.PlayerLeftMap{PlayerID: msg.PlayerID}, msg.PlayerID)
	m.reportPopulation(ctx)
	msg.ReplyTo.Send(RemovePlayerAccepted{MapID: m.grid.ID, Seq: msg.Seq})
	m.logger.Printf("Player %s left map %s", msg.PlayerID, m.grid.ID)
}

func (m *MapActor) validateMove(msg ValidateMove) {
	if m.grid.FightOf(msg.PlayerID) != "" {
		msg.ReplyTo.Send(MoveRejected{Position: msg.Position, Reason: ErrMoveDuringFight.Error(), Seq: msg.Seq})
		return
	}
	if err := m.grid.ValidateMove(msg.PlayerID, msg.Position); err != nil {
		msg.ReplyTo.Send(MoveRejected{Position: msg.Position, Reason: err.Error(), Seq: msg.Seq})
		return
	}
	m.broadcast(messages.PlayerPositionChanged{PlayerID: msg.PlayerID, Position: msg.Position}, msg.PlayerID)
	msg.ReplyTo.Send(MoveAccepted{Position: msg.Position, Seq: msg.Seq})
}

func (m *MapActor) available(playerID string) bool {
	_, present := m.grid.PlayerPosition(playerID)
	return present && m.grid.FightOf(playerID) == ""
}

func (m *MapActor) startFight(ctx *actor.Context, msg StartFight) {
	if msg.ChallengerID == msg.TargetID || !m.available(msg.ChallengerID) || !m.available(msg.TargetID) {
		reason := models.ErrPlayerInFight.Error()
		msg.Challenger.Send(ChallengeRejected{TargetID: msg.TargetID, Reason: reason})
		if msg.ChallengerID != msg.TargetID {
			// the target already saw the challenge arrive
			msg.Target.Send(ChallengeRejected{TargetID: msg.ChallengerID, Reason: reason})
		}
		return
	}

	fightID := uuid.NewString()
	fight := NewFightActor(FightSetup{
		ID:       fightID,
		MapID:    m.grid.ID,
		Player1:  Participant{ID: msg.ChallengerID, PID: msg.Challenger},
		Player2:  Participant{ID: msg.TargetID, PID: msg.Target},
		Deck1:    cards.StarterDeck(m.rng),
		Deck2:    cards.StarterDeck(m.rng),
		Resolver: m.resolver,
		Rand:     rand.New(rand.NewSource(m.rng.Int63())),
		Logger:   m.logger,
	})
	m.fights[fightID] = actor.Spawn("fight/"+fightID, ctx.Self(), fight)

	for _, id := range []string{msg.ChallengerID, msg.TargetID} {
		m.grid.SetFight(id, fightID)
		m.broadcast(messages.PlayerFightStatus{PlayerID: id, FightID: fightID}, "")
	}
	m.logger.Printf("Fight %s started on map %s: %s vs %s", fightID, m.grid.ID, msg.ChallengerID, msg.TargetID)
}

func (m *MapActor) fightFinished(ctx *actor.Context, msg fightFinished) {
	rec := msg.Record
	delete(m.fights, rec.FightID)
	for _, id := range []string{rec.WinnerID, rec.LoserID} {
		if m.grid.FightOf(id) != rec.FightID {
			continue
		}
		m.grid.SetFight(id, "")
		m.broadcast(messages.PlayerFightStatus{PlayerID: id}, "")
	}
	ctx.Parent().Send(ArchiveFight{Record: rec})
}

func (m *MapActor) reportPopulation(ctx *actor.Context) {
	ctx.Parent().Send(MapPopulationChanged{MapID: m.grid.ID, Count: m.grid.PlayerCount()})
}

// broadcast sends msg to every subscriber except the actor of excludePlayer
func (m *MapActor) broadcast(msg messages.Message, excludePlayer string) {
	skip := ""
	if pid, ok := m.members[excludePlayer]; ok {
		skip = pid.ID()
	}
	for id, sub := range m.subscribers {
		if id == skip {
			continue
		}
		sub.Send(Notify{Message: msg})
	}
}
