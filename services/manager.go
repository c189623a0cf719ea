package services

import (
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/combat"
	"github.com/smidy/ChickenFight-sub000/config"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
	"github.com/smidy/ChickenFight-sub000/persistence"
)

// ManagerOptions configures the root actor
type ManagerOptions struct {
	Maps           []config.MapConfig
	Store          persistence.Storage
	Resolver       *combat.Resolver
	PendingTimeout time.Duration
	Seed           int64
	Logger         *log.Logger
}

type liveMap struct {
	pid  *actor.PID
	info messages.MapInfo
}

// Manager is the root actor: it spawns the maps, creates player actors and keeps
// the registry used to locate players by id.
type Manager struct {
	opts     ManagerOptions
	maps     map[string]*liveMap
	mapOrder []string
	players  map[string]*actor.PID
	rng      *rand.Rand
	logger   *log.Logger
}

// NewManager creates the root actor
func NewManager(opts ManagerOptions) *Manager {
	if opts.Resolver == nil {
		opts.Resolver = combat.NewResolver()
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Manager{
		opts:    opts,
		maps:    make(map[string]*liveMap),
		players: make(map[string]*actor.PID),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		logger:  opts.Logger,
	}
}

func (m *Manager) Receive(ctx *actor.Context, msg actor.Message) {
	switch msg := msg.(type) {
	case actor.Started:
		m.spawnMaps(ctx)
	case CreatePlayer:
		m.createPlayer(ctx, msg)
	case UnregisterPlayer:
		delete(m.players, msg.PlayerID)
	case GetMapList:
		msg.ReplyTo.Send(MapList{Maps: m.mapList()})
	case JoinMap:
		lm, ok := m.maps[msg.MapID]
		if !ok {
			msg.ReplyTo.Send(AddPlayerRejected{MapID: msg.MapID, Reason: ErrMapNotFound.Error(), Seq: msg.Seq})
			return
		}
		lm.pid.Send(AddPlayer{PlayerID: msg.PlayerID, Name: msg.Name, ReplyTo: msg.ReplyTo, Seq: msg.Seq})
	case EvictPlayer:
		if lm, ok := m.maps[msg.MapID]; ok {
			lm.pid.Send(RemovePlayer{PlayerID: msg.PlayerID})
		}
	case ChallengePlayer:
		target, ok := m.players[msg.TargetID]
		if !ok {
			msg.Challenger.Send(ChallengeRejected{TargetID: msg.TargetID, Reason: ErrPlayerNotFound.Error()})
			return
		}
		target.Send(ChallengeReceived{ChallengerID: msg.ChallengerID, MapID: msg.MapID, Challenger: msg.Challenger})
	case MapPopulationChanged:
		if lm, ok := m.maps[msg.MapID]; ok {
			lm.info.CurrentPlayerCount = msg.Count
		}
	case ArchiveFight:
		m.archive(msg.Record)
	case actor.Stopping:
		for _, pid := range m.players {
			pid.Send(Disconnect{})
		}
		for _, lm := range m.maps {
			lm.pid.Stop()
		}
	default:
		m.logger.Printf("Manager: unexpected message %T", msg)
	}
}

func (m *Manager) spawnMaps(ctx *actor.Context) {
	for _, def := range m.opts.Maps {
		layout, err := m.loadLayout(def)
		if err != nil {
			m.logger.Printf("Manager: skipping map %s: %v", def.ID, err)
			continue
		}
		grid, err := models.NewGameMap(layout)
		if err != nil {
			m.logger.Printf("Manager: skipping map %s: %v", def.ID, err)
			continue
		}
		rng := rand.New(rand.NewSource(m.rng.Int63()))
		pid := actor.Spawn("map/"+def.ID, ctx.Self(), NewMapActor(grid, m.opts.Resolver, rng, m.logger))
		m.maps[def.ID] = &liveMap{
			pid:  pid,
			info: messages.MapInfo{ID: grid.ID, Name: grid.Name, Width: grid.Width, Height: grid.Height},
		}
		m.mapOrder = append(m.mapOrder, def.ID)
	}
	m.logger.Printf("Manager: %d maps online", len(m.mapOrder))
}

// loadLayout returns the stored layout of a map, seeding and saving one when none exists
func (m *Manager) loadLayout(def config.MapConfig) (*models.MapLayout, error) {
	if m.opts.Store != nil {
		layout, err := m.opts.Store.LoadMapLayout(def.ID)
		if err == nil {
			return layout, nil
		}
		if !errors.Is(err, persistence.ErrNotFound) {
			m.logger.Printf("Manager: failed to load map %s, seeding: %v", def.ID, err)
		}
	}

	layout, err := models.NewSeededLayout(def.ID, def.Name, def.Width, def.Height, def.Terrain)
	if err != nil {
		return nil, err
	}
	if m.opts.Store != nil {
		if err := m.opts.Store.SaveMapLayout(layout); err != nil {
			m.logger.Printf("Manager: failed to save map %s: %v", def.ID, err)
		}
	}
	return layout, nil
}

func (m *Manager) createPlayer(ctx *actor.Context, msg CreatePlayer) {
	if _, exists := m.players[msg.PlayerID]; exists {
		msg.ReplyTo.Send(PlayerCreated{PlayerID: msg.PlayerID, Err: ErrPlayerExists})
		return
	}
	player := NewPlayerActor(msg.PlayerID, msg.Name, msg.Sink, ctx.Self(), m.opts.PendingTimeout, m.logger)
	pid := actor.Spawn("player/"+msg.PlayerID, ctx.Self(), player)
	m.players[msg.PlayerID] = pid
	msg.ReplyTo.Send(PlayerCreated{PlayerID: msg.PlayerID, PID: pid})
}

func (m *Manager) mapList() []messages.MapInfo {
	list := make([]messages.MapInfo, 0, len(m.mapOrder))
	for _, id := range m.mapOrder {
		list = append(list, m.maps[id].info)
	}
	return list
}

func (m *Manager) archive(record models.FightRecord) {
	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.SaveFightRecord(&record); err != nil {
		m.logger.Printf("Manager: failed to archive fight %s: %v", record.FightID, err)
	}
}
