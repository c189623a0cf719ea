package services

import (
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/smidy/ChickenFight-sub000/actor"
	"github.com/smidy/ChickenFight-sub000/cards"
	"github.com/smidy/ChickenFight-sub000/combat"
	"github.com/smidy/ChickenFight-sub000/messages"
	"github.com/smidy/ChickenFight-sub000/models"
)

// hiddenCardEffect replaces the effect text of cards the opponent may not see
const hiddenCardEffect = "A card was played"

// Participant is one side of a fight
type Participant struct {
	ID  string
	PID *actor.PID
}

// FightSetup holds everything a fight actor needs to start
type FightSetup struct {
	ID       string
	MapID    string
	Player1  Participant
	Player2  Participant
	Deck1    *cards.Deck
	Deck2    *cards.Deck
	Resolver *combat.Resolver
	Rand     *rand.Rand
	Logger   *log.Logger
}

// FightActor owns one FightState. Player1 takes the first turn.
type FightActor struct {
	setup     FightSetup
	state     *combat.FightState
	players   map[string]*actor.PID
	ended     bool
	startedAt time.Time
	logger    *log.Logger
}

// NewFightActor creates the actor for a fight between two players
func NewFightActor(setup FightSetup) *FightActor {
	resolver := setup.Resolver
	if resolver == nil {
		resolver = combat.NewResolver()
	}
	return &FightActor{
		setup: setup,
		state: combat.NewFightState(setup.ID, setup.Player1.ID, setup.Player2.ID,
			setup.Deck1, setup.Deck2, resolver, setup.Rand),
		players: map[string]*actor.PID{
			setup.Player1.ID: setup.Player1.PID,
			setup.Player2.ID: setup.Player2.PID,
		},
		logger: setup.Logger,
	}
}

func (f *FightActor) Receive(ctx *actor.Context, msg actor.Message) {
	switch msg := msg.(type) {
	case actor.Started:
		f.start(ctx)
	case PlayCard:
		if !f.ended {
			f.playCard(ctx, msg)
		}
	case EndTurn:
		if !f.ended {
			f.endTurn(ctx, msg)
		}
	case PlayerDisconnected:
		if f.ended || !f.isParticipant(msg.PlayerID) {
			return
		}
		f.end(ctx, f.state.OpponentOf(msg.PlayerID), msg.PlayerID, ReasonDisconnected)
	case EndFight:
		if f.ended || !f.isParticipant(msg.WinnerID) || !f.isParticipant(msg.LoserID) {
			return
		}
		f.end(ctx, msg.WinnerID, msg.LoserID, msg.Reason)
	case actor.Stopping:
	default:
		f.logger.Printf("Fight %s: unexpected message %T", f.setup.ID, msg)
	}
}

func (f *FightActor) isParticipant(playerID string) bool {
	_, ok := f.players[playerID]
	return ok
}

func (f *FightActor) start(ctx *actor.Context) {
	f.startedAt = time.Now()
	started := messages.FightStarted{
		FightID:   f.setup.ID,
		Player1ID: f.setup.Player1.ID,
		Player2ID: f.setup.Player2.ID,
	}
	for _, pid := range f.players {
		pid.Send(FightAssigned{Fight: ctx.Self(), Started: started})
	}

	notes, err := f.state.StartTurn(f.setup.Player1.ID)
	if err != nil {
		f.logger.Printf("Fight %s: cannot start first turn: %v", f.setup.ID, err)
		return
	}
	f.both(messages.TurnStarted{ActivePlayerID: f.setup.Player1.ID})
	f.announce(notes)
	if f.checkOutcome(ctx, f.setup.Player2.ID) {
		return
	}
	f.sendState()
}

func (f *FightActor) playCard(ctx *actor.Context, msg PlayCard) {
	if !f.isParticipant(msg.PlayerID) {
		msg.ReplyTo.Send(Notify{Message: messages.PlayCardFailed{CardID: msg.CardID, Error: combat.ErrNotParticipant.Error()}})
		return
	}
	card, result, err := f.state.PlayCard(msg.PlayerID, msg.CardID)
	if err != nil {
		f.notify(msg.PlayerID, messages.PlayCardFailed{CardID: msg.CardID, Error: err.Error()})
		return
	}

	visible := card.Type != models.CardTypeUtility
	own := messages.CardPlayed{PlayerID: msg.PlayerID, Card: &card, Effect: result.Description, IsVisibleToOpponent: visible}
	f.notify(msg.PlayerID, own)
	if visible {
		f.notify(f.state.OpponentOf(msg.PlayerID), own)
	} else {
		f.notify(f.state.OpponentOf(msg.PlayerID), messages.CardPlayed{PlayerID: msg.PlayerID, Effect: hiddenCardEffect})
	}
	f.announce(result.Notifications)

	if f.checkOutcome(ctx, msg.PlayerID) {
		return
	}
	f.sendState()
}

func (f *FightActor) endTurn(ctx *actor.Context, msg EndTurn) {
	if !f.isParticipant(msg.PlayerID) {
		msg.ReplyTo.Send(Notify{Message: messages.EndTurnFailed{Error: combat.ErrNotParticipant.Error()}})
		return
	}
	notes, err := f.state.EndTurn(msg.PlayerID)
	if err != nil {
		f.notify(msg.PlayerID, messages.EndTurnFailed{Error: err.Error()})
		return
	}
	f.both(messages.TurnEnded{PlayerID: msg.PlayerID})
	f.both(messages.TurnStarted{ActivePlayerID: f.state.CurrentTurnPlayerID})
	f.announce(notes)

	if f.checkOutcome(ctx, msg.PlayerID) {
		return
	}
	f.sendState()
}

// checkOutcome ends the fight when a participant is down
func (f *FightActor) checkOutcome(ctx *actor.Context, actingID string) bool {
	winner, loser, over := f.state.Outcome(actingID)
	if !over {
		return false
	}
	f.sendState()
	f.end(ctx, winner, loser, ReasonDefeated)
	return true
}

func (f *FightActor) end(ctx *actor.Context, winnerID, loserID, reason string) {
	f.ended = true
	// the map clears its markers before either player can react to the result
	ctx.Parent().Send(fightFinished{Record: models.FightRecord{
		ID:        uuid.NewString(),
		FightID:   f.setup.ID,
		MapID:     f.setup.MapID,
		WinnerID:  winnerID,
		LoserID:   loserID,
		Reason:    reason,
		Turns:     f.state.Turn,
		StartedAt: f.startedAt,
		EndedAt:   time.Now(),
	}})
	ended := messages.FightEnded{FightID: f.setup.ID, WinnerID: winnerID, LoserID: loserID, Reason: reason}
	for _, pid := range f.players {
		pid.Send(FightOver{Ended: ended})
	}
	f.logger.Printf("Fight %s ended: %s beat %s (%s)", f.setup.ID, winnerID, loserID, reason)
	ctx.Stop()
}

func (f *FightActor) announce(notes []models.EffectNotification) {
	for _, n := range notes {
		f.both(messages.EffectApplied{TargetID: n.TargetID, EffectType: n.EffectType, Value: n.Value, Source: n.Source})
	}
}

// sendState sends each participant the full state from its own side; only the
// receiver's hand is included.
func (f *FightActor) sendState() {
	for id := range f.players {
		opponent := f.state.OpponentOf(id)
		f.notify(id, messages.FightStateUpdate{
			CurrentTurnPlayerID: f.state.CurrentTurnPlayerID,
			PlayerState:         f.state.View(id, true),
			OpponentState:       f.state.View(opponent, false),
		})
	}
}

func (f *FightActor) both(msg messages.Message) {
	f.notify(f.setup.Player1.ID, msg)
	f.notify(f.setup.Player2.ID, msg)
}

func (f *FightActor) notify(playerID string, msg messages.Message) {
	f.players[playerID].Send(Notify{Message: msg})
}
