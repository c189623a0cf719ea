package combat

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/smidy/ChickenFight-sub000/cards"
	"github.com/smidy/ChickenFight-sub000/models"
)

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCannotPlayCard = errors.New("cannot play this card")
	ErrNotParticipant = errors.New("not a participant of this fight")
)

// PlayerFightState is one participant's side of a fight
type PlayerFightState struct {
	PlayerID      string
	HitPoints     int
	MaxHitPoints  int
	ActionPoints  int
	Hand          []models.Card
	ActiveEffects []models.StatusEffect
	Deck          *cards.Deck
}

func newPlayerFightState(playerID string, deck *cards.Deck) *PlayerFightState {
	return &PlayerFightState{
		PlayerID:     playerID,
		HitPoints:    models.StartingHitPoints,
		MaxHitPoints: models.StartingHitPoints,
		Deck:         deck,
	}
}

func (p *PlayerFightState) effectTotal(t models.EffectType) int {
	total := 0
	for _, e := range p.ActiveEffects {
		if e.Type == t {
			total += e.Magnitude
		}
	}
	return total
}

// lockLimit returns the highest card cost the player may play, or -1 when unlocked
func (p *PlayerFightState) lockLimit() int {
	limit := -1
	for _, e := range p.ActiveEffects {
		if e.Type == models.EffectCardLock && (limit < 0 || e.Magnitude < limit) {
			limit = e.Magnitude
		}
	}
	return limit
}

func (p *PlayerFightState) handIndex(cardID string) int {
	for i, c := range p.Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (p *PlayerFightState) setHitPoints(hp int) {
	p.HitPoints = clamp(hp, 0, p.MaxHitPoints)
}

// DamageOutcome reports what ApplyDamage did
type DamageOutcome struct {
	Dealt     int
	Dodged    bool
	Reflected int
}

// FightState is the authoritative state of one battle. It is not safe for concurrent
// use; the fight actor owns it.
type FightState struct {
	ID                  string
	CurrentTurnPlayerID string
	Turn                int
	players             [2]*PlayerFightState
	resolver            *Resolver
	rng                 *rand.Rand
}

// NewFightState creates a fight between two players. No turn has started yet.
func NewFightState(id, player1, player2 string, deck1, deck2 *cards.Deck, resolver *Resolver, rng *rand.Rand) *FightState {
	return &FightState{
		ID: id,
		players: [2]*PlayerFightState{
			newPlayerFightState(player1, deck1),
			newPlayerFightState(player2, deck2),
		},
		resolver: resolver,
		rng:      rng,
	}
}

// PlayerIDs returns the two participants in seat order
func (f *FightState) PlayerIDs() (string, string) {
	return f.players[0].PlayerID, f.players[1].PlayerID
}

// Player returns a participant's state
func (f *FightState) Player(playerID string) (*PlayerFightState, bool) {
	p := f.player(playerID)
	return p, p != nil
}

func (f *FightState) player(playerID string) *PlayerFightState {
	for _, p := range f.players {
		if p.PlayerID == playerID {
			return p
		}
	}
	return nil
}

// OpponentOf returns the other participant's id, or "" for a stranger
func (f *FightState) OpponentOf(playerID string) string {
	switch playerID {
	case f.players[0].PlayerID:
		return f.players[1].PlayerID
	case f.players[1].PlayerID:
		return f.players[0].PlayerID
	}
	return ""
}

// HitPoints returns current and maximum hit points of a participant
func (f *FightState) HitPoints(playerID string) (int, int) {
	p := f.player(playerID)
	if p == nil {
		return 0, 0
	}
	return p.HitPoints, p.MaxHitPoints
}

// EffectTotal sums the magnitudes of a participant's active effects of one type
func (f *FightState) EffectTotal(playerID string, t models.EffectType) int {
	p := f.player(playerID)
	if p == nil {
		return 0
	}
	return p.effectTotal(t)
}

// Roll succeeds with the given percent chance
func (f *FightState) Roll(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return f.rng.Intn(100) < percent
}

// ApplyDamage hits target for amount on behalf of attacker (which may be empty).
// The attacker's damage boosts scale the amount up, each of the target's dodge
// effects is rolled, the target's damage reduction is subtracted, and finally the
// target's reflection effects strike the attacker for their flat magnitude.
func (f *FightState) ApplyDamage(targetID string, amount int, attackerID string) DamageOutcome {
	var out DamageOutcome
	target := f.player(targetID)
	if target == nil || amount <= 0 {
		return out
	}
	attacker := f.player(attackerID)

	if attacker != nil {
		if boost := attacker.effectTotal(models.EffectDamageBoost); boost > 0 {
			amount = amount * (100 + boost) / 100
		}
	}

	for _, e := range target.ActiveEffects {
		if e.Type == models.EffectDodgeChance && f.Roll(e.Magnitude) {
			out.Dodged = true
			return out
		}
	}

	amount -= target.effectTotal(models.EffectDamageReduction)
	if amount < 0 {
		amount = 0
	}

	before := target.HitPoints
	target.setHitPoints(target.HitPoints - amount)
	out.Dealt = before - target.HitPoints

	if attacker != nil && attacker != target {
		for _, e := range target.ActiveEffects {
			if e.Type != models.EffectDamageReflection {
				continue
			}
			hp := attacker.HitPoints
			attacker.setHitPoints(hp - e.Magnitude)
			out.Reflected += hp - attacker.HitPoints
		}
	}
	return out
}

// ApplyHealing restores hit points up to the maximum and returns the amount healed
func (f *FightState) ApplyHealing(targetID string, amount int) int {
	p := f.player(targetID)
	if p == nil || amount <= 0 {
		return 0
	}
	before := p.HitPoints
	p.setHitPoints(p.HitPoints + amount)
	return p.HitPoints - before
}

// ApplyStatusEffect attaches an effect. An effect with the id of an active one
// replaces it; an effect without an id gets a fresh one.
func (f *FightState) ApplyStatusEffect(targetID string, effect models.StatusEffect) models.StatusEffect {
	p := f.player(targetID)
	if p == nil {
		return effect
	}
	if effect.ID == "" {
		effect.ID = uuid.NewString()
	}
	for i, e := range p.ActiveEffects {
		if e.ID == effect.ID {
			p.ActiveEffects[i] = effect
			return effect
		}
	}
	p.ActiveEffects = append(p.ActiveEffects, effect)
	return effect
}

// RemoveStatusEffects drops every effect of the given types and returns how many went
func (f *FightState) RemoveStatusEffects(targetID string, types ...models.EffectType) int {
	p := f.player(targetID)
	if p == nil {
		return 0
	}
	kept := p.ActiveEffects[:0]
	removed := 0
	for _, e := range p.ActiveEffects {
		if containsType(types, e.Type) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	p.ActiveEffects = kept
	return removed
}

// IncreaseMaxHitPoints raises a participant's maximum hit points
func (f *FightState) IncreaseMaxHitPoints(targetID string, amount int) {
	p := f.player(targetID)
	if p == nil || amount <= 0 {
		return
	}
	p.MaxHitPoints += amount
}

// GrantActionPoints adds action points to a participant
func (f *FightState) GrantActionPoints(targetID string, amount int) {
	p := f.player(targetID)
	if p == nil || amount <= 0 {
		return
	}
	p.ActionPoints += amount
}

// DrawCards moves up to n cards from the deck into the hand without exceeding the
// hand limit and returns how many were drawn.
func (f *FightState) DrawCards(playerID string, n int) int {
	p := f.player(playerID)
	if p == nil || p.Deck == nil {
		return 0
	}
	if room := models.MaxHandSize - len(p.Hand); n > room {
		n = room
	}
	if n <= 0 {
		return 0
	}
	drawn := p.Deck.DrawCards(n)
	p.Hand = append(p.Hand, drawn...)
	return len(drawn)
}

// StartTurn hands the turn to playerID: action points are reset, cards drawn and the
// player's status effects applied, ticked and pruned.
func (f *FightState) StartTurn(playerID string) ([]models.EffectNotification, error) {
	p := f.player(playerID)
	if p == nil {
		return nil, ErrNotParticipant
	}
	f.CurrentTurnPlayerID = playerID
	f.Turn++
	p.ActionPoints = models.ActionPointsPerTurn
	f.DrawCards(playerID, models.CardsDrawnPerTurn)
	return f.tickEffects(p), nil
}

// PlayCard spends the card's cost, moves it from hand to the discard pile and
// resolves it against the opponent. A rejected play leaves the state untouched.
func (f *FightState) PlayCard(playerID, cardID string) (models.Card, EffectResult, error) {
	p := f.player(playerID)
	if p == nil {
		return models.Card{}, EffectResult{}, ErrNotParticipant
	}
	if f.CurrentTurnPlayerID != playerID {
		return models.Card{}, EffectResult{}, ErrNotYourTurn
	}
	idx := p.handIndex(cardID)
	if idx < 0 {
		return models.Card{}, EffectResult{}, ErrCannotPlayCard
	}
	card := p.Hand[idx]
	if p.ActionPoints < card.Cost {
		return models.Card{}, EffectResult{}, ErrCannotPlayCard
	}
	if limit := p.lockLimit(); limit >= 0 && card.Cost > limit {
		return models.Card{}, EffectResult{}, ErrCannotPlayCard
	}

	p.ActionPoints -= card.Cost
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	if p.Deck != nil {
		p.Deck.Discard(card)
	}
	return card, f.resolver.Resolve(f, playerID, f.OpponentOf(playerID), card), nil
}

// EndTurn discards the current player's hand and starts the opponent's turn
func (f *FightState) EndTurn(playerID string) ([]models.EffectNotification, error) {
	p := f.player(playerID)
	if p == nil {
		return nil, ErrNotParticipant
	}
	if f.CurrentTurnPlayerID != playerID {
		return nil, ErrNotYourTurn
	}
	if p.Deck != nil {
		p.Deck.Discard(p.Hand...)
	}
	p.Hand = nil
	return f.StartTurn(f.OpponentOf(playerID))
}

// Outcome reports whether the fight is decided. When both sides are down the
// acting player wins.
func (f *FightState) Outcome(actingID string) (winnerID, loserID string, over bool) {
	if f.player(actingID) == nil {
		return "", "", false
	}
	opponentID := f.OpponentOf(actingID)
	if hp, _ := f.HitPoints(opponentID); hp == 0 {
		return actingID, opponentID, true
	}
	if hp, _ := f.HitPoints(actingID); hp == 0 {
		return opponentID, actingID, true
	}
	return "", "", false
}

// View renders a participant's state for clients
func (f *FightState) View(playerID string, withHand bool) models.FighterView {
	p := f.player(playerID)
	if p == nil {
		return models.FighterView{PlayerID: playerID}
	}
	v := models.FighterView{
		PlayerID:      p.PlayerID,
		HitPoints:     p.HitPoints,
		MaxHitPoints:  p.MaxHitPoints,
		ActionPoints:  p.ActionPoints,
		HandCount:     len(p.Hand),
		StatusEffects: append([]models.StatusEffect{}, p.ActiveEffects...),
	}
	if withHand {
		v.Hand = append([]models.Card{}, p.Hand...)
	}
	if p.Deck != nil {
		v.DeckCount = p.Deck.DrawCount()
		v.DiscardCount = p.Deck.DiscardCount()
	}
	return v
}

func containsType(types []models.EffectType, t models.EffectType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
