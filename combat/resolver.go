package combat

import (
	"fmt"
	"strings"

	"github.com/smidy/ChickenFight-sub000/models"
)

// EffectResult is what resolving a card produced
type EffectResult struct {
	Description   string
	Notifications []models.EffectNotification
}

// Handler resolves one card played by caster against target
type Handler func(f *FightState, casterID, targetID string, card models.Card) EffectResult

type handlerKey struct {
	Type    models.CardType
	Subtype models.CardSubtype
}

// Resolver picks the handler for a card: an exact (type, subtype) match first, then
// the handler registered for the card type, then the default.
type Resolver struct {
	bySubtype map[handlerKey]Handler
	byType    map[models.CardType]Handler
	fallback  Handler
}

// NewResolver returns a resolver with the type baselines and every subtype handler
func NewResolver() *Resolver {
	r := &Resolver{
		bySubtype: make(map[handlerKey]Handler),
		byType:    make(map[models.CardType]Handler),
		fallback:  noEffect,
	}
	r.RegisterType(models.CardTypeAttack, attackBaseline)
	r.RegisterType(models.CardTypeDefense, defenseBaseline)
	r.RegisterType(models.CardTypeUtility, utilityBaseline)
	r.RegisterType(models.CardTypeSpecial, specialBaseline)
	registerSubtypeHandlers(r)
	return r
}

// Register binds a handler to an exact card type and subtype
func (r *Resolver) Register(t models.CardType, st models.CardSubtype, h Handler) {
	r.bySubtype[handlerKey{t, st}] = h
}

// RegisterType binds the fallback handler of a card type
func (r *Resolver) RegisterType(t models.CardType, h Handler) {
	r.byType[t] = h
}

// SetDefault replaces the handler used when nothing else matches
func (r *Resolver) SetDefault(h Handler) {
	r.fallback = h
}

// HandlerFor selects the handler for a card
func (r *Resolver) HandlerFor(card models.Card) Handler {
	if h, ok := r.bySubtype[handlerKey{card.Type, card.Subtype}]; ok {
		return h
	}
	if h, ok := r.byType[card.Type]; ok {
		return h
	}
	return r.fallback
}

// Resolve applies a card's effect
func (r *Resolver) Resolve(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	return r.HandlerFor(card)(f, casterID, targetID, card)
}

// effectBuilder accumulates notifications and description fragments while a handler runs
type effectBuilder struct {
	f      *FightState
	caster string
	target string
	card   models.Card
	notes  []models.EffectNotification
	parts  []string
}

func newEffectBuilder(f *FightState, casterID, targetID string, card models.Card) *effectBuilder {
	return &effectBuilder{f: f, caster: casterID, target: targetID, card: card}
}

func (b *effectBuilder) note(targetID, effectType string, value int) {
	b.notes = append(b.notes, models.EffectNotification{
		TargetID:   targetID,
		EffectType: effectType,
		Value:      value,
		Source:     b.card.Name,
	})
}

func (b *effectBuilder) add(format string, args ...any) {
	b.parts = append(b.parts, fmt.Sprintf(format, args...))
}

func (b *effectBuilder) who(id string) string {
	if id == b.caster {
		return "self"
	}
	return "opponent"
}

// damage hits targetID through ApplyDamage and returns the hit points removed
func (b *effectBuilder) damage(targetID string, amount int, attackerID string) int {
	out := b.f.ApplyDamage(targetID, amount, attackerID)
	if out.Dodged {
		b.note(targetID, "dodge", 0)
		b.add("%s dodged", b.who(targetID))
		return 0
	}
	b.note(targetID, "damage", out.Dealt)
	b.add("%d damage to %s", out.Dealt, b.who(targetID))
	if out.Reflected > 0 {
		b.note(attackerID, "reflect", out.Reflected)
		b.add("%d reflected to %s", out.Reflected, b.who(attackerID))
	}
	return out.Dealt
}

func (b *effectBuilder) heal(targetID string, amount int) int {
	healed := b.f.ApplyHealing(targetID, amount)
	b.note(targetID, "heal", healed)
	b.add("healed %s for %d", b.who(targetID), healed)
	return healed
}

func (b *effectBuilder) actionPoints(targetID string, amount int) {
	b.f.GrantActionPoints(targetID, amount)
	b.note(targetID, "action_points", amount)
	b.add("+%d action points", amount)
}

func (b *effectBuilder) draw(targetID string, n int) {
	drawn := b.f.DrawCards(targetID, n)
	b.note(targetID, "draw", drawn)
	b.add("drew %d cards", drawn)
}

func (b *effectBuilder) status(targetID string, t models.EffectType, magnitude, duration int) {
	e := b.f.ApplyStatusEffect(targetID, NewStatusEffect(t, magnitude, duration, b.card.Name))
	b.note(targetID, string(t), magnitude)
	b.add("%s on %s", e.Description, b.who(targetID))
}

func (b *effectBuilder) result() EffectResult {
	desc := b.card.Name
	if len(b.parts) > 0 {
		desc += ": " + strings.Join(b.parts, ", ")
	}
	return EffectResult{Description: desc, Notifications: b.notes}
}
