package combat

import (
	"fmt"

	"github.com/smidy/ChickenFight-sub000/models"
)

var effectNames = map[models.EffectType]string{
	models.EffectDamageOverTime:   "Damage Over Time",
	models.EffectHealOverTime:     "Heal Over Time",
	models.EffectDamageReduction:  "Damage Reduction",
	models.EffectDamageBoost:      "Damage Boost",
	models.EffectDodgeChance:      "Dodge Chance",
	models.EffectDamageReflection: "Damage Reflection",
	models.EffectCardLock:         "Card Lock",
	models.EffectMaxHealthBoost:   "Max Health Boost",
	models.EffectActionPointBoost: "Action Point Boost",
	models.EffectEnvironment:      "Environment",
}

// NewStatusEffect builds an effect with a readable name and description. The id is
// assigned when the effect is applied.
func NewStatusEffect(t models.EffectType, magnitude, duration int, source string) models.StatusEffect {
	name := effectNames[t]
	if name == "" {
		name = string(t)
	}
	desc := fmt.Sprintf("%s %d", name, magnitude)
	switch {
	case duration == models.PermanentDuration:
		desc += " (permanent)"
	case duration == 1:
		desc += " for 1 turn"
	default:
		desc += fmt.Sprintf(" for %d turns", duration)
	}
	return models.StatusEffect{
		Name:        name,
		Description: desc,
		Duration:    duration,
		Type:        t,
		Magnitude:   magnitude,
		Source:      source,
	}
}

// tickEffects runs the turn-start pass over a player's effects in list order:
// over-time and action point effects fire, durations count down, expired ones go.
func (f *FightState) tickEffects(p *PlayerFightState) []models.EffectNotification {
	var notes []models.EffectNotification
	for i := range p.ActiveEffects {
		e := &p.ActiveEffects[i]
		switch e.Type {
		case models.EffectDamageOverTime:
			before := p.HitPoints
			p.setHitPoints(p.HitPoints - e.Magnitude)
			notes = append(notes, tickNote(p.PlayerID, "damage", before-p.HitPoints, e.Source))
		case models.EffectHealOverTime:
			healed := f.ApplyHealing(p.PlayerID, e.Magnitude)
			notes = append(notes, tickNote(p.PlayerID, "heal", healed, e.Source))
		case models.EffectActionPointBoost:
			p.ActionPoints += e.Magnitude
			notes = append(notes, tickNote(p.PlayerID, "action_points", e.Magnitude, e.Source))
		}
		if e.Duration > 0 {
			e.Duration--
		}
	}

	kept := p.ActiveEffects[:0]
	for _, e := range p.ActiveEffects {
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	p.ActiveEffects = kept
	return notes
}

func tickNote(targetID, effectType string, value int, source string) models.EffectNotification {
	return models.EffectNotification{TargetID: targetID, EffectType: effectType, Value: value, Source: source}
}
