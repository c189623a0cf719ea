package models

import "time"

// PermanentDuration marks a status effect that never expires
const PermanentDuration = -1

// EffectType is the kind of modifier a status effect applies
type EffectType string

const (
	EffectDamageOverTime   EffectType = "damage_over_time"
	EffectHealOverTime     EffectType = "heal_over_time"
	EffectDamageReduction  EffectType = "damage_reduction"
	EffectDamageBoost      EffectType = "damage_boost"
	EffectDodgeChance      EffectType = "dodge_chance"
	EffectDamageReflection EffectType = "damage_reflection"
	EffectCardLock         EffectType = "card_lock"
	EffectMaxHealthBoost   EffectType = "max_health_boost"
	EffectActionPointBoost EffectType = "action_point_boost"
	EffectEnvironment      EffectType = "environment_effect"
)

// StatusEffect is a timed modifier attached to one fight participant
type StatusEffect struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Type        EffectType `json:"type"`
	Magnitude   int        `json:"magnitude"`
	Source      string     `json:"source"`
}

// Expired reports whether the effect should be pruned
func (e StatusEffect) Expired() bool {
	return e.Duration != PermanentDuration && e.Duration <= 0
}

// FightRecord archives the outcome of a finished fight
type FightRecord struct {
	ID        string    `json:"id"`
	FightID   string    `json:"fight_id"`
	MapID     string    `json:"map_id"`
	WinnerID  string    `json:"winner_id"`
	LoserID   string    `json:"loser_id"`
	Reason    string    `json:"reason"`
	Turns     int       `json:"turns"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}
