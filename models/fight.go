package models

// EffectNotification describes one resolved effect of a card or a status tick
type EffectNotification struct {
	TargetID   string `json:"targetId"`
	EffectType string `json:"effectType"`
	Value      int    `json:"value"`
	Source     string `json:"source"`
}

// FighterView is the state of one fight participant as sent to clients.
// Hand is only filled in for the participant the view is addressed to.
type FighterView struct {
	PlayerID      string         `json:"playerId"`
	HitPoints     int            `json:"hitPoints"`
	MaxHitPoints  int            `json:"maxHitPoints"`
	ActionPoints  int            `json:"actionPoints"`
	Hand          []Card         `json:"hand,omitempty"`
	HandCount     int            `json:"handCount"`
	DeckCount     int            `json:"deckCount"`
	DiscardCount  int            `json:"discardCount"`
	StatusEffects []StatusEffect `json:"statusEffects"`
}
