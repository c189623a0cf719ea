package models

// Fight constants shared by the server and the state sent to clients.
const (
	StartingHitPoints   = 10
	ActionPointsPerTurn = 3
	MaxHandSize         = 10
	CardsDrawnPerTurn   = 5
	MaxDeckSize         = 25
)

// CardType is the broad family of a card
type CardType string

const (
	CardTypeAttack  CardType = "attack"
	CardTypeDefense CardType = "defense"
	CardTypeUtility CardType = "utility"
	CardTypeSpecial CardType = "special"
)

// CardSubtype selects the specific effect handler of a card
type CardSubtype string

const (
	// Attack
	SubtypeDirect   CardSubtype = "direct"
	SubtypePiercing CardSubtype = "piercing"
	SubtypeVampiric CardSubtype = "vampiric"
	SubtypeMultiHit CardSubtype = "multi_hit"
	SubtypePoison   CardSubtype = "poison"

	// Defense
	SubtypeShield       CardSubtype = "shield"
	SubtypeRegeneration CardSubtype = "regeneration"
	SubtypeEvasion      CardSubtype = "evasion"
	SubtypeReflection   CardSubtype = "reflection"
	SubtypeFortify      CardSubtype = "fortify"

	// Utility
	SubtypeCardDraw CardSubtype = "card_draw"
	SubtypeEnergy   CardSubtype = "energy"
	SubtypeHaste    CardSubtype = "haste"
	SubtypeCardLock CardSubtype = "card_lock"
	SubtypeCleanse  CardSubtype = "cleanse"

	// Special
	SubtypeUltimate    CardSubtype = "ultimate"
	SubtypeEnvironment CardSubtype = "environment"
	SubtypeSacrifice   CardSubtype = "sacrifice"
	SubtypeGamble      CardSubtype = "gamble"
	SubtypeExecute     CardSubtype = "execute"
)

// Card is an immutable catalogue entry
type Card struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        CardType    `json:"type"`
	Subtype     CardSubtype `json:"subtype"`
	Cost        int         `json:"cost"`
	Description string      `json:"description"`
}
