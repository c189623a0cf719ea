package cards

import (
	"math/rand"
	"sort"

	"github.com/smidy/ChickenFight-sub000/models"
)

func card(id, name string, t models.CardType, st models.CardSubtype, cost int, desc string) models.Card {
	return models.Card{ID: id, Name: name, Type: t, Subtype: st, Cost: cost, Description: desc}
}

var catalogue = []models.Card{
	card("atk_001", "Fireball", models.CardTypeAttack, models.SubtypeDirect, 2, "Hurl a ball of fire at your opponent."),
	card("atk_002", "Quick Strike", models.CardTypeAttack, models.SubtypeDirect, 1, "A fast jab."),
	card("atk_003", "Heavy Blow", models.CardTypeAttack, models.SubtypeDirect, 3, "A slow, crushing strike."),
	card("atk_004", "Armor Breaker", models.CardTypeAttack, models.SubtypePiercing, 2, "Ignores the target's damage reduction."),
	card("atk_005", "Lance Thrust", models.CardTypeAttack, models.SubtypePiercing, 3, "A piercing thrust that slips past armor."),
	card("atk_006", "Life Leech", models.CardTypeAttack, models.SubtypeVampiric, 2, "Deal damage and heal for half of it."),
	card("atk_007", "Blood Drain", models.CardTypeAttack, models.SubtypeVampiric, 3, "Drain your opponent's vitality."),
	card("atk_008", "Flurry", models.CardTypeAttack, models.SubtypeMultiHit, 2, "Strike twice."),
	card("atk_009", "Twin Fangs", models.CardTypeAttack, models.SubtypeMultiHit, 1, "Two quick bites."),
	card("atk_010", "Venom Dart", models.CardTypeAttack, models.SubtypePoison, 1, "Poisons the target for 3 turns."),
	card("atk_011", "Toxic Cloud", models.CardTypeAttack, models.SubtypePoison, 3, "A choking cloud that lingers for 3 turns."),
	card("atk_012", "Meteor", models.CardTypeAttack, models.SubtypeDirect, 4, "Call down a falling star."),

	card("def_001", "Iron Shield", models.CardTypeDefense, models.SubtypeShield, 2, "Heal and reduce incoming damage for 2 turns."),
	card("def_002", "Wooden Buckler", models.CardTypeDefense, models.SubtypeShield, 1, "A light shield."),
	card("def_003", "Tower Shield", models.CardTypeDefense, models.SubtypeShield, 3, "A wall of steel."),
	card("def_004", "Healing Light", models.CardTypeDefense, models.SubtypeRegeneration, 2, "Heal now and over the next 3 turns."),
	card("def_005", "Second Wind", models.CardTypeDefense, models.SubtypeRegeneration, 1, "Catch your breath."),
	card("def_006", "Sidestep", models.CardTypeDefense, models.SubtypeEvasion, 1, "A chance to dodge incoming attacks."),
	card("def_007", "Smoke Veil", models.CardTypeDefense, models.SubtypeEvasion, 2, "Vanish into smoke."),
	card("def_008", "Mirror Ward", models.CardTypeDefense, models.SubtypeReflection, 2, "Reflect damage back at attackers."),
	card("def_009", "Thorn Armor", models.CardTypeDefense, models.SubtypeReflection, 1, "Attackers are pricked by thorns."),
	card("def_010", "Stone Skin", models.CardTypeDefense, models.SubtypeFortify, 2, "Permanently raise your maximum hit points."),
	card("def_011", "Giant's Vigor", models.CardTypeDefense, models.SubtypeFortify, 3, "The strength of giants."),

	card("utl_001", "Insight", models.CardTypeUtility, models.SubtypeCardDraw, 1, "Draw 2 cards."),
	card("utl_002", "Scholar's Tome", models.CardTypeUtility, models.SubtypeCardDraw, 2, "Draw 3 cards."),
	card("utl_003", "Focus", models.CardTypeUtility, models.SubtypeEnergy, 0, "Gain 1 action point."),
	card("utl_004", "Adrenaline", models.CardTypeUtility, models.SubtypeEnergy, 1, "Gain 2 action points."),
	card("utl_005", "Haste", models.CardTypeUtility, models.SubtypeHaste, 2, "Gain action points now and on your next turns."),
	card("utl_006", "Quickening", models.CardTypeUtility, models.SubtypeHaste, 1, "A burst of speed."),
	card("utl_007", "Silence", models.CardTypeUtility, models.SubtypeCardLock, 2, "Your opponent can only play cheap cards next turn."),
	card("utl_008", "Binding Chains", models.CardTypeUtility, models.SubtypeCardLock, 3, "Bind your opponent's hands."),
	card("utl_009", "Purify", models.CardTypeUtility, models.SubtypeCleanse, 1, "Remove poisons and locks, then heal."),
	card("utl_010", "Antidote", models.CardTypeUtility, models.SubtypeCleanse, 0, "Cure poison."),
	card("utl_011", "Battle Plan", models.CardTypeUtility, models.SubtypeCardDraw, 0, "Draw a card."),

	card("spc_001", "Final Judgement", models.CardTypeSpecial, models.SubtypeUltimate, 4, "Massive damage, healing and lasting power."),
	card("spc_002", "Phoenix Rising", models.CardTypeSpecial, models.SubtypeUltimate, 3, "Rise from the ashes stronger."),
	card("spc_003", "Firestorm", models.CardTypeSpecial, models.SubtypeEnvironment, 3, "Set the battlefield ablaze."),
	card("spc_004", "Blizzard", models.CardTypeSpecial, models.SubtypeEnvironment, 2, "Freeze the battlefield."),
	card("spc_005", "Blood Pact", models.CardTypeSpecial, models.SubtypeSacrifice, 2, "Sacrifice your health for a devastating blow."),
	card("spc_006", "Martyr's Strike", models.CardTypeSpecial, models.SubtypeSacrifice, 3, "Pay in blood."),
	card("spc_007", "Coin Flip", models.CardTypeSpecial, models.SubtypeGamble, 1, "Heads you win, tails you lose."),
	card("spc_008", "Wild Magic", models.CardTypeSpecial, models.SubtypeGamble, 2, "Unpredictable power."),
	card("spc_009", "Execution", models.CardTypeSpecial, models.SubtypeExecute, 3, "Double damage against a wounded target."),
	card("spc_010", "Coup de Grace", models.CardTypeSpecial, models.SubtypeExecute, 2, "Finish them."),
	card("spc_011", "Arcane Nova", models.CardTypeSpecial, models.SubtypeUltimate, 2, "A burst of raw arcane power."),
}

var byID = func() map[string]models.Card {
	m := make(map[string]models.Card, len(catalogue))
	for _, c := range catalogue {
		m[c.ID] = c
	}
	return m
}()

// Library returns a copy of the full card catalogue ordered by id
func Library() []models.Card {
	out := make([]models.Card, len(catalogue))
	copy(out, catalogue)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup finds a catalogue card by id
func Lookup(id string) (models.Card, bool) {
	c, ok := byID[id]
	return c, ok
}

// StarterDeck builds a shuffled deck of MaxDeckSize distinct catalogue cards
func StarterDeck(rng *rand.Rand) *Deck {
	pool := Library()
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return NewDeck(pool[:models.MaxDeckSize], rng)
}
