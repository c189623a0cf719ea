package cards

import (
	"math/rand"

	"github.com/smidy/ChickenFight-sub000/models"
)

// Deck is a draw pile and a discard pile of catalogue cards
type Deck struct {
	draw    []models.Card
	discard []models.Card
	rng     *rand.Rand
}

// NewDeck builds a deck from cards in draw order; anything beyond MaxDeckSize is dropped
func NewDeck(cards []models.Card, rng *rand.Rand) *Deck {
	if len(cards) > models.MaxDeckSize {
		cards = cards[:models.MaxDeckSize]
	}
	draw := make([]models.Card, len(cards))
	copy(draw, cards)
	return &Deck{draw: draw, rng: rng}
}

// DrawCount is the number of cards left in the draw pile
func (d *Deck) DrawCount() int { return len(d.draw) }

// DiscardCount is the number of cards in the discard pile
func (d *Deck) DiscardCount() int { return len(d.discard) }

// DrawCards takes up to n cards from the top of the draw pile. When the draw pile
// runs out the discard pile is shuffled back into it. Fewer than n cards are returned
// only when both piles are exhausted.
func (d *Deck) DrawCards(n int) []models.Card {
	drawn := make([]models.Card, 0, n)
	for len(drawn) < n {
		if len(d.draw) == 0 {
			if len(d.discard) == 0 {
				break
			}
			d.reshuffle()
		}
		drawn = append(drawn, d.draw[0])
		d.draw = d.draw[1:]
	}
	return drawn
}

// Discard puts cards on the discard pile
func (d *Deck) Discard(cards ...models.Card) {
	d.discard = append(d.discard, cards...)
}

func (d *Deck) reshuffle() {
	d.draw = append(d.draw, d.discard...)
	d.discard = nil
	if d.rng != nil {
		d.rng.Shuffle(len(d.draw), func(i, j int) { d.draw[i], d.draw[j] = d.draw[j], d.draw[i] })
	}
}
