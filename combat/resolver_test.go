package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smidy/ChickenFight-sub000/cards"
	"github.com/smidy/ChickenFight-sub000/models"
)

func TestResolver_Priority(t *testing.T) {
	r := NewResolver()
	f := newTestFight(t)

	unknownSpecial := models.Card{ID: "x", Name: "Odd Relic", Type: models.CardTypeSpecial, Subtype: "odd", Cost: 2}
	f.ApplyDamage("a", 6, "")
	r.Resolve(f, "a", "b", unknownSpecial)
	aHP, _ := f.HitPoints("a")
	bHP, _ := f.HitPoints("b")
	assert.Equal(t, 6, bHP, "special baseline deals cost*2")
	assert.Equal(t, 6, aHP, "special baseline heals half of cost*2")

	mystery := models.Card{ID: "y", Name: "Blank", Type: "mystery", Cost: 1}
	res := r.Resolve(f, "a", "b", mystery)
	assert.Equal(t, "Blank: No effect", res.Description)
	assert.Empty(t, res.Notifications)

	called := false
	r.Register(models.CardTypeAttack, models.SubtypeDirect, func(f *FightState, c, tg string, card models.Card) EffectResult {
		called = true
		return EffectResult{Description: "override"}
	})
	fireball, _ := cards.Lookup("atk_001")
	assert.Equal(t, "override", r.Resolve(f, "a", "b", fireball).Description)
	assert.True(t, called)
}

func TestResolver_CoversEveryCatalogueSubtype(t *testing.T) {
	r := NewResolver()
	for _, c := range cards.Library() {
		_, ok := r.bySubtype[handlerKey{c.Type, c.Subtype}]
		assert.True(t, ok, "no handler for %s/%s", c.Type, c.Subtype)
	}
}

func TestSubtypeHandlers(t *testing.T) {
	type check func(t *testing.T, f *FightState)

	hp := func(id string, want int) check {
		return func(t *testing.T, f *FightState) {
			got, _ := f.HitPoints(id)
			assert.Equal(t, want, got, "%s hit points", id)
		}
	}
	effect := func(id string, et models.EffectType, magnitude, duration int) check {
		return func(t *testing.T, f *FightState) {
			p, _ := f.Player(id)
			for _, e := range p.ActiveEffects {
				if e.Type == et {
					assert.Equal(t, magnitude, e.Magnitude, "%s magnitude", et)
					assert.Equal(t, duration, e.Duration, "%s duration", et)
					return
				}
			}
			t.Errorf("%s has no %s effect", id, et)
		}
	}
	ap := func(id string, want int) check {
		return func(t *testing.T, f *FightState) {
			p, _ := f.Player(id)
			assert.Equal(t, want, p.ActionPoints, "%s action points", id)
		}
	}

	// every case starts with caster "a" at 4/10 and target "b" at 10/10
	tests := []struct {
		card   string
		setup  func(f *FightState)
		checks []check
	}{
		{card: "atk_001", checks: []check{hp("b", 6)}},
		{
			card: "atk_004",
			setup: func(f *FightState) {
				f.ApplyStatusEffect("b", NewStatusEffect(models.EffectDamageReduction, 2, 2, "t"))
			},
			checks: []check{hp("b", 6)},
		},
		{card: "atk_006", checks: []check{hp("b", 7), hp("a", 5)}},
		{card: "atk_008", checks: []check{hp("b", 6)}},
		{card: "atk_010", checks: []check{hp("b", 9), effect("b", models.EffectDamageOverTime, 1, 3)}},
		{card: "def_001", checks: []check{hp("a", 8), effect("a", models.EffectDamageReduction, 2, 2)}},
		{card: "def_004", checks: []check{hp("a", 6), effect("a", models.EffectHealOverTime, 1, 3)}},
		{card: "def_006", checks: []check{hp("a", 5), effect("a", models.EffectDodgeChance, 25, 2)}},
		{card: "def_008", checks: []check{hp("a", 6), effect("a", models.EffectDamageReflection, 2, 2)}},
		{
			card: "def_010",
			checks: []check{
				hp("a", 8),
				effect("a", models.EffectMaxHealthBoost, 4, models.PermanentDuration),
				func(t *testing.T, f *FightState) {
					_, maxHP := f.HitPoints("a")
					assert.Equal(t, 14, maxHP)
				},
			},
		},
		{card: "utl_004", checks: []check{ap("a", 5)}},
		{card: "utl_005", checks: []check{ap("a", 4), effect("a", models.EffectActionPointBoost, 1, 3)}},
		{card: "utl_007", checks: []check{effect("b", models.EffectCardLock, 1, 2)}},
		{
			card: "utl_009",
			setup: func(f *FightState) {
				f.ApplyStatusEffect("a", NewStatusEffect(models.EffectDamageOverTime, 1, 3, "t"))
				f.ApplyStatusEffect("a", NewStatusEffect(models.EffectCardLock, 1, 2, "t"))
				f.ApplyStatusEffect("a", NewStatusEffect(models.EffectDamageBoost, 10, 2, "t"))
			},
			checks: []check{
				hp("a", 5),
				func(t *testing.T, f *FightState) {
					p, _ := f.Player("a")
					require.Len(t, p.ActiveEffects, 1)
					assert.Equal(t, models.EffectDamageBoost, p.ActiveEffects[0].Type)
				},
			},
		},
		{
			card: "spc_002",
			checks: []check{
				hp("b", 4), hp("a", 7),
				effect("a", models.EffectDamageBoost, 25, 3),
				effect("a", models.EffectDamageReduction, 1, 3),
			},
		},
		{
			card: "spc_004",
			checks: []check{
				hp("b", 6),
				effect("a", models.EffectEnvironment, 2, 2),
				effect("b", models.EffectEnvironment, 2, 2),
			},
		},
		{card: "spc_005", checks: []check{hp("a", 2), hp("b", 4)}},
		{card: "spc_009", checks: []check{hp("b", 4)}},
		{
			card:   "spc_009",
			setup:  func(f *FightState) { f.ApplyDamage("b", 5, "") },
			checks: []check{hp("b", 0)},
		},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			f := newTestFight(t)
			f.ApplyDamage("a", 6, "")
			if tt.setup != nil {
				tt.setup(f)
			}
			res := r.Resolve(f, "a", "b", mustCard(t, tt.card))
			assert.NotEmpty(t, res.Description)
			for _, c := range tt.checks {
				c(t, f)
			}
		})
	}
}

func TestCardDraw(t *testing.T) {
	f := newTestFight(t)
	a, _ := f.Player("a")
	a.Deck = cards.NewDeck(cards.Library()[:6], nil)

	res := NewResolver().Resolve(f, "a", "b", mustCard(t, "utl_002"))
	assert.Len(t, a.Hand, 3)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "draw", res.Notifications[0].EffectType)
	assert.Equal(t, 3, res.Notifications[0].Value)
}

func TestGamble_OneSideLoses(t *testing.T) {
	r := NewResolver()
	coin := mustCard(t, "spc_007")
	for i := 0; i < 20; i++ {
		f := newTestFight(t)
		r.Resolve(f, "a", "b", coin)
		aHP, _ := f.HitPoints("a")
		bHP, _ := f.HitPoints("b")
		won := bHP == models.StartingHitPoints-4 && aHP == models.StartingHitPoints
		lost := aHP == models.StartingHitPoints-1 && bHP == models.StartingHitPoints
		assert.True(t, won != lost, "a=%d b=%d", aHP, bHP)
	}
}

func TestVampiric_DodgedHealsNothing(t *testing.T) {
	f := newTestFight(t)
	f.ApplyDamage("a", 6, "")
	f.ApplyStatusEffect("b", NewStatusEffect(models.EffectDodgeChance, 100, 2, "t"))

	res := NewResolver().Resolve(f, "a", "b", mustCard(t, "atk_007"))
	aHP, _ := f.HitPoints("a")
	assert.Equal(t, 4, aHP)
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "dodge", res.Notifications[0].EffectType)
}

func TestFortify_SingleBoostNotification(t *testing.T) {
	f := newTestFight(t)

	res := NewResolver().Resolve(f, "a", "b", mustCard(t, "def_010"))
	var boosts int
	for _, n := range res.Notifications {
		assert.NotEqual(t, "max_hit_points", n.EffectType)
		if n.EffectType == string(models.EffectMaxHealthBoost) {
			boosts++
			assert.Equal(t, 4, n.Value)
		}
	}
	assert.Equal(t, 1, boosts)
	_, maxHP := f.HitPoints("a")
	assert.Equal(t, models.StartingHitPoints+4, maxHP)
}
