package combat

import "github.com/smidy/ChickenFight-sub000/models"

// Card balance. base is always cost*2.

func base(c models.Card) int { return c.Cost * 2 }

func halfUp(n int) int { return (n + 1) / 2 }

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func noEffect(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	return EffectResult{Description: card.Name + ": No effect"}
}

func attackBaseline(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(targetID, base(card), casterID)
	return b.result()
}

func defenseBaseline(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.heal(casterID, base(card))
	return b.result()
}

func utilityBaseline(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.actionPoints(casterID, halfUp(card.Cost))
	return b.result()
}

func specialBaseline(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(targetID, base(card), casterID)
	b.heal(casterID, base(card)/2)
	return b.result()
}

func registerSubtypeHandlers(r *Resolver) {
	attack := map[models.CardSubtype]Handler{
		models.SubtypeDirect:   attackBaseline,
		models.SubtypePiercing: piercing,
		models.SubtypeVampiric: vampiric,
		models.SubtypeMultiHit: multiHit,
		models.SubtypePoison:   poison,
	}
	defense := map[models.CardSubtype]Handler{
		models.SubtypeShield:       shield,
		models.SubtypeRegeneration: regeneration,
		models.SubtypeEvasion:      evasion,
		models.SubtypeReflection:   reflection,
		models.SubtypeFortify:      fortify,
	}
	utility := map[models.CardSubtype]Handler{
		models.SubtypeCardDraw: cardDraw,
		models.SubtypeEnergy:   energy,
		models.SubtypeHaste:    haste,
		models.SubtypeCardLock: cardLock,
		models.SubtypeCleanse:  cleanse,
	}
	special := map[models.CardSubtype]Handler{
		models.SubtypeUltimate:    ultimate,
		models.SubtypeEnvironment: environment,
		models.SubtypeSacrifice:   sacrifice,
		models.SubtypeGamble:      gamble,
		models.SubtypeExecute:     execute,
	}
	for t, handlers := range map[models.CardType]map[models.CardSubtype]Handler{
		models.CardTypeAttack:  attack,
		models.CardTypeDefense: defense,
		models.CardTypeUtility: utility,
		models.CardTypeSpecial: special,
	} {
		for st, h := range handlers {
			r.Register(t, st, h)
		}
	}
}

// Attack

func piercing(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	armor := f.EffectTotal(targetID, models.EffectDamageReduction)
	b.damage(targetID, base(card)+armor, casterID)
	return b.result()
}

func vampiric(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	dealt := b.damage(targetID, atLeastOne(base(card)-1), casterID)
	if dealt/2 > 0 {
		b.heal(casterID, dealt/2)
	}
	return b.result()
}

func multiHit(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	for i := 0; i < 2; i++ {
		b.damage(targetID, card.Cost, casterID)
	}
	return b.result()
}

func poison(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(targetID, card.Cost, casterID)
	b.status(targetID, models.EffectDamageOverTime, atLeastOne(card.Cost/2), 3)
	return b.result()
}

// Defense

func shield(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.heal(casterID, base(card))
	b.status(casterID, models.EffectDamageReduction, card.Cost, 2)
	return b.result()
}

func regeneration(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.heal(casterID, card.Cost)
	b.status(casterID, models.EffectHealOverTime, atLeastOne(card.Cost/2), 3)
	return b.result()
}

func evasion(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.heal(casterID, card.Cost)
	b.status(casterID, models.EffectDodgeChance, min(100, 25*card.Cost), 2)
	return b.result()
}

func reflection(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.heal(casterID, card.Cost)
	b.status(casterID, models.EffectDamageReflection, card.Cost, 2)
	return b.result()
}

func fortify(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	f.IncreaseMaxHitPoints(casterID, base(card))
	b.status(casterID, models.EffectMaxHealthBoost, base(card), models.PermanentDuration)
	b.heal(casterID, base(card))
	return b.result()
}

// Utility

func cardDraw(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.draw(casterID, card.Cost+1)
	return b.result()
}

func energy(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.actionPoints(casterID, halfUp(card.Cost)+1)
	return b.result()
}

func haste(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	if ap := halfUp(card.Cost); ap > 0 {
		b.actionPoints(casterID, ap)
	}
	b.status(casterID, models.EffectActionPointBoost, 1, card.Cost+1)
	return b.result()
}

func cardLock(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.status(targetID, models.EffectCardLock, 1, 2)
	return b.result()
}

func cleanse(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	removed := f.RemoveStatusEffects(casterID, models.EffectDamageOverTime, models.EffectCardLock)
	b.note(casterID, "cleanse", removed)
	b.add("removed %d effects", removed)
	if card.Cost > 0 {
		b.heal(casterID, card.Cost)
	}
	return b.result()
}

// Special

func ultimate(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(targetID, base(card), casterID)
	b.heal(casterID, card.Cost)
	b.status(casterID, models.EffectDamageBoost, 25, 3)
	b.status(casterID, models.EffectDamageReduction, 1, 3)
	return b.result()
}

func environment(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(targetID, base(card), casterID)
	b.status(casterID, models.EffectEnvironment, card.Cost, 2)
	b.status(targetID, models.EffectEnvironment, card.Cost, 2)
	return b.result()
}

func sacrifice(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	b.damage(casterID, card.Cost, "")
	b.damage(targetID, card.Cost*3, casterID)
	return b.result()
}

func gamble(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	if f.Roll(50) {
		b.add("won the gamble")
		b.damage(targetID, card.Cost*4, casterID)
	} else {
		b.add("lost the gamble")
		b.damage(casterID, card.Cost, "")
	}
	return b.result()
}

func execute(f *FightState, casterID, targetID string, card models.Card) EffectResult {
	b := newEffectBuilder(f, casterID, targetID, card)
	amount := base(card)
	if hp, maxHP := f.HitPoints(targetID); hp*2 <= maxHP {
		amount *= 2
		b.add("target is wounded")
	}
	b.damage(targetID, amount, casterID)
	return b.result()
}
