package recipe

import "go.uber.org/zap"

// Catalog groups the recipes known this turn by their role.
type Catalog struct {
	Potions        []*Potion
	Spells         []*Spell // acting party's spells
	OpponentSpells []*Spell
	Tome           []*Spell // learnable spells
}

// BuildCatalog converts parsed records into typed collections.
//
// Precondition: logger must not be nil.
// Postcondition: input order is preserved within each collection; records of
// unknown kind are logged at Warn and skipped.
func BuildCatalog(records []Record, logger *zap.Logger) *Catalog {
	c := &Catalog{}
	for _, r := range records {
		kind, ok := ParseKind(r.Kind)
		if !ok {
			logger.Warn("ignoring record of unknown kind",
				zap.Int("id", r.ID),
				zap.String("kind", r.Kind),
			)
			continue
		}
		switch kind {
		case KindBrew:
			c.Potions = append(c.Potions, &Potion{ID: r.ID, Cost: r.Delta, Price: r.Price})
		case KindCast:
			c.Spells = append(c.Spells, spellFrom(r))
		case KindOpponentCast:
			c.OpponentSpells = append(c.OpponentSpells, spellFrom(r))
		case KindLearn:
			c.Tome = append(c.Tome, spellFrom(r))
		}
	}
	return c
}

func spellFrom(r Record) *Spell {
	return &Spell{
		ID:         r.ID,
		Change:     r.Delta,
		Castable:   r.Castable,
		Repeatable: r.Repeatable,
		TomeIndex:  r.TomeIndex,
		TaxCount:   r.TaxCount,
	}
}

// SpellByID returns the acting party's spell with id, or false.
func (c *Catalog) SpellByID(id int) (*Spell, bool) {
	for _, s := range c.Spells {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// PotionByID returns the potion with id, or false.
func (c *Catalog) PotionByID(id int) (*Potion, bool) {
	for _, p := range c.Potions {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
