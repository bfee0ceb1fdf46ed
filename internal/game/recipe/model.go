package recipe

// Kind is the record kind token carried on each feed line.
type Kind string

const (
	KindBrew         Kind = "BREW"
	KindCast         Kind = "CAST"
	KindOpponentCast Kind = "OPPONENT_CAST"
	KindLearn        Kind = "LEARN"
)

// ParseKind maps a feed token to a Kind.
//
// Postcondition: returns false for any token that is not a known kind.
func ParseKind(token string) (Kind, bool) {
	switch k := Kind(token); k {
	case KindBrew, KindCast, KindOpponentCast, KindLearn:
		return k, true
	default:
		return "", false
	}
}

// Record is one parsed recipe/spell line of the state feed.
//
// Kind holds the raw token so unknown kinds survive parsing and can be
// reported by the catalog builder.
type Record struct {
	ID         int
	Kind       string
	Delta      Vector
	Price      int
	TomeIndex  int
	TaxCount   int
	Castable   bool
	Repeatable bool
}

// Recipe is the capability shared by potions and spells.
type Recipe interface {
	RecipeID() int
	Delta() Vector
}

// Potion is a brewable order.
//
// Invariant: Delta tiers are normally <= 0 (consumed ingredients).
type Potion struct {
	ID    int
	Cost  Vector
	Price int
}

// RecipeID returns the potion id.
func (p *Potion) RecipeID() int { return p.ID }

// Delta returns the ingredient change brewing applies.
func (p *Potion) Delta() Vector { return p.Cost }

// Spell converts ingredients. Positive tiers are produced, negative consumed.
//
// TomeIndex and TaxCount are carried from the feed; decisions never read them.
type Spell struct {
	ID         int
	Change     Vector
	Castable   bool
	Repeatable bool
	TomeIndex  int
	TaxCount   int
}

// RecipeID returns the spell id.
func (s *Spell) RecipeID() int { return s.ID }

// Delta returns the ingredient change casting applies.
func (s *Spell) Delta() Vector { return s.Change }

// Party is one player's inventory and score.
type Party struct {
	Inventory Vector
	Score     int
}

// Turn is the full observable state of one turn.
//
// Invariant: Catalog must not be nil.
type Turn struct {
	Catalog  *Catalog
	Me       Party
	Opponent Party
}
