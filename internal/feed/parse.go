// Package feed reads the per-turn game state from the referee's line
// protocol and writes one action line back.
package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

// recordFields names the columns of a record line in order.
var recordFields = []string{
	"id", "kind", "delta0", "delta1", "delta2", "delta3",
	"price", "tomeIndex", "taxCount", "castable", "repeatable",
}

// partyFields names the columns of a party line in order.
var partyFields = []string{"inv0", "inv1", "inv2", "inv3", "score"}

// ParseError reports a malformed feed line. It is always fatal to the caller.
type ParseError struct {
	// Line is the 1-based line number within the feed; 0 when unknown.
	Line int
	// Field names the offending column; empty for whole-line problems.
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("feed: line %d: field %s: %v", e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("feed: line %d: %v", e.Line, e.Err)
	case e.Field != "":
		return fmt.Sprintf("feed: field %s: %v", e.Field, e.Err)
	default:
		return fmt.Sprintf("feed: %v", e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseCount parses the record-count line.
//
// Postcondition: returns 0 <= n <= limit, or a *ParseError.
func ParseCount(line string, limit int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, &ParseError{Field: "count", Err: err}
	}
	if n < 0 || n > limit {
		return 0, &ParseError{Field: "count", Err: fmt.Errorf("count %d outside [0, %d]", n, limit)}
	}
	return n, nil
}

// ParseRecord parses one record line:
// id kind d0 d1 d2 d3 price tomeIndex taxCount castable repeatable.
//
// The kind token is kept verbatim; unknown kinds are the catalog builder's concern.
// Postcondition: returns a Record or a *ParseError naming the bad field.
func ParseRecord(line string) (recipe.Record, error) {
	tok := strings.Fields(line)
	if len(tok) != len(recordFields) {
		return recipe.Record{}, &ParseError{Err: fmt.Errorf("record has %d fields, want %d", len(tok), len(recordFields))}
	}
	ints := make([]int, len(tok))
	for i, s := range tok {
		if i == 1 {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return recipe.Record{}, &ParseError{Field: recordFields[i], Err: err}
		}
		ints[i] = n
	}
	return recipe.Record{
		ID:         ints[0],
		Kind:       tok[1],
		Delta:      recipe.Vector{ints[2], ints[3], ints[4], ints[5]},
		Price:      ints[6],
		TomeIndex:  ints[7],
		TaxCount:   ints[8],
		Castable:   ints[9] != 0,
		Repeatable: ints[10] != 0,
	}, nil
}

// ParseParty parses one party line: inv0 inv1 inv2 inv3 score.
//
// Postcondition: returns a Party or a *ParseError naming the bad field.
func ParseParty(line string) (recipe.Party, error) {
	tok := strings.Fields(line)
	if len(tok) != len(partyFields) {
		return recipe.Party{}, &ParseError{Err: fmt.Errorf("party has %d fields, want %d", len(tok), len(partyFields))}
	}
	var vals [5]int
	for i, s := range tok {
		n, err := strconv.Atoi(s)
		if err != nil {
			return recipe.Party{}, &ParseError{Field: partyFields[i], Err: err}
		}
		vals[i] = n
	}
	return recipe.Party{
		Inventory: recipe.Vector{vals[0], vals[1], vals[2], vals[3]},
		Score:     vals[4],
	}, nil
}
