// Package trace renders a human-readable explanation of one kernel decision.
package trace

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/cory-johannsen/brewer/internal/game/ai"
	"github.com/cory-johannsen/brewer/internal/game/recipe"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	actionColor = color.New(color.FgYellow, color.Bold)
	passColor   = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
)

// Explainer decides turns with a kernel and writes the reasoning to w.
type Explainer struct {
	w      io.Writer
	kernel *ai.Kernel
}

// NewExplainer returns an Explainer writing to w.
//
// Precondition: w and kernel must not be nil.
func NewExplainer(w io.Writer, kernel *ai.Kernel) *Explainer {
	return &Explainer{w: w, kernel: kernel}
}

// Explain decides turn and prints the potion ranking, the bridging search
// steps, and the chosen action under title.
func (e *Explainer) Explain(title string, turn *recipe.Turn) ai.Decision {
	titleColor.Fprintf(e.w, "\n== %s ==\n", title)
	fmt.Fprintf(e.w, "inventory %s  score %d\n", turn.Me.Inventory, turn.Me.Score)

	decision := e.kernel.Decide(turn)

	fmt.Fprintln(e.w, "\npotions:")
	e.printRanking(ai.Ranking(turn.Catalog.Potions, turn.Me.Inventory, e.kernel.Scorer()))

	if decision.Search != nil {
		fmt.Fprintln(e.w, "\nbridging search:")
		e.printSteps(decision.Search.Steps)
	}

	fmt.Fprint(e.w, "\naction: ")
	actionColor.Fprintln(e.w, decision.Action.String())
	return decision
}

// Check compares a decision against the expected wire form and prints the
// verdict. An empty expect is always satisfied.
func (e *Explainer) Check(decision ai.Decision, expect string) bool {
	if expect == "" {
		return true
	}
	if got := decision.Action.String(); got != expect {
		failColor.Fprintf(e.w, "FAIL: want %q, got %q\n", expect, got)
		return false
	}
	passColor.Fprintln(e.w, "PASS")
	return true
}

func (e *Explainer) printRanking(rows []ai.RankedPotion) {
	if len(rows) == 0 {
		fmt.Fprintln(e.w, "  (none)")
		return
	}
	table := tablewriter.NewTable(e.w,
		tablewriter.WithHeader([]string{"Potion", "Cost", "Price", "Score", "Brewable"}),
	)
	for _, r := range rows {
		_ = table.Append([]string{
			strconv.Itoa(r.Potion.ID),
			r.Potion.Cost.String(),
			strconv.Itoa(r.Potion.Price),
			strconv.Itoa(r.Score),
			strconv.FormatBool(r.Brewable),
		})
	}
	_ = table.Render()
}

func (e *Explainer) printSteps(steps []ai.SearchStep) {
	if len(steps) == 0 {
		fmt.Fprintln(e.w, "  (no spells)")
		return
	}
	table := tablewriter.NewTable(e.w,
		tablewriter.WithHeader([]string{"Step", "Spell", "Deficit", "Usefulness", "Verdict"}),
	)
	for i, s := range steps {
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.SpellID),
			s.Deficit.String(),
			strconv.Itoa(s.Usefulness),
			string(s.Verdict),
		})
	}
	_ = table.Render()
}
