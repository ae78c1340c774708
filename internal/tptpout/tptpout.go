// Package tptpout renders a saturation run's result as TPTP-style
// derivation lines and the closing SZS status/answer lines, per §6.
package tptpout

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fologic/saturn/internal/answer"
	"github.com/fologic/saturn/internal/clausenote"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/term"
)

// Status is an SZS ontology status string, per the TPTP reporting
// convention this package's output follows.
type Status string

const (
	StatusTheorem            Status = "Theorem"
	StatusUnsatisfiable      Status = "Unsatisfiable"
	StatusCounterSatisfiable Status = "CounterSatisfiable"
	StatusSatisfiable        Status = "Satisfiable"
	StatusTimeout            Status = "Timeout"
	StatusResourceOut        Status = "ResourceOut"
	StatusGaveUp             Status = "GaveUp"
)

// formatLiteral renders lit in TPTP-ish infix/prefix notation, naming
// its predicate through syms rather than through Literal.String's
// synthetic "$predN" placeholder (predicate identity is by integer id
// internally; syms is what recovers the surface name, per
// clausenote.SymbolTable's doc comment).
func formatLiteral(syms *clausenote.SymbolTable, l term.Literal) string {
	if l.IsEquality() {
		op := "="
		if !l.Polarity() {
			op = "!="
		}
		return l.Args()[0].String() + op + l.Args()[1].String()
	}
	if answer.IsAnswerLiteral(l) {
		return formatArgs("$answer", l.Args())
	}
	prefix := ""
	if !l.Polarity() {
		prefix = "~"
	}
	return prefix + formatArgs(syms.NameFor(l.Predicate()), l.Args())
}

func formatArgs(name string, args []*term.Term) string {
	if len(args) == 0 {
		return name
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(parts, ","))
}

func formatClauseFormula(syms *clausenote.SymbolTable, c *term.Clause) string {
	if c.IsEmpty() {
		return "$false"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = formatLiteral(syms, l)
	}
	return strings.Join(parts, " | ")
}

// WriteDerivation writes one cnf(...) line for refutation and every
// ancestor in its inference DAG that has a materialized clause in
// clauses, ordered so that every premise is printed before anything
// that cites it (sound, since clause/unit ids are allocated
// monotonically and a unit's parents always predate it).
func WriteDerivation(w io.Writer, syms *clausenote.SymbolTable, infStore *inference.Store, clauses []*term.Clause, refutation *term.Clause) error {
	byUnit := make(map[uint64]*term.Clause, len(clauses)+1)
	for _, c := range clauses {
		if u, ok := c.Derivation.(*inference.Unit); ok {
			byUnit[u.ID] = c
		}
	}
	if u, ok := refutation.Derivation.(*inference.Unit); ok {
		byUnit[u.ID] = refutation
	}

	var units []*inference.Unit
	if u, ok := refutation.Derivation.(*inference.Unit); ok {
		units = inference.Ancestors(u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })

	for _, u := range units {
		c, ok := byUnit[u.ID]
		if !ok {
			continue
		}
		if err := writeClauseLine(w, syms, infStore, u, c); err != nil {
			return err
		}
	}
	if _, ok := refutation.Derivation.(*inference.Unit); !ok {
		// No derivation attached (e.g. a hand-built test refutation):
		// still report the refutation clause itself, parentless.
		if _, err := fmt.Fprintf(w, "cnf(refutation,plain,%s,inference(unknown,[status(thm)],[])).\n", formatClauseFormula(syms, refutation)); err != nil {
			return err
		}
	}
	return nil
}

func writeClauseLine(w io.Writer, syms *clausenote.SymbolTable, infStore *inference.Store, u *inference.Unit, c *term.Clause) error {
	name := u.Name()
	if name == "" {
		name = fmt.Sprintf("c%d", u.ID)
		infStore.SetName(u, name)
	}
	role := c.InputType.String()
	if len(u.Parents()) == 0 {
		_, err := fmt.Fprintf(w, "cnf(%s,%s,%s).\n", name, role, formatClauseFormula(syms, c))
		return err
	}
	parentNames := make([]string, len(u.Parents()))
	for i, p := range u.Parents() {
		pn := p.Name()
		if pn == "" {
			pn = fmt.Sprintf("c%d", p.ID)
			infStore.SetName(p, pn)
		}
		parentNames[i] = pn
	}
	_, err := fmt.Fprintf(w, "cnf(%s,%s,%s,inference(%s,[status(thm)],[%s])).\n",
		name, role, formatClauseFormula(syms, c), u.Rule(), strings.Join(parentNames, ","))
	return err
}

// WriteAnswerTuple writes the "% SZS answers Tuple [...]" line for a
// found answer witness, per §6.
func WriteAnswerTuple(w io.Writer, problemName string, witness *answer.Witness) error {
	parts := make([]string, len(witness.Args))
	for i, a := range witness.Args {
		parts[i] = a.String()
	}
	_, err := fmt.Fprintf(w, "%% SZS answers Tuple [[%s]] for %s\n", strings.Join(parts, ","), problemName)
	return err
}

// WriteStatus writes the closing "% SZS status <Status> for <problem>"
// line, per §6.
func WriteStatus(w io.Writer, problemName string, status Status) error {
	_, err := fmt.Fprintf(w, "%% SZS status %s for %s\n", status, problemName)
	return err
}
