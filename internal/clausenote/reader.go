package clausenote

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/term"
)

// Problem is the result of reading a clause-notation document: the
// ordinary (axiom) clauses and, separately, any goal clauses ("?-"
// lines), since the latter carry free variables that become an
// answer-literal query rather than ordinary CNF input.
type Problem struct {
	Axioms []*term.Clause
	Goals  []*term.Clause
}

// Read parses every non-blank, non-comment line of r as one clause,
// per the notation documented in lexer.go. Lines starting with '%' are
// comments, matching the TPTP convention the output side also uses.
func Read(ctx *proverctx.Context, syms *SymbolTable, r io.Reader) (Problem, error) {
	var problem Problem
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		lits, isGoal, err := ParseClause(ctx.Terms, syms, line)
		if err != nil {
			return Problem{}, errors.Wrapf(err, "clausenote: line %d", lineNo)
		}
		inputType := term.InputAxiom
		if isGoal {
			inputType = term.InputHypothesis
		}
		clause := term.NewClause(ctx.NextClauseID(), lits, inputType)
		if isGoal {
			problem.Goals = append(problem.Goals, clause)
		} else {
			problem.Axioms = append(problem.Axioms, clause)
		}
	}
	if err := scanner.Err(); err != nil {
		return Problem{}, errors.Wrap(err, "clausenote: reading input")
	}
	return problem, nil
}
