package clausenote

import (
	"unicode"

	"github.com/pkg/errors"

	"github.com/fologic/saturn/internal/term"
)

// Parser implements recursive-descent parsing of one clause-notation
// line into a slice of literals, mirroring the teacher's
// classical.Parser shape (match/check/advance/peek/previous) but over
// the clause-notation token set instead of propositional connectives.
type Parser struct {
	tokens  []Token
	current int

	store  *term.Store
	syms   *SymbolTable
	vars   map[string]*term.Term
	source string
}

// ParseClause parses one line of clause notation into its literals. A
// line beginning with "?-" is a goal clause (§4.H's negated-conjecture
// surrogate): isGoal reports this, with the "?-" marker itself
// stripped before tokenizing.
func ParseClause(store *term.Store, syms *SymbolTable, line string) (lits []term.Literal, isGoal bool, err error) {
	trimmed := line
	if len(trimmed) >= 2 && trimmed[0] == '?' && trimmed[1] == '-' {
		isGoal = true
		trimmed = trimmed[2:]
	}

	lexer := NewLexer(trimmed)
	tokens := lexer.Lex()
	for _, tok := range tokens {
		if tok.Type == TokenError {
			return nil, false, errors.Errorf("clausenote: invalid character %q at position %d", tok.Value, tok.Position)
		}
	}

	p := &Parser{tokens: tokens, store: store, syms: syms, vars: make(map[string]*term.Term), source: line}
	lits, err = p.parseClauseBody()
	if err != nil {
		return nil, false, err
	}
	if !p.isAtEnd() {
		return nil, false, errors.Errorf("clausenote: unexpected token %q at position %d", p.peek().Value, p.peek().Position)
	}
	return lits, isGoal, nil
}

func (p *Parser) parseClauseBody() ([]term.Literal, error) {
	first, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	lits := []term.Literal{first}
	for p.match(TokenPipe) {
		next, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		lits = append(lits, next)
	}
	return lits, nil
}

func (p *Parser) parseLiteral() (term.Literal, error) {
	negated := p.match(TokenTilde)

	lhs, err := p.parseTerm()
	if err != nil {
		return term.Literal{}, err
	}

	if p.match(TokenEq) {
		rhs, err := p.parseTerm()
		if err != nil {
			return term.Literal{}, err
		}
		return term.AsLiteral(p.store.Literal(0, !negated, true, []*term.Term{lhs, rhs}, "")), nil
	}
	if p.match(TokenNeq) {
		rhs, err := p.parseTerm()
		if err != nil {
			return term.Literal{}, err
		}
		return term.AsLiteral(p.store.Literal(0, negated, true, []*term.Term{lhs, rhs}, "")), nil
	}

	if lhs.IsVar() {
		return term.Literal{}, errors.Errorf("clausenote: a bare variable cannot be used as a predicate in %q", p.source)
	}
	pred := p.syms.IDFor(lhs.Functor().Name)
	return term.AsLiteral(p.store.Literal(pred, !negated, false, lhs.Args(), "")), nil
}

// parseTerm parses a variable, a nullary constant, or a compound
// f(arg, ...), used both for predicate heads and for equality operands.
func (p *Parser) parseTerm() (*term.Term, error) {
	tok := p.peek()
	if tok.Type != TokenIdent {
		return nil, errors.Errorf("clausenote: expected a term at position %d", tok.Position)
	}
	p.advance()

	if isVariableName(tok.Value) {
		if v, ok := p.vars[tok.Value]; ok {
			return v, nil
		}
		v := term.Var(uint32(len(p.vars)), 0)
		p.vars[tok.Value] = v
		return v, nil
	}

	var args []*term.Term
	if p.match(TokenLParen) {
		for {
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
		if !p.match(TokenRParen) {
			return nil, errors.Errorf("clausenote: expected ')' at position %d", p.peek().Position)
		}
	}
	return p.store.Compound(term.Functor{Name: tok.Value, Arity: len(args)}, args, false), nil
}

// isVariableName follows the Prolog-derived convention used throughout
// the clause notation: an identifier starting with an uppercase letter
// or underscore names a variable, everything else names a function or
// predicate symbol.
func isVariableName(name string) bool {
	if name == "" {
		return false
	}
	r := rune(name[0])
	return unicode.IsUpper(r) || r == '_'
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tt TokenType) bool {
	return !p.isAtEnd() && p.peek().Type == tt
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool { return p.peek().Type == TokenEOF }
func (p *Parser) peek() Token   { return p.tokens[p.current] }
func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}
