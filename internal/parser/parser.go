// Package parser implements a precedence-climbing parser that turns the
// token stream produced by internal/lexer into an internal/ast expression
// tree.
package parser

import (
	"fmt"

	"github.com/dalzilio/symlogic/internal/ast"
	"github.com/dalzilio/symlogic/internal/lexer"
)

// Error reports a grammar violation.
type Error struct {
	Pos      ast.Position
	Expected string
	Found    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at %s: expected %s, found %s", e.Pos, e.Expected, e.Found)
}

// Parse tokenizes and parses src, returning the root of the expression
// tree.
func Parse(src string) (*ast.Node, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind != lexer.EOF {
		return nil, p.errorf("end of input", p.cur())
	}
	return n, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(expected string, found lexer.Token) error {
	return &Error{Pos: found.Pos, Expected: expected, Found: tokenText(found)}
}

func tokenText(t lexer.Token) string {
	if t.Kind == lexer.EOF {
		return "end of input"
	}
	if t.Text != "" {
		return t.Text
	}
	return "token"
}

func (p *parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if p.cur().Kind != k {
		return lexer.Token{}, p.errorf(what, p.cur())
	}
	return p.advance(), nil
}

// countable is a vector-or-integer primary that has not yet been attached to
// a comparator. It is only a legal standalone expression once paired with a
// comparator at the cardinality-comparison precedence level.
type countable struct {
	isVector bool
	items    []*ast.Node
	value    int
	pos      ast.Position
}

// ***********************************************************************
// level 1: <=> / iff / eq (right-assoc)

func (p *parser) parseIff() (*ast.Node, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.BIARROW || p.cur().Kind == lexer.IFF {
		pos := p.advance().Pos
		right, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		return ast.Bin(pos, ast.OpIff, left, right), nil
	}
	return left, nil
}

// level 2: => / implies / in (right-assoc)

func (p *parser) parseImplies() (*ast.Node, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur().Kind == lexer.ARROW || p.cur().Kind == lexer.IMPLIES || p.cur().Kind == lexer.IN {
		pos := p.advance().Pos
		right, err := p.parseImplies()
		if err != nil {
			return nil, err
		}
		return ast.Bin(pos, ast.OpImplies, left, right), nil
	}
	return left, nil
}

// level 3: | / or, nor (left-assoc)

func (p *parser) parseOr() (*ast.Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.PIPE || p.cur().Kind == lexer.OR || p.cur().Kind == lexer.NOR {
		op := ast.OpOr
		if p.cur().Kind == lexer.NOR {
			op = ast.OpNor
		}
		pos := p.advance().Pos
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(pos, op, left, right)
	}
	return left, nil
}

// level 4: ^ / xor (left-assoc)

func (p *parser) parseXor() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.CARET || p.cur().Kind == lexer.XOR {
		pos := p.advance().Pos
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(pos, ast.OpXor, left, right)
	}
	return left, nil
}

// level 5: & / and, nand (left-assoc)

func (p *parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseCompareWrapped()
	if err != nil {
		return nil, err
	}
	for p.cur().Kind == lexer.AMP || p.cur().Kind == lexer.AND || p.cur().Kind == lexer.NAND {
		op := ast.OpAnd
		if p.cur().Kind == lexer.NAND {
			op = ast.OpNand
		}
		pos := p.advance().Pos
		right, err := p.parseCompareWrapped()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(pos, op, left, right)
	}
	return left, nil
}

// parseCompareWrapped resolves the cardinality-comparison level and rejects
// a bare countable (vector or integer literal) left dangling without a
// comparator: those are not valid boolean formulas on their own.
func (p *parser) parseCompareWrapped() (*ast.Node, error) {
	n, c, err := p.parseCompare()
	if err != nil {
		return nil, err
	}
	if n != nil {
		return n, nil
	}
	return nil, &Error{Pos: c.pos, Expected: "comparator", Found: "end of cardinality vector"}
}

// level 6: counting comparator (non-associative)

func (p *parser) parseCompare() (*ast.Node, *countable, error) {
	left, leftCountable, err := p.parseUnary()
	if err != nil {
		return nil, nil, err
	}
	if left != nil {
		// a regular boolean primary: no comparator can follow it here.
		return left, nil, nil
	}

	cmp, ok := comparatorFor(p.cur().Kind)
	if !ok {
		// a dangling countable; let the caller report the error with
		// position information.
		return nil, leftCountable, nil
	}
	if !leftCountable.isVector {
		return nil, nil, &Error{Pos: leftCountable.pos, Expected: "cardinality vector '[...]'", Found: "integer literal"}
	}
	pos := p.advance().Pos

	rightNode, rightCountable, err := p.parseUnary()
	if err != nil {
		return nil, nil, err
	}
	if rightNode != nil {
		return nil, nil, &Error{Pos: pos, Expected: "vector or integer", Found: "boolean expression"}
	}
	if rightCountable == nil {
		return nil, nil, p.errorf("vector or integer", p.cur())
	}

	if rightCountable.isVector {
		return ast.CardVector(pos, leftCountable.vector(), cmp, rightCountable.vector()), nil, nil
	}
	return ast.CardConst(pos, leftCountable.vector(), cmp, rightCountable.value), nil, nil
}

func (c *countable) vector() []*ast.Node {
	if c.isVector {
		return c.items
	}
	return nil
}

func comparatorFor(k lexer.Kind) (ast.Comparator, bool) {
	switch k {
	case lexer.EQ:
		return ast.CmpEq, true
	case lexer.LT:
		return ast.CmpLt, true
	case lexer.LE:
		return ast.CmpLe, true
	case lexer.GT:
		return ast.CmpGt, true
	case lexer.GE:
		return ast.CmpGe, true
	}
	return 0, false
}

// level 7/8: unary !/-/not, and atoms. parseUnary returns either a boolean
// ast.Node (n != nil) or a countable primary (c != nil), never both.
func (p *parser) parseUnary() (n *ast.Node, c *countable, err error) {
	switch p.cur().Kind {
	case lexer.BANG, lexer.MINUS, lexer.NOT:
		pos := p.advance().Pos
		sub, subC, err := p.parseUnary()
		if err != nil {
			return nil, nil, err
		}
		if sub == nil {
			return nil, nil, &Error{Pos: pos, Expected: "boolean expression", Found: "vector or integer"}
		}
		_ = subC
		return ast.Not(pos, sub), nil, nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (*ast.Node, *countable, error) {
	tok := p.cur()
	switch tok.Kind {
	case lexer.TRUE:
		p.advance()
		return ast.Bool(tok.Pos, true), nil, nil
	case lexer.FALSE:
		p.advance()
		return ast.Bool(tok.Pos, false), nil, nil
	case lexer.IDENT:
		p.advance()
		return ast.Var(tok.Pos, tok.Text), nil, nil
	case lexer.INT:
		p.advance()
		return nil, &countable{value: tok.Int, pos: tok.Pos}, nil
	case lexer.LPAREN:
		p.advance()
		n, err := p.parseIff()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, nil, err
		}
		return n, nil, nil
	case lexer.LBRACK:
		return p.parseVector()
	case lexer.IF:
		return p.parseIte()
	case lexer.FORALL, lexer.EXISTS, lexer.ALL:
		return p.parseQuant()
	case lexer.MU, lexer.NU, lexer.LFP, lexer.GFP:
		return p.parseFixpoint()
	}
	return nil, nil, p.errorf("expression", tok)
}

func (p *parser) parseVector() (*ast.Node, *countable, error) {
	pos := p.cur().Pos
	if _, err := p.expect(lexer.LBRACK, "'['"); err != nil {
		return nil, nil, err
	}
	var elems []*ast.Node
	if p.cur().Kind != lexer.RBRACK {
		for {
			e, err := p.parseIff()
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, e)
			if p.cur().Kind != lexer.COMMA {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACK, "']'"); err != nil {
		return nil, nil, err
	}
	return nil, &countable{isVector: true, items: elems, pos: pos}, nil
}

func (p *parser) parseIte() (*ast.Node, *countable, error) {
	pos := p.advance().Pos // 'if'
	cond, err := p.parseIff()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.THEN, "'then'"); err != nil {
		return nil, nil, err
	}
	then, err := p.parseIff()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.ELSE, "'else'"); err != nil {
		return nil, nil, err
	}
	els, err := p.parseIff()
	if err != nil {
		return nil, nil, err
	}
	return ast.Ite(pos, cond, then, els), nil, nil
}

func (p *parser) parseQuant() (*ast.Node, *countable, error) {
	tok := p.advance()
	q := ast.QuantExists
	if tok.Kind == lexer.FORALL || tok.Kind == lexer.ALL {
		q = ast.QuantForall
	}
	vars, err := p.parseVarList()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.HASH, "'#'"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseIff()
	if err != nil {
		return nil, nil, err
	}
	return ast.Quant(tok.Pos, q, vars, body), nil, nil
}

func (p *parser) parseFixpoint() (*ast.Node, *countable, error) {
	tok := p.advance()
	kind := ast.FixMu
	if tok.Kind == lexer.NU || tok.Kind == lexer.GFP {
		kind = ast.FixNu
	}
	name, err := p.expect(lexer.IDENT, "fixed-point variable")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.HASH, "'#'"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseIff()
	if err != nil {
		return nil, nil, err
	}
	return ast.Fixpoint(tok.Pos, kind, name.Text, body), nil, nil
}

func (p *parser) parseVarList() ([]string, error) {
	var vars []string
	for {
		name, err := p.expect(lexer.IDENT, "variable name")
		if err != nil {
			return nil, err
		}
		vars = append(vars, name.Text)
		if p.cur().Kind != lexer.COMMA {
			break
		}
		p.advance()
	}
	return vars, nil
}
