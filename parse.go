package fieldgen

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Expr = Term | Expr ('+' | '-') Term
// Term = Unary | Term ('*' | '/') Unary
// Unary = Power | '-' Unary | '+' Unary
// Power = Primary | Primary '^' Unary
// Primary = num | name | Call | '(' Expr ')'
// Call = name '(' ')' | name '(' Expr { ',' Expr } ')'

// Parse parses an expression using a Factory with the default registry and
// no parameters or mesh.
func Parse(src io.RuneScanner) (Generator, error) {
	return New().Parse(src)
}

// ParseString parses a string expression using a Factory with the default
// registry and no parameters or mesh.
func ParseString(src string) (Generator, error) {
	return New().ParseString(src)
}

// Parse parses an expression into a generator tree. Names are resolved
// through the factory's registry and parameter bindings at parse time, so
// the returned tree never fails to evaluate. Errors from invalid input
// implement InputError.
func (f *Factory) Parse(src io.RuneScanner) (Generator, error) {
	scan := lex(src)
	g, err := parseterm(scan, f, exprprec)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, "")
	}
	return g, nil
}

// ParseString parses a string expression into a generator tree.
func (f *Factory) ParseString(src string) (Generator, error) {
	return f.Parse(strings.NewReader(src))
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, f *Factory, until operator) (Generator, error) {
	n, err := parselhs(scan, f, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == 0 {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, f, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyAtNext(scan)
			}
			n = &binaryOp{prec.op, n, rhs}
		case tokenNum, tokenIdent, tokenOpen:
			// There is no implicit multiplication: an operand following a
			// complete term is an error.
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("fieldgen: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, f *Factory, until operator) (Generator, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n Generator
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			if !errors.Is(err, strconv.ErrRange) {
				// The lexer checked the syntax already.
				panic("fieldgen: invalid number: " + tok.text)
			}
			// Out-of-range literals saturate to 0 or infinity.
		}
		n = Const(v)
	case tokenIdent:
		name := tok.text
		nxt, err := scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind != tokenOpen {
			scan.push(nxt)
			n, err = f.lookup(name, tok.pos)
			if err != nil {
				return nil, err
			}
			break
		}
		args, err := parseargs(scan, f, nxt)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			panic("fieldgen: parseargs ended on " + end.String() + " instead of close bracket")
		}
		n, err = f.build(name, args, tok.pos)
		if err != nil {
			return nil, err
		}
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == 0 {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y parses as x^(-y). Just use the encompassing operator's
			// precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, f, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyAtNext(scan)
		}
		if tok.text == "-" {
			n = Unary("-", neg, rhs)
		} else {
			// Unary plus is a no-op.
			n = rhs
		}
	case tokenOpen:
		rhs, err := parseterm(scan, f, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, tok.text)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be part of an empty argument list, so just let the
		// caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("fieldgen: unknown token: " + tok.String())
	}
	return n, nil
}

// parseargs parses a bracketed list of zero or more arguments. Arity is the
// business of the generator kind being called, so an empty list is legal
// here.
func parseargs(scan *lexer, f *Factory, open lexToken) ([]Generator, error) {
	var args []Generator
	for {
		g, err := parseterm(scan, f, exprprec)
		if err != nil {
			// An empty expression ended by EOF means the call bracket was
			// never closed, which is the more helpful report.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			// Caller checks that brackets match.
			scan.push(end)
			if g == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, g), nil
		case tokenSep:
			if g == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, g)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open.text, Right: ""}
		default:
			panic("fieldgen: parseterm ended on non-end token " + end.String())
		}
	}
}

// emptyAtNext creates an EmptyExpressionError at the position of the token
// that ended an empty subexpression, without consuming it.
func emptyAtNext(scan *lexer) error {
	end := scan.must()
	scan.push(end)
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// neg is unary minus.
func neg(v float64) float64 {
	return -v
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the bracket that the
// expression should have matched, or the empty string if none.
func itShouldNotHaveEndedThisWay(tok lexToken, open string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: open, Right: ""}
	case tokenClose:
		// A close bracket at the end of the input had no opening match.
		return &BracketError{Col: tok.pos, Left: open, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("fieldgen: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Lower is less binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator byte used when building the node, or 0 for no
	// operator.
	op byte
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of 0.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, '+'}
	case "-":
		return operator{1, false, '-'}
	case "*":
		return operator{5, false, '*'}
	case "/":
		return operator{5, false, '/'}
	case "^":
		return operator{15, true, '^'}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of 0.
func unop(text string) operator {
	switch text {
	case "+", "-":
		return operator{10, true, text[0]}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, 0}
