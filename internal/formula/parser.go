package formula

import (
	"fmt"
	"strconv"

	"github.com/kalexmills/gridsheet/internal/position"
)

// parseExpr, parseTerm, parseFactor, parseUnary and parsePrimary implement
// the same recursive-descent shape as the teacher's expr.go, adapted to
// the token alphabet tokenize produces from efp.
func parseExpr(tokens []token) (expr, []token, error) {
	return parseTerm(tokens)
}

func parseTerm(tokens []token) (expr, []token, error) {
	return parseBinExpr(tokens, func(op byte) bool { return op == '+' || op == '-' }, parseFactor)
}

func parseFactor(tokens []token) (expr, []token, error) {
	return parseBinExpr(tokens, func(op byte) bool { return op == '*' || op == '/' }, parseUnary)
}

func parseBinExpr(tokens []token, accept func(byte) bool, next func([]token) (expr, []token, error)) (expr, []token, error) {
	x, rest, err := next(tokens)
	if err != nil {
		return nil, nil, err
	}
	for len(rest) > 0 && rest[0].kind == tokOp && accept(rest[0].op) {
		op := rest[0].op
		y, tail, err := next(rest[1:])
		if err != nil {
			return nil, nil, err
		}
		x = binaryExpr{op: op, x: x, y: y}
		rest = tail
	}
	return x, rest, nil
}

func parseUnary(tokens []token) (expr, []token, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: expected a term; found nothing", ErrParse)
	}
	if tokens[0].kind == tokOp && tokens[0].op == '-' {
		x, rest, err := parseUnary(tokens[1:])
		if err != nil {
			return nil, nil, err
		}
		if n, ok := x.(numberExpr); ok {
			return numberExpr{value: -n.value}, rest, nil
		}
		return unaryExpr{op: '-', x: x}, rest, nil
	}
	return parsePrimary(tokens)
}

func parsePrimary(tokens []token) (expr, []token, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("%w: expected a term; found nothing", ErrParse)
	}
	t := tokens[0]
	switch t.kind {
	case tokNumber:
		n := mustParseFloat(t.text)
		return numberExpr{value: n}, tokens[1:], nil
	case tokRef:
		pos, err := position.Parse(t.text)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: bad cell reference %q", ErrParse, t.text)
		}
		return refExpr{pos: pos}, tokens[1:], nil
	case tokLParen:
		inner, rest, err := parseExpr(tokens[1:])
		if err != nil {
			return nil, nil, err
		}
		if len(rest) == 0 || rest[0].kind != tokRParen {
			return nil, nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		return inner, rest[1:], nil
	default:
		return nil, nil, fmt.Errorf("%w: unexpected token", ErrParse)
	}
}

// mustParseFloat is safe because tokenize already validated the literal.
func mustParseFloat(s string) float64 {
	n, _ := strconv.ParseFloat(s, 64)
	return n
}
