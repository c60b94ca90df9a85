package formula

import (
	"fmt"
	"strconv"

	"github.com/xuri/efp"
)

// tokenKind tags the reduced token alphabet this package's parser consumes.
// The Excel grammar efp understands is far larger than the four-operator
// arithmetic this spec supports; tokenize folds the subset it needs and
// rejects everything else as a parse error.
type tokenKind int

const (
	tokNumber tokenKind = iota
	tokRef
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string // raw operand text (number literal or "A1"-style reference)
	op   byte   // '+', '-', '*', '/' when kind == tokOp
}

// tokenize lexes expr (the text following the leading '=') using the efp
// Excel-formula tokenizer, reducing its token stream to the alphabet this
// package's recursive-descent parser understands.
func tokenize(expr string) ([]token, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrParse)
	}
	raw := efp.ExcelParser().Parse(expr)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: unparsable expression %q", ErrParse, expr)
	}

	tokens := make([]token, 0, len(raw))
	for _, t := range raw {
		switch t.TType {
		case efp.TokenTypeOperand:
			switch t.TSubType {
			case efp.TokenSubTypeNumber:
				if _, err := strconv.ParseFloat(t.TValue, 64); err != nil {
					return nil, fmt.Errorf("%w: bad numeric literal %q", ErrParse, t.TValue)
				}
				tokens = append(tokens, token{kind: tokNumber, text: t.TValue})
			case efp.TokenSubTypeRange:
				tokens = append(tokens, token{kind: tokRef, text: t.TValue})
			default:
				return nil, fmt.Errorf("%w: unsupported operand %q", ErrParse, t.TValue)
			}
		case efp.TokenTypeOperatorInfix, efp.TokenTypeOperatorPrefix:
			if len(t.TValue) != 1 || !isArithOp(t.TValue[0]) {
				return nil, fmt.Errorf("%w: unsupported operator %q", ErrParse, t.TValue)
			}
			tokens = append(tokens, token{kind: tokOp, op: t.TValue[0]})
		case efp.TokenTypeSubexpression:
			switch t.TSubType {
			case efp.TokenSubTypeStart:
				tokens = append(tokens, token{kind: tokLParen})
			case efp.TokenSubTypeStop:
				tokens = append(tokens, token{kind: tokRParen})
			default:
				return nil, fmt.Errorf("%w: unsupported subexpression", ErrParse)
			}
		case efp.TokenTypeWhiteSpace:
			// ignored
		default:
			return nil, fmt.Errorf("%w: unsupported token %q", ErrParse, t.TValue)
		}
	}
	return tokens, nil
}

func isArithOp(b byte) bool {
	return b == '+' || b == '-' || b == '*' || b == '/'
}
