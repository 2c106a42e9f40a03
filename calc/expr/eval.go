package expr

import (
	"fmt"
	"math"
	"strings"
)

// Node is a parsed expression.
type Node interface {
	Eval() (Number, error)
	String() string
}

type nodeNumber struct {
	v Number
}

type nodeUnary struct {
	op byte
	x  Node
}

type nodeBinary struct {
	op    byte
	left  Node
	right Node
}

func (n nodeNumber) Eval() (Number, error) { return n.v, nil }

func (n nodeNumber) String() string { return n.v.String() }

func (n nodeUnary) Eval() (Number, error) {
	x, err := n.x.Eval()
	if err != nil {
		return Number{}, err
	}
	if n.op == '+' {
		return x, nil
	}
	if x.IsInt() {
		if x.i == math.MinInt64 {
			return Float(-float64(x.i)), nil
		}
		return Int(-x.i), nil
	}
	return Float(-x.f), nil
}

func (n nodeUnary) String() string { return "(" + string(n.op) + n.x.String() + ")" }

func (n nodeBinary) Eval() (Number, error) {
	a, err := n.left.Eval()
	if err != nil {
		return Number{}, err
	}
	b, err := n.right.Eval()
	if err != nil {
		return Number{}, err
	}
	switch n.op {
	case '+':
		return add(a, b)
	case '-':
		return sub(a, b)
	case '*':
		return mul(a, b)
	case '/':
		return div(a, b)
	case '^':
		return pow(a, b)
	default:
		return Number{}, fmt.Errorf("%w: unknown operator %q", ErrEval, n.op)
	}
}

func (n nodeBinary) String() string {
	op := string(n.op)
	if n.op == '^' {
		op = "**"
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.left.String())
	sb.WriteByte(' ')
	sb.WriteString(op)
	sb.WriteByte(' ')
	sb.WriteString(n.right.String())
	sb.WriteByte(')')
	return sb.String()
}

// Integer results that leave the int64 range are recomputed in float64.

func add(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		if v, ok := addChecked(a.i, b.i); ok {
			return Int(v), nil
		}
	}
	return Float(a.Float64() + b.Float64()), nil
}

func sub(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		if v, ok := subChecked(a.i, b.i); ok {
			return Int(v), nil
		}
	}
	return Float(a.Float64() - b.Float64()), nil
}

func mul(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		if v, ok := mulChecked(a.i, b.i); ok {
			return Int(v), nil
		}
	}
	return Float(a.Float64() * b.Float64()), nil
}

// div is true division: the result is always a float.
func div(a, b Number) (Number, error) {
	if b.Float64() == 0 {
		return Number{}, fmt.Errorf("%w: %w", ErrEval, ErrDivisionByZero)
	}
	return Float(a.Float64() / b.Float64()), nil
}

func pow(a, b Number) (Number, error) {
	if a.IsInt() && b.IsInt() {
		if b.i >= 0 {
			if v, ok := powInt(a.i, b.i); ok {
				return Int(v), nil
			}
		} else if a.i == 0 {
			return Number{}, fmt.Errorf("%w: %w: zero to a negative power", ErrEval, ErrDivisionByZero)
		}
	}

	x := a.Float64()
	y := b.Float64()
	if x == 0 && y < 0 {
		return Number{}, fmt.Errorf("%w: %w: zero to a negative power", ErrEval, ErrDivisionByZero)
	}
	if x < 0 && !math.IsInf(y, 0) && y != math.Trunc(y) {
		return Number{}, fmt.Errorf("%w: %w: %s ** %s", ErrEval, ErrDomain, a, b)
	}
	r := math.Pow(x, y)
	if math.IsInf(r, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return Number{}, fmt.Errorf("%w: %w: %s ** %s", ErrEval, ErrOverflow, a, b)
	}
	return Float(r), nil
}

// powInt reports false when the result does not fit in an int64.
func powInt(base, exp int64) (int64, bool) {
	out := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			v, ok := mulChecked(out, base)
			if !ok {
				return 0, false
			}
			out = v
		}
		exp >>= 1
		if exp == 0 {
			break
		}
		v, ok := mulChecked(base, base)
		if !ok {
			return 0, false
		}
		base = v
	}
	return out, true
}

func addChecked(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subChecked(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}

func mulChecked(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	r := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || r/b != a {
		return 0, false
	}
	return r, true
}
