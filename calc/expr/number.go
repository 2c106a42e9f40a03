package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type NumberKind uint8

const (
	KindInt NumberKind = iota
	KindFloat
)

// Number is an evaluation result: either an exact int64 or a float64.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
}

func Int(v int64) Number { return Number{kind: KindInt, i: v} }

func Float(f float64) Number { return Number{kind: KindFloat, f: f} }

func (n Number) Kind() NumberKind { return n.kind }

func (n Number) IsInt() bool { return n.kind == KindInt }

func (n Number) IsFloat() bool { return n.kind == KindFloat }

// Int64 returns the integer value; ok is false for floats.
func (n Number) Int64() (v int64, ok bool) {
	if n.kind != KindInt {
		return 0, false
	}
	return n.i, true
}

func (n Number) Float64() float64 {
	if n.kind == KindInt {
		return float64(n.i)
	}
	return n.f
}

// String formats integers in plain decimal and floats in their shortest
// round-trip form. Floats always carry a fractional part ("3.0") and switch
// to exponent notation outside 1e-4 <= |f| < 1e16 ("1e-05", "1e+16").
func (n Number) String() string {
	if n.kind == KindInt {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, expText, _ := strings.Cut(s, "e")
	exp, err := strconv.Atoi(expText)
	if err != nil {
		return s
	}

	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign = "-"
		mant = mant[1:]
	}
	digits := strings.Replace(mant, ".", "", 1)

	if exp < -4 || exp >= 16 {
		out := digits[:1]
		if len(digits) > 1 {
			out += "." + digits[1:]
		}
		expSign := '+'
		if exp < 0 {
			expSign = '-'
			exp = -exp
		}
		return fmt.Sprintf("%s%se%c%02d", sign, out, expSign, exp)
	}

	if exp < 0 {
		return sign + "0." + strings.Repeat("0", -exp-1) + digits
	}
	if len(digits) <= exp+1 {
		return sign + digits + strings.Repeat("0", exp+1-len(digits)) + ".0"
	}
	return sign + digits[:exp+1] + "." + digits[exp+1:]
}
