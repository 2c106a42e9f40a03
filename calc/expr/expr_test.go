package expr

import (
	"errors"
	"testing"
)

func TestEval_Results(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2+3", want: "5"},
		{in: "2+3*4", want: "14"},
		{in: "(2+3)*4", want: "20"},
		{in: "10-4-3", want: "3"},
		{in: "6/2", want: "3.0"},
		{in: "1/3", want: "0.3333333333333333"},
		{in: "9**0.5", want: "3.0"},
		{in: "2**0.5", want: "1.4142135623730951"},
		{in: "4**2", want: "16"},
		{in: "2**-1", want: "0.5"},
		{in: "2**3**2", want: "512"},
		{in: "-3**2", want: "-9"},
		{in: "-3**0.5", want: "-1.7320508075688772"},
		{in: "3.0**0.5", want: "1.7320508075688772"},
		{in: "1.5+1.5", want: "3.0"},
		{in: ".5*2", want: "1.0"},
		{in: "5.*2", want: "10.0"},
		{in: "007+1", want: "8"},
		{in: "0.1+0.2", want: "0.30000000000000004"},
		{in: "1e+16", want: "1e+16"},
		{in: "1e+161", want: "1e+161"},
		{in: "100000000**2", want: "10000000000000000"},
		{in: "100000000.0**2", want: "1e+16"},
		{in: "0.00001", want: "1e-05"},
		{in: "0.0001", want: "0.0001"},
		{in: "1e400", want: "inf"},
		{in: "-0.0", want: "-0.0"},
		{in: " 2 + 2 ", want: "4"},
		{in: "0**0", want: "1"},
	}

	for _, tt := range tests {
		got, err := Eval(tt.in)
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("Eval(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{in: "", want: ErrParse},
		{in: "2+", want: ErrParse},
		{in: "2+*3", want: ErrParse},
		{in: "(2+3", want: ErrParse},
		{in: "2+3)", want: ErrParse},
		{in: ".", want: ErrParse},
		{in: "Error**2", want: ErrParse},
		{in: "inf+1", want: ErrParse},
		{in: "1.2.3", want: ErrParse},
		{in: "2^3", want: ErrParse},
		{in: "5/0", want: ErrDivisionByZero},
		{in: "5/0.0", want: ErrDivisionByZero},
		{in: "0**-1", want: ErrDivisionByZero},
		{in: "0.0**-2", want: ErrDivisionByZero},
		{in: "(0-4)**0.5", want: ErrDomain},
		{in: "10.0**400", want: ErrOverflow},
		{in: "10**400", want: ErrOverflow},
	}

	for _, tt := range tests {
		_, err := Eval(tt.in)
		if err == nil {
			t.Fatalf("Eval(%q) expected error", tt.in)
		}
		if !errors.Is(err, tt.want) {
			t.Fatalf("Eval(%q) err=%v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestEval_IntOverflowFallsBackToFloat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "99999999999*99999999999", want: "9.9999999998e+21"},
		{in: "99999999999**2", want: "9.9999999998e+21"},
		{in: "9223372036854775807+1", want: "9.223372036854776e+18"},
		{in: "-9223372036854775807-2", want: "-9.223372036854776e+18"},
		{in: "99999999999999999999", want: "1e+20"},
		{in: "10**20", want: "1e+20"},
		{in: "9223372036854775807", want: "9223372036854775807"},
	}

	for _, tt := range tests {
		got, err := Eval(tt.in)
		if err != nil {
			t.Fatalf("Eval(%q) error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("Eval(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestEval_ArithmeticErrorsWrapEval(t *testing.T) {
	for _, in := range []string{"1/0", "(0-1)**0.5", "10.0**400"} {
		_, err := Eval(in)
		if !errors.Is(err, ErrEval) {
			t.Fatalf("Eval(%q) err=%v, want ErrEval", in, err)
		}
		if errors.Is(err, ErrParse) {
			t.Fatalf("Eval(%q) err=%v is also ErrParse", in, err)
		}
	}
}

func TestParse_Shape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "1+2*3", want: "(1 + (2 * 3))"},
		{in: "-2**2", want: "(-(2 ** 2))"},
		{in: "2**-1", want: "(2 ** (-1))"},
		{in: "1-2-3", want: "((1 - 2) - 3)"},
		{in: "2**3**2", want: "(2 ** (3 ** 2))"},
	}

	for _, tt := range tests {
		n, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.in, err)
		}
		if got := n.String(); got != tt.want {
			t.Fatalf("Parse(%q)=%s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNumber_Kinds(t *testing.T) {
	n, err := Eval("7*6")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := n.Int64(); !ok || v != 42 {
		t.Fatalf("Int64()=%d,%v", v, ok)
	}

	n, err = Eval("7/2")
	if err != nil {
		t.Fatal(err)
	}
	if !n.IsFloat() || n.Float64() != 3.5 {
		t.Fatalf("7/2 kind=%v value=%v", n.Kind(), n.Float64())
	}
	if _, ok := n.Int64(); ok {
		t.Fatal("Int64 on float should not be ok")
	}
}
