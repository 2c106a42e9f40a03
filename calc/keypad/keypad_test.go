package keypad

import (
	"errors"
	"slices"
	"testing"

	"calc/calc/engine"
)

func TestTable_CoversGridOnce(t *testing.T) {
	var grid [Rows][Cols]int
	seen := make(map[ID]bool)
	for _, k := range Keys() {
		if seen[k.ID] {
			t.Fatalf("duplicate key id %d", k.ID)
		}
		seen[k.ID] = true
		if k.Span < 1 || k.Col+k.Span > Cols || k.Row < 0 || k.Row >= Rows {
			t.Fatalf("key %q out of grid: row=%d col=%d span=%d", k.Label, k.Row, k.Col, k.Span)
		}
		for c := k.Col; c < k.Col+k.Span; c++ {
			grid[k.Row][c]++
		}
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if grid[r][c] != 1 {
				t.Fatalf("cell (%d,%d) covered %d times", r, c, grid[r][c])
			}
		}
	}
	if len(seen) != int(KeyEquals)+1 {
		t.Fatalf("table has %d keys, want %d", len(seen), int(KeyEquals)+1)
	}
}

func TestAt(t *testing.T) {
	tests := []struct {
		row, col int
		want     ID
	}{
		{0, 0, KeyClear},
		{0, 1, KeySquare},
		{0, 2, KeySquareRoot},
		{0, 3, KeyDiv},
		{1, 0, Key7},
		{3, 3, KeyAdd},
		{4, 0, KeyPoint},
		{4, 1, Key0},
		{4, 2, KeyEquals},
		{4, 3, KeyEquals},
	}
	for _, tt := range tests {
		k, ok := At(tt.row, tt.col)
		if !ok || k.ID != tt.want {
			t.Fatalf("At(%d,%d)=%v,%v want %v", tt.row, tt.col, k.ID, ok, tt.want)
		}
	}
	if _, ok := At(5, 0); ok {
		t.Fatal("At outside grid should fail")
	}
}

func TestLookup_BindingsMatchLabels(t *testing.T) {
	for _, k := range Keys() {
		if k.Action != ActionDigit && k.Action != ActionOperator {
			continue
		}
		got, ok := Lookup(k.Char)
		if !ok || got.ID != k.ID {
			t.Fatalf("Lookup(%q)=%v,%v want %v", k.Char, got.ID, ok, k.ID)
		}
	}
	if k, ok := Lookup('='); !ok || k.ID != KeyEquals {
		t.Fatalf("Lookup('=')=%v,%v", k.ID, ok)
	}
	if _, ok := Lookup('x'); ok {
		t.Fatal("Lookup('x') should fail")
	}
	if k, ok := LookupName("Enter"); !ok || k.ID != KeyEquals {
		t.Fatalf("LookupName(Enter)=%v,%v", k.ID, ok)
	}
	if k, ok := LookupName("esc"); !ok || k.ID != KeyClear {
		t.Fatalf("LookupName(esc)=%v,%v", k.ID, ok)
	}
}

func TestBindings(t *testing.T) {
	tests := []struct {
		action Action
		want   []string
	}{
		{ActionDigit, []string{".", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{ActionOperator, []string{"*", "+", "-", "/", "×", "÷"}},
		{ActionSquare, []string{"S", "s", "²"}},
		{ActionSquareRoot, []string{"R", "r", "√"}},
		{ActionClear, []string{"C", "backspace", "c", "delete", "esc", "escape"}},
		{ActionEvaluate, []string{"=", "enter"}},
	}
	for _, tt := range tests {
		got := Bindings(tt.action)
		if !slices.Equal(got, tt.want) {
			t.Fatalf("Bindings(%d)=%q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestBindings_ResolveToAction(t *testing.T) {
	for a := ActionDigit; a <= ActionEvaluate; a++ {
		for _, b := range Bindings(a) {
			k, ok := LookupName(b)
			if r := []rune(b); len(r) == 1 {
				k, ok = Lookup(r[0])
			}
			if !ok || k.Action != a {
				t.Fatalf("binding %q resolves to %v,%v, want action %d", b, k.ID, ok, a)
			}
		}
	}
}

func TestKey_RuneRoundTrip(t *testing.T) {
	for _, k := range Keys() {
		got, ok := Lookup(k.Rune())
		if !ok || got.ID != k.ID {
			t.Fatalf("Lookup(%q.Rune())=%v,%v", k.Label, got.ID, ok)
		}
	}
}

func TestFormatTotal(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"12", "12"},
		{"2+", "2 + "},
		{"5/0", "5 ÷ 0"},
		{"3*4-1", "3 × 4 - 1"},
		{"1e+16+", "1e + 16 + "},
	}
	for _, tt := range tests {
		if got := FormatTotal(tt.in); got != tt.want {
			t.Fatalf("FormatTotal(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseSequence(t *testing.T) {
	keys, err := ParseSequence("12+3 enter sqrt c")
	if err != nil {
		t.Fatalf("ParseSequence: %v", err)
	}
	want := []ID{Key1, Key2, KeyAdd, Key3, KeyEquals, KeySquareRoot, KeyClear}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i, k := range keys {
		if k.ID != want[i] {
			t.Fatalf("key %d = %v, want %v", i, k.ID, want[i])
		}
	}

	if _, err := ParseSequence("2^3"); !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("err=%v, want ErrUnknownKey", err)
	}
}

func TestApply(t *testing.T) {
	keys, err := ParseSequence("9 r + 4 s =")
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New()
	for _, k := range keys {
		Apply(e, k)
	}
	if e.Current() != "19.0" {
		t.Fatalf("current=%q, want 19.0", e.Current())
	}
}
