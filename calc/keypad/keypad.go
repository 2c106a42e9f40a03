// Package keypad is the static description of the calculator's buttons: what
// each one does, where it sits in the grid, how it is labelled and which
// keyboard keys trigger it. Every presentation layer renders from this table
// and dispatches through Apply.
package keypad

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"calc/calc/engine"
)

type ID uint8

const (
	Key0 ID = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyPoint
	KeyAdd
	KeySub
	KeyMul
	KeyDiv
	KeySquare
	KeySquareRoot
	KeyClear
	KeyEquals
)

type Action uint8

const (
	ActionDigit Action = iota
	ActionOperator
	ActionSquare
	ActionSquareRoot
	ActionClear
	ActionEvaluate
)

// Style selects the button colors.
type Style uint8

const (
	StyleDigit Style = iota
	StyleOperator
	StyleClear
	StyleEquals
)

// Grid dimensions.
const (
	Rows = 5
	Cols = 4
)

// Key is one button.
type Key struct {
	ID     ID
	Action Action
	// Label is the glyph drawn on the button.
	Label string
	// Char is the character fed to the engine for digit and operator keys.
	Char  rune
	Row   int
	Col   int
	Span  int
	Style Style
}

// Rune is a typed character that Lookup maps back to k.
func (k Key) Rune() rune {
	switch k.Action {
	case ActionSquare:
		return 's'
	case ActionSquareRoot:
		return 'r'
	case ActionClear:
		return 'c'
	case ActionEvaluate:
		return '='
	}
	return k.Char
}

// Contains reports whether the grid cell (row, col) belongs to k.
func (k Key) Contains(row, col int) bool {
	return row == k.Row && col >= k.Col && col < k.Col+k.Span
}

var table = [...]Key{
	{ID: KeyClear, Action: ActionClear, Label: "C", Row: 0, Col: 0, Span: 1, Style: StyleClear},
	{ID: KeySquare, Action: ActionSquare, Label: "x²", Row: 0, Col: 1, Span: 1, Style: StyleOperator},
	{ID: KeySquareRoot, Action: ActionSquareRoot, Label: "√x", Row: 0, Col: 2, Span: 1, Style: StyleOperator},
	{ID: KeyDiv, Action: ActionOperator, Label: "÷", Char: '/', Row: 0, Col: 3, Span: 1, Style: StyleOperator},

	{ID: Key7, Action: ActionDigit, Label: "7", Char: '7', Row: 1, Col: 0, Span: 1},
	{ID: Key8, Action: ActionDigit, Label: "8", Char: '8', Row: 1, Col: 1, Span: 1},
	{ID: Key9, Action: ActionDigit, Label: "9", Char: '9', Row: 1, Col: 2, Span: 1},
	{ID: KeyMul, Action: ActionOperator, Label: "×", Char: '*', Row: 1, Col: 3, Span: 1, Style: StyleOperator},

	{ID: Key4, Action: ActionDigit, Label: "4", Char: '4', Row: 2, Col: 0, Span: 1},
	{ID: Key5, Action: ActionDigit, Label: "5", Char: '5', Row: 2, Col: 1, Span: 1},
	{ID: Key6, Action: ActionDigit, Label: "6", Char: '6', Row: 2, Col: 2, Span: 1},
	{ID: KeySub, Action: ActionOperator, Label: "-", Char: '-', Row: 2, Col: 3, Span: 1, Style: StyleOperator},

	{ID: Key1, Action: ActionDigit, Label: "1", Char: '1', Row: 3, Col: 0, Span: 1},
	{ID: Key2, Action: ActionDigit, Label: "2", Char: '2', Row: 3, Col: 1, Span: 1},
	{ID: Key3, Action: ActionDigit, Label: "3", Char: '3', Row: 3, Col: 2, Span: 1},
	{ID: KeyAdd, Action: ActionOperator, Label: "+", Char: '+', Row: 3, Col: 3, Span: 1, Style: StyleOperator},

	{ID: KeyPoint, Action: ActionDigit, Label: ".", Char: '.', Row: 4, Col: 0, Span: 1},
	{ID: Key0, Action: ActionDigit, Label: "0", Char: '0', Row: 4, Col: 1, Span: 1},
	{ID: KeyEquals, Action: ActionEvaluate, Label: "=", Row: 4, Col: 2, Span: 2, Style: StyleEquals},
}

// Keys returns the buttons in row-major order.
func Keys() []Key {
	out := make([]Key, len(table))
	copy(out, table[:])
	return out
}

func ByID(id ID) (Key, bool) {
	for _, k := range table {
		if k.ID == id {
			return k, true
		}
	}
	return Key{}, false
}

// At returns the button covering grid cell (row, col).
func At(row, col int) (Key, bool) {
	for _, k := range table {
		if k.Contains(row, col) {
			return k, true
		}
	}
	return Key{}, false
}

// runeBindings maps typed characters to buttons. The characters printed on
// the digit and operator buttons come first, then shortcuts for the others.
var runeBindings = map[rune]ID{
	'0': Key0, '1': Key1, '2': Key2, '3': Key3, '4': Key4,
	'5': Key5, '6': Key6, '7': Key7, '8': Key8, '9': Key9,
	'.': KeyPoint,
	'+': KeyAdd, '-': KeySub, '*': KeyMul, '/': KeyDiv,
	'×': KeyMul, '÷': KeyDiv,
	'=': KeyEquals, '\r': KeyEquals, '\n': KeyEquals,
	'r': KeySquareRoot, 'R': KeySquareRoot, '√': KeySquareRoot,
	's': KeySquare, 'S': KeySquare, '²': KeySquare,
	'c': KeyClear, 'C': KeyClear,
}

// nameBindings maps named (non-printing) keys, spelled the way terminal
// toolkits name them, to buttons.
var nameBindings = map[string]ID{
	"enter":     KeyEquals,
	"esc":       KeyClear,
	"escape":    KeyClear,
	"delete":    KeyClear,
	"backspace": KeyClear,
}

// Lookup returns the button bound to a typed character.
func Lookup(r rune) (Key, bool) {
	id, ok := runeBindings[r]
	if !ok {
		return Key{}, false
	}
	return ByID(id)
}

// LookupName returns the button bound to a named key such as "enter".
func LookupName(name string) (Key, bool) {
	id, ok := nameBindings[strings.ToLower(name)]
	if !ok {
		return Key{}, false
	}
	return ByID(id)
}

// Bindings lists the typed characters and named keys that trigger buttons
// with action a, sorted. Control characters are left out; their named form
// ("enter") is listed instead.
func Bindings(a Action) []string {
	var out []string
	for r, id := range runeBindings {
		if k, ok := ByID(id); ok && k.Action == a && !unicode.IsControl(r) {
			out = append(out, string(r))
		}
	}
	for name, id := range nameBindings {
		if k, ok := ByID(id); ok && k.Action == a {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// Apply performs the button's action on e.
func Apply(e *engine.Engine, k Key) {
	switch k.Action {
	case ActionDigit:
		e.AddDigit(k.Char)
	case ActionOperator:
		if op, ok := engine.ParseOperator(k.Char); ok {
			e.AppendOperator(op)
		}
	case ActionSquare:
		e.Square()
	case ActionSquareRoot:
		e.SquareRoot()
	case ActionClear:
		e.Clear()
	case ActionEvaluate:
		e.Evaluate()
	}
}

var totalReplacer = strings.NewReplacer(
	"/", " ÷ ",
	"*", " × ",
	"-", " - ",
	"+", " + ",
)

// FormatTotal renders the total expression for display: operator
// characters become their button glyphs with a space on either side.
func FormatTotal(total string) string {
	return totalReplacer.Replace(total)
}

var ErrUnknownKey = errors.New("unknown key")

// ParseSequence turns a key script into buttons. Whitespace separates
// tokens; a token that names a key ("enter", "esc", "sqrt", "square",
// "clear", "equals") is one press, any other token is one press per
// character.
func ParseSequence(script string) ([]Key, error) {
	var out []Key
	for _, tok := range strings.FieldsFunc(script, unicode.IsSpace) {
		if k, ok := lookupWord(tok); ok {
			out = append(out, k)
			continue
		}
		for _, r := range tok {
			k, ok := Lookup(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownKey, r)
			}
			out = append(out, k)
		}
	}
	return out, nil
}

func lookupWord(tok string) (Key, bool) {
	if len([]rune(tok)) < 2 {
		return Key{}, false
	}
	switch strings.ToLower(tok) {
	case "sqrt":
		return ByID(KeySquareRoot)
	case "square", "sq":
		return ByID(KeySquare)
	case "clear":
		return ByID(KeyClear)
	case "equals", "eq":
		return ByID(KeyEquals)
	}
	return LookupName(tok)
}
