// Package engine holds the calculator state machine.
//
// An Engine accumulates operand text and operator characters the way a
// pocket calculator does and hands the accumulated text to the expr
// evaluator on demand. It is not safe for concurrent use: every call is
// expected to come from the single UI event thread.
package engine

import (
	"strings"

	"calc/calc/expr"
)

// ErrorText is what the current expression shows after a failed evaluation.
const ErrorText = "Error"

// Tag classifies the most recently accepted input.
type Tag uint8

const (
	TagNone Tag = iota
	TagDigit
	TagOperator
)

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagDigit:
		return "digit"
	case TagOperator:
		return "operator"
	default:
		return "unknown"
	}
}

// Operator is one of the four binary operator characters.
type Operator byte

const (
	OpAdd Operator = '+'
	OpSub Operator = '-'
	OpMul Operator = '*'
	OpDiv Operator = '/'
)

func (o Operator) Valid() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

func (o Operator) String() string {
	if !o.Valid() {
		return ""
	}
	return string(o)
}

// ParseOperator maps an operator character to an Operator.
func ParseOperator(r rune) (Operator, bool) {
	if r > 0x7f {
		return 0, false
	}
	op := Operator(r)
	return op, op.Valid()
}

// Field identifies which display needs repainting after a mutation.
type Field uint8

const (
	FieldTotal Field = 1 << iota
	FieldCurrent
)

// State is a copy of the engine's observable state.
type State struct {
	Total     string
	Current   string
	LastAdded Tag
	// Operator is the remembered operator when LastAdded is TagOperator.
	Operator Operator
}

type Engine struct {
	total   string
	current string
	last    Tag
	op      Operator
	err     error

	observe func(Field)
}

// New returns an engine in its initial, empty configuration.
func New() *Engine {
	return &Engine{}
}

// Observe registers fn to be called after each mutation with the displays
// that changed. A nil fn disables notifications.
func (e *Engine) Observe(fn func(Field)) { e.observe = fn }

func (e *Engine) Total() string   { return e.total }
func (e *Engine) Current() string { return e.current }
func (e *Engine) LastAdded() Tag  { return e.last }
func (e *Engine) InError() bool   { return e.current == ErrorText }

// Err returns the cause of the most recent evaluation failure, or nil.
func (e *Engine) Err() error { return e.err }

func (e *Engine) State() State {
	s := State{Total: e.total, Current: e.current, LastAdded: e.last}
	if e.last == TagOperator {
		s.Operator = e.op
	}
	return s
}

// AddDigit appends a digit or the decimal point to the current operand.
// Other runes are ignored, as is a second point in the same operand.
func (e *Engine) AddDigit(r rune) {
	if (r < '0' || r > '9') && r != '.' {
		return
	}
	if e.InError() {
		return
	}
	if r == '.' && strings.ContainsRune(e.current, '.') {
		return
	}
	e.current += string(r)
	e.last = TagDigit
	e.notify(FieldCurrent)
}

// AppendOperator commits the current operand followed by op to the total
// expression. Pressed right after another operator it replaces that
// operator instead. The operator is remembered even when nothing is
// committed.
func (e *Engine) AppendOperator(op Operator) {
	if !op.Valid() {
		return
	}
	changed := false
	if !e.InError() {
		switch e.last {
		case TagDigit:
			e.current += string(op)
			e.total += e.current
			e.current = ""
			changed = true
		case TagOperator:
			if endsWithOperator(e.total) {
				e.current = dropLast(e.current) + string(op)
				e.total = dropLast(e.total) + e.current
				e.current = ""
				changed = true
			}
		}
	}
	e.last = TagOperator
	e.op = op
	if changed {
		e.notify(FieldTotal | FieldCurrent)
	}
}

// SquareRoot replaces the current expression with its square root.
func (e *Engine) SquareRoot() { e.raise("0.5") }

// Square replaces the current expression with its square.
func (e *Engine) Square() { e.raise("2") }

func (e *Engine) raise(exp string) {
	if e.InError() {
		return
	}
	n, err := expr.Eval(e.current + "**" + exp)
	if err != nil {
		e.fail(err)
	} else {
		e.err = nil
		e.current = n.String()
	}
	e.notify(FieldCurrent)
}

// Clear resets the engine to its initial configuration.
func (e *Engine) Clear() {
	e.current = ""
	e.total = ""
	e.last = TagNone
	e.op = 0
	e.err = nil
	e.notify(FieldTotal | FieldCurrent)
}

// Evaluate commits the current operand and evaluates the total expression.
// It does nothing in the error state or while an operator is dangling.
// On failure the total expression keeps the text that failed.
func (e *Engine) Evaluate() {
	if e.InError() || e.last == TagOperator {
		return
	}
	e.total += e.current
	e.notify(FieldTotal)

	n, err := expr.Eval(e.total)
	if err != nil {
		e.fail(err)
	} else {
		e.err = nil
		e.current = n.String()
		e.total = ""
	}
	e.notify(FieldCurrent)
}

func (e *Engine) fail(err error) {
	e.err = err
	e.current = ErrorText
}

func (e *Engine) notify(f Field) {
	if e.observe != nil {
		e.observe(f)
	}
}

func endsWithOperator(s string) bool {
	if s == "" {
		return false
	}
	return Operator(s[len(s)-1]).Valid()
}

func dropLast(s string) string {
	if s == "" {
		return s
	}
	return s[:len(s)-1]
}
