// Package expr implements the calculator's arithmetic evaluator.
//
// The grammar is restricted to numeric literals, the binary operators
// + - * / and **, unary signs and parentheses. Nothing else is accepted:
// identifiers, calls and assignments are parse errors.
package expr
