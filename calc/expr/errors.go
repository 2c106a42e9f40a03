package expr

import "errors"

var (
	ErrParse = errors.New("parse error")
	ErrEval  = errors.New("eval error")

	// The following are always wrapped together with ErrEval.
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
	ErrDomain         = errors.New("math domain error")
)
