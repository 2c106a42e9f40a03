package expr

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPow
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  Number
	err  error
}

type lexer struct {
	s string
	i int
}

func (l *lexer) next() token {
	for l.i < len(l.s) && unicode.IsSpace(rune(l.s[l.i])) {
		l.i++
	}
	if l.i >= len(l.s) {
		return token{kind: tokEOF, pos: l.i}
	}

	start := l.i
	switch l.s[l.i] {
	case '+':
		l.i++
		return token{kind: tokPlus, text: "+", pos: start}
	case '-':
		l.i++
		return token{kind: tokMinus, text: "-", pos: start}
	case '*':
		l.i++
		if l.i < len(l.s) && l.s[l.i] == '*' {
			l.i++
			return token{kind: tokPow, text: "**", pos: start}
		}
		return token{kind: tokStar, text: "*", pos: start}
	case '/':
		l.i++
		return token{kind: tokSlash, text: "/", pos: start}
	case '(':
		l.i++
		return token{kind: tokLParen, text: "(", pos: start}
	case ')':
		l.i++
		return token{kind: tokRParen, text: ")", pos: start}
	}

	ch := l.s[l.i]
	if ch == '.' || isDigit(ch) {
		l.i = scanNumber(l.s, l.i)
		txt := l.s[start:l.i]
		n, err := parseNumber(txt)
		if err != nil {
			return token{kind: tokInvalid, text: txt, pos: start, err: err}
		}
		return token{kind: tokNumber, text: txt, pos: start, num: n}
	}

	l.i++
	return token{kind: tokInvalid, text: string(ch), pos: start}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func scanNumber(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func parseNumber(txt string) (Number, error) {
	if txt == "." {
		return Number{}, fmt.Errorf("%w: invalid number %q", ErrParse, txt)
	}
	isFloat := false
	for i := 0; i < len(txt); i++ {
		switch txt[i] {
		case '.', 'e', 'E':
			isFloat = true
		}
	}
	if !isFloat {
		v, err := strconv.ParseInt(txt, 10, 64)
		if err == nil {
			return Int(v), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return Number{}, fmt.Errorf("%w: invalid number %q", ErrParse, txt)
		}
		// Too long for int64: read it as a float like any other
		// out-of-range integer result.
	}
	f, err := strconv.ParseFloat(txt, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Number{}, fmt.Errorf("%w: invalid number %q", ErrParse, txt)
	}
	return Float(f), nil
}

type parser struct {
	l   lexer
	cur token
}

// Parse builds the expression tree for src.
func Parse(src string) (Node, error) {
	p := &parser{l: lexer{s: src}}
	p.next()
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

// Eval parses and evaluates src.
func Eval(src string) (Number, error) {
	n, err := Parse(src)
	if err != nil {
		return Number{}, err
	}
	return n.Eval()
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) unexpected() error {
	switch p.cur.kind {
	case tokEOF:
		return fmt.Errorf("%w: unexpected end of input", ErrParse)
	case tokInvalid:
		if p.cur.err != nil {
			return p.cur.err
		}
	}
	return fmt.Errorf("%w: unexpected %q at %d", ErrParse, p.cur.text, p.cur.pos)
}

func (p *parser) parseSum() (Node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// A sign binds looser than ** on its right: -3**2 is -(3**2).
func (p *parser) parseUnary() (Node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (Node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return nodeNumber{v: v}, nil
	case tokLParen:
		p.next()
		ex, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrParse)
		}
		p.next()
		return ex, nil
	default:
		return nil, p.unexpected()
	}
}
