package screen

import "calc/calc/keypad"

type rect struct {
	x, y, w, h int
}

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) intersect(o rect) rect {
	x0 := max(r.x, o.x)
	y0 := max(r.y, o.y)
	x1 := min(r.x+r.w, o.x+o.w)
	y1 := min(r.y+r.h, o.y+o.h)
	if x1 <= x0 || y1 <= y0 {
		return rect{}
	}
	return rect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

const (
	// textPadding is the horizontal gap between display text and the edges.
	textPadding = 24
	// keyGap separates neighbouring keys.
	keyGap = 1

	totalScale = 2
	labelScale = 3
	currentMax = 4
	currentMin = 2
)

// layout splits the framebuffer into the display area (top ~30%) and the
// key grid below it.
type layout struct {
	width, height int

	display rect
	total   rect
	current rect
	grid    rect

	cellW, cellH int
}

func newLayout(width, height int) layout {
	l := layout{width: width, height: height}
	dispH := height * 3 / 10
	l.display = rect{x: 0, y: 0, w: width, h: dispH}
	l.total = rect{x: textPadding, y: 0, w: width - 2*textPadding, h: dispH * 2 / 5}
	l.current = rect{x: textPadding, y: l.total.h, w: width - 2*textPadding, h: dispH - l.total.h}
	l.grid = rect{x: 0, y: dispH, w: width, h: height - dispH}
	l.cellW = width / keypad.Cols
	l.cellH = l.grid.h / keypad.Rows
	return l
}

// keyRect is the area a key occupies, excluding the gap around it.
func (l layout) keyRect(k keypad.Key) rect {
	x := k.Col * l.cellW
	w := k.Span * l.cellW
	if k.Col+k.Span == keypad.Cols {
		w = l.width - x
	}
	y := l.grid.y + k.Row*l.cellH
	h := l.cellH
	if k.Row == keypad.Rows-1 {
		h = l.height - y
	}
	return rect{x: x + keyGap, y: y + keyGap, w: w - 2*keyGap, h: h - 2*keyGap}
}

// cellAt maps a framebuffer point to a grid cell.
func (l layout) cellAt(x, y int) (row, col int, ok bool) {
	if !l.grid.contains(x, y) || l.cellW <= 0 || l.cellH <= 0 {
		return 0, 0, false
	}
	col = min(x/l.cellW, keypad.Cols-1)
	row = min((y-l.grid.y)/l.cellH, keypad.Rows-1)
	return row, col, true
}
