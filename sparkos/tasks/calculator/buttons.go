package calculator

import "sparkcalc/sparkos/calc"

const (
	gridCols = 4
	gridRows = 5
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type button struct {
	label string
	class calc.ButtonClass

	col, row         int
	colSpan, rowSpan int

	r rect
}

func (b *button) intent() (calc.Intent, bool) {
	return calc.ButtonIntent(b.class, b.label)
}

// keypad is the on-screen button grid.
type keypad struct {
	buttons []button
	cells   [gridRows][gridCols]int // button index per cell, -1 when empty
}

func newKeypad() *keypad {
	kp := &keypad{
		buttons: []button{
			{label: "C", class: calc.ButtonClear},
			{label: "<-", class: calc.ButtonBackspace},
			{label: "/", class: calc.ButtonOperator},
			{label: "*", class: calc.ButtonOperator},

			{label: "7"}, {label: "8"}, {label: "9"},
			{label: "-", class: calc.ButtonOperator},

			{label: "4"}, {label: "5"}, {label: "6"},
			{label: "+", class: calc.ButtonOperator},

			{label: "1"}, {label: "2"}, {label: "3"},
			{label: "=", class: calc.ButtonEqual, rowSpan: 2},

			{label: "0", colSpan: 2},
			{label: "."},
		},
	}
	for r := range kp.cells {
		for c := range kp.cells[r] {
			kp.cells[r][c] = -1
		}
	}

	row, col := 0, 0
	for i := range kp.buttons {
		b := &kp.buttons[i]
		if b.colSpan == 0 {
			b.colSpan = 1
		}
		if b.rowSpan == 0 {
			b.rowSpan = 1
		}
		for kp.cells[row][col] != -1 {
			col++
			if col == gridCols {
				row, col = row+1, 0
			}
		}
		b.row, b.col = row, col
		for dr := 0; dr < b.rowSpan; dr++ {
			for dc := 0; dc < b.colSpan; dc++ {
				kp.cells[row+dr][col+dc] = i
			}
		}
		col += b.colSpan
		if col >= gridCols {
			row, col = row+1, 0
		}
	}
	return kp
}

// layout places the grid inside area, leaving gap pixels between buttons.
func (kp *keypad) layout(area rect, gap int) {
	cellW := (area.w - gap*(gridCols+1)) / gridCols
	cellH := (area.h - gap*(gridRows+1)) / gridRows
	for i := range kp.buttons {
		b := &kp.buttons[i]
		b.r = rect{
			x: area.x + gap + b.col*(cellW+gap),
			y: area.y + gap + b.row*(cellH+gap),
			w: b.colSpan*cellW + (b.colSpan-1)*gap,
			h: b.rowSpan*cellH + (b.rowSpan-1)*gap,
		}
	}
}

// hit returns the index of the button under (x, y), or -1.
func (kp *keypad) hit(x, y int) int {
	for i := range kp.buttons {
		if kp.buttons[i].r.contains(x, y) {
			return i
		}
	}
	return -1
}

// move returns the button reached from idx by stepping (dr, dc) cells.
//
// Spanning buttons are skipped over; the focus stays put at the grid edge.
func (kp *keypad) move(idx, dr, dc int) int {
	if idx < 0 || idx >= len(kp.buttons) {
		return 0
	}
	b := kp.buttons[idx]
	row, col := b.row, b.col
	for {
		row += dr
		col += dc
		if row < 0 || row >= gridRows || col < 0 || col >= gridCols {
			return idx
		}
		if next := kp.cells[row][col]; next != -1 && next != idx {
			return next
		}
	}
}

func (kp *keypad) find(label string) int {
	for i := range kp.buttons {
		if kp.buttons[i].label == label {
			return i
		}
	}
	return -1
}
