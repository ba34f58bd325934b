package token

import "fmt"

// Pos identifies a location in HOCON source text, used to annotate parse
// errors (spec.md §4.1 "Failure modes").
type Pos struct {
	Filename string
	line     int
	col      int
}

func (p Pos) Line() int { return p.line }
func (p Pos) Col() int  { return p.col }

func (p Pos) String() string {
	name := p.Filename
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", name, p.line, p.col)
}

// tracker advances a Pos across a byte stream, tracking line/column as
// bytes are consumed (a multi-byte rune advances the column once per byte).
type tracker struct {
	pos Pos
}

func newTracker(filename string) *tracker {
	return &tracker{pos: Pos{Filename: filename, line: 1, col: 1}}
}

func (t *tracker) advance(b byte) {
	if b == '\n' {
		t.pos.line++
		t.pos.col = 1
		return
	}
	t.pos.col++
}

func (t *tracker) snapshot() Pos { return t.pos }
