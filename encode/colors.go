package encode

import "github.com/fatih/color"

// ColorAttr names one syntax-highlighting role a JSON token can play.
type ColorAttr int

const (
	FieldColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	NullColor
	PunctColor
)

// Colors maps each ColorAttr to a formatting function, mirroring the
// teacher's attribute-keyed SprintfFunc table.
type Colors struct {
	Map map[ColorAttr]func(string, ...any) string
}

// NewColors builds the default color table.
func NewColors() *Colors {
	return &Colors{
		Map: map[ColorAttr]func(string, ...any) string{
			FieldColor:  color.RGB(128, 168, 196).SprintfFunc(),
			StringColor: color.RGB(8, 196, 16).SprintfFunc(),
			NumberColor: color.RGB(128, 216, 236).SprintfFunc(),
			BoolColor:   color.CyanString,
			NullColor:   color.RGB(168, 0, 196).SprintfFunc(),
			PunctColor:  color.RGB(255, 0, 196).SprintfFunc(),
		},
	}
}

func (c *Colors) apply(attr ColorAttr, s string) string {
	if c == nil {
		return s
	}
	f, ok := c.Map[attr]
	if !ok {
		return s
	}
	return f(s)
}
