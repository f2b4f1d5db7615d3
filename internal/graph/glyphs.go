package graph

// A glyph table maps a pair of fill levels (0..4 each) to the character
// drawn for one cell: table[left*5+right]. Index 0 is always blank and
// index 24 always the style's full glyph. Density never decreases as
// either level rises.
type glyphTable [25]string

// Braille gives four distinct heights per half cell.
var brailleUp = glyphTable{
	" ", "⢀", "⢠", "⢰", "⢸",
	"⡀", "⣀", "⣠", "⣰", "⣸",
	"⡄", "⣄", "⣤", "⣴", "⣼",
	"⡆", "⣆", "⣦", "⣶", "⣾",
	"⡇", "⣇", "⣧", "⣷", "⣿",
}

var brailleDown = glyphTable{
	" ", "⠈", "⠘", "⠸", "⢸",
	"⠁", "⠉", "⠙", "⠹", "⢹",
	"⠃", "⠋", "⠛", "⠻", "⢻",
	"⠇", "⠏", "⠟", "⠿", "⢿",
	"⡇", "⡏", "⡟", "⡿", "⣿",
}

// Block quadrants only have two heights per half cell: levels 1-2 light the
// near quadrant, levels 3-4 the whole half.
var blockUp = glyphTable{
	" ", "▗", "▗", "▐", "▐",
	"▖", "▄", "▄", "▟", "▟",
	"▖", "▄", "▄", "▟", "▟",
	"▌", "▙", "▙", "█", "█",
	"▌", "▙", "▙", "█", "█",
}

var blockDown = glyphTable{
	" ", "▝", "▝", "▐", "▐",
	"▘", "▀", "▀", "▜", "▜",
	"▘", "▀", "▀", "▜", "▜",
	"▌", "▛", "▛", "█", "█",
	"▌", "▛", "▛", "█", "█",
}

// Tty shades by the combined level of both halves, so it reads the same
// either way up.
var ttyTable = glyphTable{
	" ", "░", "░", "▒", "▒",
	"░", "░", "▒", "▒", "█",
	"░", "▒", "▒", "▒", "█",
	"▒", "▒", "▒", "█", "█",
	"▒", "█", "█", "█", "█",
}

var glyphTables = map[Style][2]*glyphTable{
	Braille: {&brailleUp, &brailleDown},
	Block:   {&blockUp, &blockDown},
	Tty:     {&ttyTable, &ttyTable},
}

func tableFor(s Style, inverted bool) *glyphTable {
	tables, ok := glyphTables[s]
	if !ok {
		tables = glyphTables[Block]
	}
	if inverted {
		return tables[1]
	}
	return tables[0]
}

// Blank returns the empty glyph for s.
func Blank(s Style) string {
	return tableFor(s, false)[0]
}

// Full returns the completely filled glyph for s.
func Full(s Style) string {
	return tableFor(s, false)[24]
}
