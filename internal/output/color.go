package output

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const colorReset = "\033[0m"

// Color is a 24-bit terminal color.
type Color struct {
	R, G, B uint8
}

// Palette used by the display sections.
var (
	Red    = Color{220, 50, 47}
	Green  = Color{80, 200, 80}
	Blue   = Color{60, 130, 230}
	White  = Color{230, 230, 230}
	Gray   = Color{110, 110, 110}
	Yellow = Color{230, 190, 60}
)

func (c Color) fg() string { return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B) }
func (c Color) bg() string { return fmt.Sprintf("\033[48;2;%d;%d;%dm", c.R, c.G, c.B) }

// Cell is one character with optional colors.
type Cell struct {
	Ch rune
	FG *Color
	BG *Color
}

func (c Cell) sameStyle(o Cell) bool {
	return eqColor(c.FG, o.FG) && eqColor(c.BG, o.BG)
}

func eqColor(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Line is a row of colored characters.
type Line []Cell

// Plain returns an uncolored line.
func Plain(s string) Line {
	return styled(s, nil, nil)
}

// Colored returns a line with a foreground color.
func Colored(s string, fg Color) Line {
	return styled(s, &fg, nil)
}

// Background returns a line with a background color.
func Background(s string, bg Color) Line {
	return styled(s, nil, &bg)
}

func styled(s string, fg, bg *Color) Line {
	l := make(Line, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		l = append(l, Cell{Ch: r, FG: fg, BG: bg})
	}
	return l
}

// Append concatenates lines.
func (l Line) Append(parts ...Line) Line {
	for _, p := range parts {
		l = append(l, p...)
	}
	return l
}

// Width returns the number of characters.
func (l Line) Width() int {
	return len(l)
}

// String returns the text without colors.
func (l Line) String() string {
	var b strings.Builder
	for _, c := range l {
		b.WriteRune(c.Ch)
	}
	return b.String()
}

// Render returns the line with ANSI truecolor escapes, or plain text when
// color is false. Runs of equally styled cells share one escape.
func (l Line) Render(color bool) string {
	if !color {
		return l.String()
	}

	var b strings.Builder
	var prev *Cell
	for i := range l {
		c := l[i]
		if prev == nil || !prev.sameStyle(c) {
			if prev != nil && (prev.FG != nil || prev.BG != nil) {
				b.WriteString(colorReset)
			}
			if c.FG != nil {
				b.WriteString(c.FG.fg())
			}
			if c.BG != nil {
				b.WriteString(c.BG.bg())
			}
		}
		b.WriteRune(c.Ch)
		prev = &l[i]
	}
	if prev != nil && (prev.FG != nil || prev.BG != nil) {
		b.WriteString(colorReset)
	}
	return b.String()
}

// tierColors follows the in-game emblem colors.
var tierColors = map[string]Color{
	"IRON":        {81, 72, 74},
	"BRONZE":      {140, 81, 58},
	"SILVER":      {128, 152, 157},
	"GOLD":        {205, 136, 55},
	"PLATINUM":    {78, 153, 150},
	"EMERALD":     {42, 168, 101},
	"DIAMOND":     {87, 107, 206},
	"MASTER":      {157, 72, 224},
	"GRANDMASTER": {205, 69, 69},
	"CHALLENGER":  {244, 200, 116},
}

// TierColor returns the color of a ranked tier, white when unknown.
func TierColor(tier string) Color {
	if c, ok := tierColors[strings.ToUpper(tier)]; ok {
		return c
	}
	return White
}

// Bar draws a two-part bar of width cells, the filled share proportional to
// filled/(filled+empty).
func Bar(filled, empty, width int, fill Color) Line {
	total := filled + empty
	n := 0
	if total > 0 {
		n = int(float64(filled)/float64(total)*float64(width) + 0.5)
	}
	bar := make(Line, 0, width)
	for i := 0; i < width; i++ {
		bg := White
		if i < n {
			bg = fill
		}
		bar = append(bar, Cell{Ch: ' ', BG: &bg})
	}
	return bar
}
