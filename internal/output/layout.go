package output

import (
	"bufio"
	"io"
	"strings"
)

// Section is a titled block of lines. An empty Header prints the body only.
type Section struct {
	Header string
	Body   []Line
}

// Lines returns the header, a dash separator as wide as the header, and
// the body.
func (s Section) Lines() []Line {
	var lines []Line
	if s.Header != "" {
		lines = append(lines, Plain(s.Header), Plain(strings.Repeat("-", len([]rune(s.Header)))))
	}
	return append(lines, s.Body...)
}

// Layout prints ASCII art with sections side by side.
type Layout struct {
	Art      []Line
	Sections []Section
	// Padding is the gap between art and sections.
	Padding int
	Color   bool
}

func (l Layout) info() []Line {
	var lines []Line
	for i, s := range l.Sections {
		if i > 0 {
			lines = append(lines, nil)
		}
		lines = append(lines, s.Lines()...)
	}
	return lines
}

func (l Layout) artWidth() int {
	w := 0
	for _, line := range l.Art {
		w = max(w, line.Width())
	}
	return w
}

// Rows returns the printed rows. The shorter column is vertically centered
// against the longer one.
func (l Layout) Rows() []string {
	info := l.info()
	art := l.Art
	width := l.artWidth()
	gap := strings.Repeat(" ", l.Padding)

	artOffset, infoOffset := 0, 0
	if len(art) > len(info) {
		infoOffset = (len(art) - len(info)) / 2
	} else {
		artOffset = (len(info) - len(art)) / 2
	}

	rows := max(len(art), len(info))
	out := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		var b strings.Builder

		ai := i - artOffset
		ii := i - infoOffset
		hasInfo := ii >= 0 && ii < len(info) && len(info[ii]) > 0

		if ai >= 0 && ai < len(art) {
			b.WriteString(art[ai].Render(l.Color))
			if hasInfo {
				b.WriteString(strings.Repeat(" ", width-art[ai].Width()))
			}
		} else if hasInfo {
			b.WriteString(strings.Repeat(" ", width))
		}
		if hasInfo {
			b.WriteString(gap)
			b.WriteString(info[ii].Render(l.Color))
		}
		out = append(out, b.String())
	}
	return out
}

// Write prints the layout to w.
func (l Layout) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, row := range l.Rows() {
		bw.WriteString(row)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
