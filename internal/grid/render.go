package grid

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/slotwise/internal/slots"
)

const cellWidth = 12

var (
	familyColor = color.New(color.FgBlue, color.Bold)
	dayColor    = color.New(color.FgWhite, color.Bold)
	freeColor   = color.New(color.FgHiBlack)

	groupColors = []*color.Color{
		color.New(color.FgBlack, color.BgCyan),
		color.New(color.FgBlack, color.BgYellow),
		color.New(color.FgBlack, color.BgGreen),
		color.New(color.FgBlack, color.BgMagenta),
		color.New(color.FgWhite, color.BgBlue),
		color.New(color.FgWhite, color.BgRed),
		color.New(color.FgBlack, color.BgHiCyan),
		color.New(color.FgBlack, color.BgHiYellow),
		color.New(color.FgBlack, color.BgHiGreen),
		color.New(color.FgBlack, color.BgHiMagenta),
	}
)

// GroupColor returns the display colour of a group.
func GroupColor(group int) *color.Color {
	return groupColors[group%len(groupColors)]
}

// Render writes the grid as one table per family. Colour output follows
// color.NoColor.
func Render(w io.Writer, g *Grid) {
	var current slots.Family = -1
	for _, r := range g.Rows {
		if r.Family != current {
			if current != -1 {
				fmt.Fprintln(w)
			}
			current = r.Family
			familyColor.Fprintf(w, "%s\n", strings.ToUpper(r.Family.String()))
			fmt.Fprintf(w, "%-5s%s  %s\n", "",
				columnHeader("T", slots.TheoryColumns),
				columnHeader("L", slots.LabColumns))
		}

		fmt.Fprint(w, dayColor.Sprintf("%-5s", r.Day.String()[:3]))
		for _, c := range r.Theory {
			fmt.Fprint(w, renderCell(c))
		}
		fmt.Fprint(w, "  ")
		for _, c := range r.Labs {
			fmt.Fprint(w, renderCell(c))
		}
		fmt.Fprintln(w)
	}
}

func columnHeader(prefix string, n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "%-*s", cellWidth, fmt.Sprintf("%s%d", prefix, i))
	}
	return b.String()
}

func renderCell(c Cell) string {
	if c.Free() {
		return freeColor.Sprint(pad(c.Slot))
	}
	return GroupColor(c.Group).Sprint(pad(c.Slot+" "+c.Course))
}

// pad fits s into one cell, keeping a trailing space as column gap.
func pad(s string) string {
	r := []rune(s)
	if len(r) > cellWidth-1 {
		r = append(r[:cellWidth-2], '~')
	}
	return fmt.Sprintf("%-*s", cellWidth, string(r))
}
