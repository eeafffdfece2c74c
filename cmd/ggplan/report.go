package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gogpu/ggplan/scene"
)

type frame struct {
	Label string
	Scale float64
	Stats scene.FrameStats
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#AAAAAA"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

var columns = []string{"frame", "scale", "built", "rebuilt", "updated", "culled", "applied", "failed", "time"}

// report renders the per-frame statistics as a boxed table.
func report(frames []frame) string {
	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		s := f.Stats
		rows = append(rows, []string{
			f.Label,
			fmt.Sprintf("%g", f.Scale),
			fmt.Sprint(s.Built),
			fmt.Sprint(s.Rebuilt),
			fmt.Sprint(s.Updated),
			fmt.Sprint(s.Culled),
			fmt.Sprint(s.Applied),
			fmt.Sprint(s.Failed),
			s.Duration.Round(time.Microsecond).String(),
		})
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ggplan · %d frames", len(frames))))
	b.WriteString("\n")
	b.WriteString(headStyle.Render(line(columns, widths)))
	for i, row := range rows {
		b.WriteString("\n")
		text := line(row, widths)
		if frames[i].Stats.Failed > 0 {
			text = warnStyle.Render(text)
		}
		b.WriteString(text)
	}
	return boxStyle.Render(b.String())
}

func line(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		if i == 0 {
			padded[i] = c + strings.Repeat(" ", widths[i]-lipgloss.Width(c))
		} else {
			padded[i] = strings.Repeat(" ", widths[i]-lipgloss.Width(c)) + c
		}
	}
	return strings.Join(padded, "  ")
}
