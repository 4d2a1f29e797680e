package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"warroom/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	selStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62")).Bold(true)
	tabStyle    = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTab   = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	grabbedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)

	stockInStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stockLowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	stockOutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func stockBadge(quantity int) string {
	switch model.StockLevel(quantity) {
	case model.StockIn:
		return stockInStyle.Render("in stock")
	case model.StockLow:
		return stockLowStyle.Render("low stock")
	default:
		return stockOutStyle.Render("out of stock")
	}
}

func priorityGlyph(priority string) string {
	switch priority {
	case model.PriorityCritical:
		return errorStyle.Render("!!")
	case model.PriorityHigh:
		return stockLowStyle.Render("! ")
	case model.PriorityMedium:
		return mutedStyle.Render("- ")
	case model.PriorityLow:
		return mutedStyle.Render(". ")
	default:
		return "  "
	}
}

func kv(k, v string) string {
	return fmt.Sprintf("%s: %s", k, v)
}

func listWindow(total, cursor, maxRows int) (int, int) {
	if total <= maxRows {
		return 0, total
	}
	half := maxRows / 2
	start := cursor - half
	if start < 0 {
		start = 0
	}
	end := start + maxRows
	if end > total {
		end = total
		start = end - maxRows
	}
	return start, end
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}

func wrapOrTrim(s string, width int) string {
	if width <= 0 {
		return s
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return truncateRunes(s, width)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func defaultIfEmpty(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func statusLine(width int, msg string, isError bool) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return ""
	}
	style := mutedStyle
	if isError {
		style = errorStyle
	} else if strings.HasPrefix(strings.ToLower(msg), "saved") || strings.HasPrefix(strings.ToLower(msg), "deleted") || strings.HasPrefix(strings.ToLower(msg), "moved") {
		style = okStyle
	}
	return style.Width(maxInt(width, 10)).Render(truncateRunes(msg, maxInt(width-2, 10)))
}
