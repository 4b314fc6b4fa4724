package presentation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/pantry-it/backend/internal/domain/stock"
	"github.com/pantry-it/backend/internal/service"
)

var (
	accent  = lipgloss.Color("#D97706")
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	faint   = lipgloss.Color("#3F3F46")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle   = lipgloss.NewStyle().Foreground(dim)
	faintStyle = lipgloss.NewStyle().Foreground(faint)
	separator  = faintStyle.Render(strings.Repeat("─", 56))
)

const (
	nameWidth = 24
	barWidth  = 20
)

func bandColor(b stock.Band) lipgloss.Color {
	switch b {
	case stock.BandNeedsRefill:
		return danger
	case stock.BandGettingLow:
		return warning
	default:
		return success
	}
}

// RenderDashboard shows the three bands, most urgent first.
func RenderDashboard(d Dashboard) string {
	var b strings.Builder

	title := headerStyle.Render("Pantry")
	stats := dimStyle.Render(fmt.Sprintf("%d items  ·  %d need refill  ·  %d getting low",
		d.Total(), len(d.NeedsRefill), len(d.GettingLow)))
	b.WriteString(boxStyle.Render(title + "\n" + stats))
	b.WriteString("\n\n")

	if d.Total() == 0 {
		b.WriteString("  " + dimStyle.Render("No items yet. Add one with `pantry stock add`.") + "\n")
		return b.String()
	}

	for _, section := range []struct {
		band  stock.Band
		views []stock.View
	}{
		{stock.BandNeedsRefill, d.NeedsRefill},
		{stock.BandGettingLow, d.GettingLow},
		{stock.BandWellStocked, d.WellStocked},
	} {
		label := lipgloss.NewStyle().Bold(true).Foreground(bandColor(section.band)).Render(section.band.String())
		b.WriteString("  " + label + dimStyle.Render(fmt.Sprintf(" (%d)", len(section.views))) + "\n")
		b.WriteString("  " + separator + "\n")
		if len(section.views) == 0 {
			b.WriteString("  " + dimStyle.Render("Nothing here.") + "\n\n")
			continue
		}
		for _, v := range section.views {
			b.WriteString(stockLine(v))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func stockLine(v stock.View) string {
	return fmt.Sprintf("  %s %s %s  %s\n",
		titleStyle.Render(truncateOrPad(v.Name, nameWidth)),
		levelBar(v.Percentage, barWidth),
		padLeft(formatPercent(v.Percentage), 7),
		dimStyle.Render(v.CategoryName+amountLabel(v)),
	)
}

func amountLabel(v stock.View) string {
	if v.Type != stock.TypeExact || v.FullValue == nil {
		return ""
	}
	unit := ""
	if v.Unit != nil {
		unit = " " + *v.Unit
	}
	current := stock.AmountAt(v.Percentage, *v.FullValue)
	return fmt.Sprintf("  ·  %s / %s%s", formatAmount(current), formatAmount(*v.FullValue), unit)
}

func levelBar(pct float64, width int) string {
	filled := max(0, min(int(pct)*width/100, width))
	color := bandColor(stock.BandOf(pct))
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", width-filled))
}

var sparkTicks = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws one tick per value on a fixed 0–100 scale.
func Sparkline(values []float64) string {
	var b strings.Builder
	top := len(sparkTicks) - 1
	for _, v := range values {
		i := int(v / 100 * float64(top))
		b.WriteRune(sparkTicks[max(0, min(i, top))])
	}
	return b.String()
}

// RenderAnalytics draws a sparkline per stock.
func RenderAnalytics(series []Series) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Item Level History") + "\n")
	b.WriteString("  " + separator + "\n")

	if len(series) == 0 {
		b.WriteString("  " + dimStyle.Render("No history yet.") + "\n")
		return b.String()
	}

	for _, s := range series {
		values := make([]float64, len(s.Points))
		for i, p := range s.Points {
			values[i] = p.Percentage
		}
		last := s.Points[len(s.Points)-1]
		color := bandColor(stock.BandOf(last.Percentage))
		b.WriteString(fmt.Sprintf("  %s %s %s  %s\n",
			titleStyle.Render(truncateOrPad(s.Name, nameWidth)),
			lipgloss.NewStyle().Foreground(color).Render(Sparkline(values)),
			padLeft(formatPercent(last.Percentage), 7),
			dimStyle.Render(fmt.Sprintf("%d updates since %s", len(s.Points), s.Points[0].At.Local().Format("2006-01-02"))),
		))
	}
	return b.String()
}

// RenderSettings lists every category with its items.
func RenderSettings(s Settings) string {
	var b strings.Builder
	for _, g := range s.Groups {
		name := g.Category.Name
		if g.Category.IsDefault() {
			name += " Items"
		}
		b.WriteString("\n  " + titleStyle.Render(name) +
			dimStyle.Render(fmt.Sprintf("  #%d · %d items", g.Category.ID, len(g.Stocks))) + "\n")
		b.WriteString("  " + separator + "\n")
		if len(g.Stocks) == 0 {
			b.WriteString("  " + dimStyle.Render("Empty.") + "\n")
			continue
		}
		for _, v := range g.Stocks {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				dimStyle.Render(padLeft("#"+strconv.FormatInt(v.ID, 10), 5)),
				truncateOrPad(v.Name, nameWidth),
				padLeft(formatPercent(v.Percentage), 7),
			))
		}
	}
	return b.String()
}

// RenderStock shows one stock with its full history.
func RenderStock(d *service.StockDetail) string {
	var b strings.Builder
	title := headerStyle.Render(d.Name)
	info := dimStyle.Render(fmt.Sprintf("#%d  ·  %s  ·  %s  ·  %s",
		d.ID, d.CategoryName, d.Type, d.Band()))
	b.WriteString(boxStyle.Render(title + "\n" + info))
	b.WriteString("\n\n")
	b.WriteString(stockLine(d.View))
	b.WriteString("\n")

	if len(d.History) == 0 {
		b.WriteString("  " + dimStyle.Render("No history recorded.") + "\n")
		return b.String()
	}
	for i, e := range d.History {
		line := fmt.Sprintf("  %s  %s",
			dimStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			padLeft(formatPercent(e.Percentage), 7),
		)
		if i > 0 {
			diff := e.Percentage - d.History[i-1].Percentage
			if diff > 0 {
				line += "  " + lipgloss.NewStyle().Foreground(success).Render("↑"+formatPercent(diff))
			} else if diff < 0 {
				line += "  " + lipgloss.NewStyle().Foreground(danger).Render("↓"+formatPercent(-diff))
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderHistory lists history rows, oldest first.
func RenderHistory(rows []stock.HistoryRow) string {
	if len(rows) == 0 {
		return "  " + dimStyle.Render("No history yet.") + "\n"
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s %s\n",
			dimStyle.Render(r.Timestamp.Local().Format("2006-01-02 15:04")),
			truncateOrPad(r.StockName, nameWidth),
			padLeft(formatPercent(r.Percentage), 7),
		))
	}
	return b.String()
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func truncateOrPad(s string, width int) string {
	if utf8.RuneCountInString(s) > width {
		return string([]rune(s)[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
