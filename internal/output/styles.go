package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	ColorPrimary  = lipgloss.Color("#2E86AB")
	ColorMuted    = lipgloss.Color("#6C757D")
	ColorBorder   = lipgloss.Color("#4A5568")
	ColorPositive = lipgloss.Color("#2F9E44")
	ColorNegative = lipgloss.Color("#C92A2A")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ValueStyle = lipgloss.NewStyle().Bold(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 2)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
	firstCellStyle  = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)
)

// DeltaStyle colors a change green when it favors the claimant and red otherwise
func DeltaStyle(positive bool) lipgloss.Style {
	if positive {
		return lipgloss.NewStyle().Foreground(ColorPositive)
	}
	return lipgloss.NewStyle().Foreground(ColorNegative)
}

// NewTable returns a bordered table with right-aligned numeric columns
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle
			case col == 0:
				return firstCellStyle
			default:
				return cellStyle
			}
		})
}

// labelValue renders one "label  value" summary line
func labelValue(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-24s", label)) + ValueStyle.Render(value)
}
