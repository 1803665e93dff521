package board

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	riskStyles = map[string]lipgloss.Style{
		"high":   cellStyle.Foreground(lipgloss.Color("#E74C3C")),
		"medium": cellStyle.Foreground(lipgloss.Color("#F39C12")),
		"low":    cellStyle.Foreground(lipgloss.Color("#27AE60")),
	}

	counterStyle = lipgloss.NewStyle().Bold(true).MarginRight(2)
)

// WriteTerminal prints the board as a bordered table followed by the three
// counters.
func WriteTerminal(w io.Writer, b *Board) error {
	if b == nil {
		b = &Board{}
	}

	rows := make([][]string, 0, len(b.Rows))
	for _, r := range b.Rows {
		rows = append(rows, []string{r.StudentID, r.Name, r.RiskLevel, r.Attendance, r.AverageScore, r.FeeStatus})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Student ID", "Name", "Risk", "Attendance %", "Average Score", "Fee Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(b.Rows) && col == 2 {
				if s, ok := riskStyles[b.Rows[row].Class]; ok {
					return s
				}
			}
			return cellStyle
		})

	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		counterStyle.Render(b.Counts.HighText()),
		counterStyle.Render(b.Counts.MediumText()),
		counterStyle.Render(b.Counts.LowText()),
	)

	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString("\n")
	sb.WriteString(counters)
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
