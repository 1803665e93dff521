// Package board turns scored student records into the rows and risk counters
// shown on the dashboard.
package board

import (
	"fmt"
	"strconv"

	"riskboard/internal/model"
)

const (
	FeePending = "Pending"
	FeePaid    = "Paid"
)

// Row is one rendered table row.
type Row struct {
	Class        string `json:"class"`
	StudentID    string `json:"student_id"`
	Name         string `json:"name"`
	RiskLevel    string `json:"risk_level"`
	Attendance   string `json:"attendance"`
	AverageScore string `json:"average_score"`
	FeeStatus    string `json:"fee_status"`
}

// Counts tallies rows per risk level. Anything that is neither High nor
// Medium counts as Low.
type Counts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (c Counts) Total() int { return c.High + c.Medium + c.Low }

func (c Counts) HighText() string   { return fmt.Sprintf("High Risk: %d", c.High) }
func (c Counts) MediumText() string { return fmt.Sprintf("Medium Risk: %d", c.Medium) }
func (c Counts) LowText() string    { return fmt.Sprintf("Low Risk: %d", c.Low) }

// Board is the result of one render pass.
type Board struct {
	Rows   []Row  `json:"rows"`
	Counts Counts `json:"counts"`
}

// Build renders students in order into a fresh board.
func Build(students []model.Student) *Board {
	b := &Board{Rows: make([]Row, 0, len(students))}
	for _, s := range students {
		b.Rows = append(b.Rows, NewRow(s))

		switch s.RiskLevel {
		case model.RiskHigh:
			b.Counts.High++
		case model.RiskMedium:
			b.Counts.Medium++
		default:
			b.Counts.Low++
		}
	}
	return b
}

func NewRow(s model.Student) Row {
	fee := FeePaid
	if s.FeeOverdue {
		fee = FeePending
	}
	return Row{
		Class:        s.RiskLevel.Class(),
		StudentID:    string(s.StudentID),
		Name:         s.Name,
		RiskLevel:    string(s.RiskLevel),
		Attendance:   formatNumber(s.AttendancePct),
		AverageScore: formatNumber(s.AverageScore),
		FeeStatus:    fee,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
