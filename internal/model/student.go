package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RiskLevel is the label the scoring service assigns to a student.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// Class is the CSS class used for a row of this level.
func (r RiskLevel) Class() string {
	return strings.ToLower(string(r))
}

// Student is one scored record as returned by the scoring service.
type Student struct {
	StudentID     StudentID `json:"StudentID"`
	Name          string    `json:"Name"`
	RiskLevel     RiskLevel `json:"risk_level"`
	AttendancePct float64   `json:"AttendancePct"`
	AverageScore  float64   `json:"AverageScore"`
	FeeOverdue    Flag      `json:"FeeOverdue"`
}

// StudentID accepts either a JSON number or a JSON string.
type StudentID string

func (id *StudentID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StudentID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("StudentID: %w", err)
	}
	*id = StudentID(n.String())
	return nil
}

// Flag is a boolean that the scoring service may also send as 0 or 1.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("FeeOverdue: invalid value %s", data)
	}
	*f = n != 0
	return nil
}
