package board_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"riskboard/internal/board"
	"riskboard/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) []model.Student {
	t.Helper()
	var students []model.Student
	require.NoError(t, json.Unmarshal([]byte(raw), &students))
	return students
}

func TestBuildSingleHighRecord(t *testing.T) {
	students := decode(t, `[{"StudentID":1,"Name":"A","risk_level":"High","AttendancePct":40,"AverageScore":35,"FeeOverdue":true}]`)

	b := board.Build(students)

	require.Len(t, b.Rows, 1)
	assert.Equal(t, board.Row{
		Class:        "high",
		StudentID:    "1",
		Name:         "A",
		RiskLevel:    "High",
		Attendance:   "40",
		AverageScore: "35",
		FeeStatus:    "Pending",
	}, b.Rows[0])
	assert.Equal(t, "High Risk: 1", b.Counts.HighText())
	assert.Equal(t, "Medium Risk: 0", b.Counts.MediumText())
	assert.Equal(t, "Low Risk: 0", b.Counts.LowText())
}

func TestBuildMixedRecords(t *testing.T) {
	students := []model.Student{
		{StudentID: "1", RiskLevel: model.RiskHigh},
		{StudentID: "2", RiskLevel: model.RiskMedium, AttendancePct: 80.5},
		{StudentID: "3", RiskLevel: model.RiskLow},
		{StudentID: "4", RiskLevel: model.RiskMedium},
		{StudentID: "5", RiskLevel: model.RiskHigh, FeeOverdue: true},
	}

	b := board.Build(students)

	require.Len(t, b.Rows, len(students))
	assert.Equal(t, board.Counts{High: 2, Medium: 2, Low: 1}, b.Counts)
	assert.Equal(t, len(students), b.Counts.Total())
	for i, s := range students {
		assert.Equal(t, string(s.StudentID), b.Rows[i].StudentID, "order is kept")
		assert.Equal(t, strings.ToLower(string(s.RiskLevel)), b.Rows[i].Class)
	}
	assert.Equal(t, "80.5", b.Rows[1].Attendance)
	assert.Equal(t, "Paid", b.Rows[0].FeeStatus)
	assert.Equal(t, "Pending", b.Rows[4].FeeStatus)
}

func TestBuildUnknownLevelCountsAsLow(t *testing.T) {
	b := board.Build([]model.Student{{RiskLevel: "Critical"}, {RiskLevel: "high"}})

	assert.Equal(t, board.Counts{Low: 2}, b.Counts)
	assert.Equal(t, "critical", b.Rows[0].Class)
	assert.Equal(t, "high", b.Rows[1].Class)
}

func TestBuildEmpty(t *testing.T) {
	b := board.Build(nil)

	assert.Empty(t, b.Rows)
	assert.Equal(t, 0, b.Counts.Total())
}

func TestWritePage(t *testing.T) {
	b := board.Build([]model.Student{
		{StudentID: "1", Name: "Ada", RiskLevel: model.RiskHigh, FeeOverdue: true},
		{StudentID: "2", Name: "Bob", RiskLevel: model.RiskLow},
	})

	var buf bytes.Buffer
	require.NoError(t, board.WritePage(&buf, board.PageData{Board: b}))
	page := buf.String()

	for _, id := range []string{`id="uploadForm"`, `id="studentTableBody"`, `id="highRisk"`, `id="mediumRisk"`, `id="lowRisk"`} {
		assert.Contains(t, page, id)
	}
	assert.Equal(t, 2, strings.Count(page, "<tr class="))
	assert.Contains(t, page, `<tr class="high"><td>1</td><td>Ada</td><td>High</td>`)
	assert.Contains(t, page, "High Risk: 1")
	assert.Contains(t, page, "Medium Risk: 0")
	assert.Contains(t, page, "Low Risk: 1")
	assert.NotContains(t, page, `role="alert"`)
}

func TestWritePageEscapesFields(t *testing.T) {
	b := board.Build([]model.Student{{Name: `<script>alert("x")</script>`, RiskLevel: model.RiskLow}})

	var buf bytes.Buffer
	require.NoError(t, board.WritePage(&buf, board.PageData{Board: b}))

	assert.NotContains(t, buf.String(), "<script>alert")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestWritePageAlertAndNilBoard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, board.WritePage(&buf, board.PageData{Alert: "Upload failed!"}))

	assert.Contains(t, buf.String(), "Upload failed!")
	assert.Contains(t, buf.String(), "High Risk: 0")
}

func TestWriteTerminal(t *testing.T) {
	b := board.Build([]model.Student{
		{StudentID: "1", Name: "Ada", RiskLevel: model.RiskHigh, AttendancePct: 40},
		{StudentID: "2", Name: "Bob", RiskLevel: model.RiskMedium},
	})

	var buf bytes.Buffer
	require.NoError(t, board.WriteTerminal(&buf, b))
	out := buf.String()

	assert.Contains(t, out, "Student ID")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "High Risk: 1")
	assert.Contains(t, out, "Medium Risk: 1")
	assert.Contains(t, out, "Low Risk: 0")
}

func TestWritePageModeInputs(t *testing.T) {
	var jsonPage, htmlPage bytes.Buffer
	require.NoError(t, board.WritePage(&jsonPage, board.PageData{Mode: "json"}))
	require.NoError(t, board.WritePage(&htmlPage, board.PageData{Mode: "html"}))

	for _, field := range []string{`name="attendance"`, `name="scores"`, `name="fees"`} {
		assert.Contains(t, jsonPage.String(), field)
		assert.NotContains(t, htmlPage.String(), field)
	}
	assert.NotContains(t, jsonPage.String(), `name="file"`)
	assert.Equal(t, 1, strings.Count(htmlPage.String(), `name="file"`))
}

func TestInjectAlert(t *testing.T) {
	page := "<html><BODY><p>scored</p></BODY></html>"

	got := board.InjectAlert(page, "Upload failed!")

	assert.Equal(t, `<html><BODY><p>scored</p><div class="alert" role="alert">Upload failed!</div></BODY></html>`, got)
}

func TestInjectAlertEscapesAndAppends(t *testing.T) {
	got := board.InjectAlert("<p>fragment</p>", "<b>x</b>")

	assert.Equal(t, `<p>fragment</p><div class="alert" role="alert">&lt;b&gt;x&lt;/b&gt;</div>`, got)
}
