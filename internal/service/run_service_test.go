package service_test

import (
	"fmt"
	"testing"
	"time"

	"riskboard/internal/model"
	"riskboard/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		status := model.RunCompleted
		if i%2 == 1 {
			status = model.RunError
		}
		run := model.UploadRun{
			ID:        fmt.Sprintf("run-%d", i),
			Mode:      "json",
			Status:    status,
			Total:     i,
			StartTime: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(&run).Error)
	}
	svc := service.NewRunService(db)

	runs, total, pages, err := svc.ListRuns(1, 2, "start_time", "desc", "")
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, 3, pages)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-4", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)

	runs, _, _, err = svc.ListRuns(3, 2, "start_time", "desc", "")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-0", runs[0].ID)

	runs, total, pages, err = svc.ListRuns(1, 10, "total", "asc", model.RunError)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, 1, pages)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[0].ID)
	assert.Equal(t, "run-3", runs[1].ID)
}

func TestListRunsRejectsUnknownSort(t *testing.T) {
	svc := service.NewRunService(setupTestDB(t))

	_, _, _, err := svc.ListRuns(1, 10, "name; DROP TABLE upload_runs", "asc", "")
	assert.Error(t, err)

	_, _, _, err = svc.ListRuns(1, 10, "start_time", "sideways", "")
	assert.Error(t, err)
}
