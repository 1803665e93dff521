package service

import (
	"fmt"
	"math"

	"riskboard/internal/model"

	"gorm.io/gorm"
)

var runSortColumns = map[string]bool{
	"start_time": true,
	"end_time":   true,
	"total":      true,
	"high":       true,
	"status":     true,
}

type RunService struct {
	db *gorm.DB
}

func NewRunService(db *gorm.DB) *RunService {
	return &RunService{db: db}
}

// ListRuns returns one page of upload runs, newest first unless told otherwise.
func (s *RunService) ListRuns(page, limit int, sortBy, sortOrder, status string) ([]model.UploadRun, int64, int, error) {
	if !runSortColumns[sortBy] {
		return nil, 0, 0, fmt.Errorf("cannot sort by %q", sortBy)
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		return nil, 0, 0, fmt.Errorf("invalid sort order %q", sortOrder)
	}

	query := func() *gorm.DB {
		q := s.db.Model(&model.UploadRun{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}

	var totalCount int64
	if err := query().Count(&totalCount).Error; err != nil {
		return nil, 0, 0, err
	}
	var runs []model.UploadRun
	err := query().Order(sortBy + " " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	return runs, totalCount, totalPages, nil
}
