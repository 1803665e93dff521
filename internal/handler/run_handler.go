package handler

import (
	"net/http"
	"strconv"

	"riskboard/internal/model"
)

type RunLister interface {
	ListRuns(page, limit int, sortBy, sortOrder, status string) ([]model.UploadRun, int64, int, error)
}

type RunHandler struct {
	runService RunLister
}

func NewRunHandler(runService RunLister) *RunHandler {
	return &RunHandler{runService: runService}
}

func (h *RunHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	sortBy := query.Get("sort_by")
	if sortBy == "" {
		sortBy = "start_time"
	}
	sortOrder := query.Get("sort_order")
	if sortOrder == "" {
		sortOrder = "desc"
	}
	status := query.Get("status")

	runs, totalCount, totalPages, err := h.runService.ListRuns(page, limit, sortBy, sortOrder, status)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":       runs,
		"page":       page,
		"limit":      limit,
		"total":      totalCount,
		"totalPages": totalPages,
	})
}
