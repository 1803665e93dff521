package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"riskboard/internal/board"
	"riskboard/internal/scoring"
	"riskboard/internal/service"

	"go.uber.org/zap"
)

const maxUploadSize = 100 << 20 // 100MB

// Dashboard is the part of the dashboard service the handlers need.
type Dashboard interface {
	Mode() string
	Current() service.Snapshot
	Submit(ctx context.Context, form *scoring.Form) (*service.Snapshot, error)
	RegisterListener(ch chan *service.Snapshot)
	UnregisterListener(ch chan *service.Snapshot)
}

type UploadHandler struct {
	dashboard Dashboard
	log       *zap.Logger
}

func NewUploadHandler(dashboard Dashboard, log *zap.Logger) *UploadHandler {
	return &UploadHandler{dashboard: dashboard, log: log}
}

// Index shows whatever the dashboard currently holds.
func (h *UploadHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, http.StatusOK, h.dashboard.Current(), "")
}

// SubmitPage handles the browser form posted to "/" and answers with the
// re-rendered page.
func (h *UploadHandler) SubmitPage(w http.ResponseWriter, r *http.Request) {
	snap, status, err := h.submit(w, r)
	if err != nil {
		h.writePage(w, status, h.dashboard.Current(), err.Error())
		return
	}
	h.writePage(w, http.StatusOK, *snap, "")
}

// UploadAPI handles POST /upload and answers with the new snapshot as JSON.
func (h *UploadHandler) UploadAPI(w http.ResponseWriter, r *http.Request) {
	snap, status, err := h.submit(w, r)
	if err != nil {
		respondJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	respondJSON(w, http.StatusOK, snap)
}

// Board returns the current snapshot as JSON.
func (h *UploadHandler) Board(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Current())
}

var errNoFiles = errors.New("No files uploaded")

func (h *UploadHandler) submit(w http.ResponseWriter, r *http.Request) (*service.Snapshot, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, http.StatusRequestEntityTooLarge, errors.New("File too large or bad request")
	}
	defer r.MultipartForm.RemoveAll()

	if len(r.MultipartForm.File) == 0 {
		return nil, http.StatusBadRequest, errNoFiles
	}

	form, err := scoring.FormFromRequest(r)
	if err != nil {
		h.log.Error("Error opening uploaded file", zap.Error(err))
		return nil, http.StatusBadRequest, errors.New("File too large or bad request")
	}
	defer form.Close()

	snap, err := h.dashboard.Submit(r.Context(), form)
	switch {
	case errors.Is(err, service.ErrUploadInProgress):
		return nil, http.StatusConflict, err
	case err != nil:
		return nil, http.StatusBadGateway, err
	}
	return snap, http.StatusOK, nil
}

func (h *UploadHandler) writePage(w http.ResponseWriter, status int, snap service.Snapshot, alert string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	// The scoring service's page replaces ours wholesale; an alert goes inside it.
	if snap.HTML != "" {
		page := snap.HTML
		if alert != "" {
			page = board.InjectAlert(page, alert)
		}
		io.WriteString(w, page)
		return
	}

	if err := board.WritePage(w, board.PageData{Mode: snap.Mode, Board: snap.Board, Alert: alert}); err != nil {
		h.log.Error("Error rendering page", zap.Error(err))
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
