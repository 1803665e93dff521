package handler

import (
	"encoding/json"
	"net/http"

	"riskboard/internal/service"

	"go.uber.org/zap"
)

type EventsHandler struct {
	dashboard Dashboard
	log       *zap.Logger
}

func NewEventsHandler(dashboard Dashboard, log *zap.Logger) *EventsHandler {
	return &EventsHandler{dashboard: dashboard, log: log}
}

// Stream sends the current snapshot, then every new one, as Server-Sent Events.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	snapshots := make(chan *service.Snapshot, 1)
	h.dashboard.RegisterListener(snapshots)
	defer h.dashboard.UnregisterListener(snapshots)

	current := h.dashboard.Current()
	if !h.send(w, flusher, &current) {
		return
	}

	for {
		select {
		case snap := <-snapshots:
			if !h.send(w, flusher, snap) {
				return
			}
		case <-r.Context().Done():
			h.log.Debug("Client disconnected")
			return
		}
	}
}

func (h *EventsHandler) send(w http.ResponseWriter, flusher http.Flusher, snap *service.Snapshot) bool {
	data, err := json.Marshal(snap)
	if err != nil {
		h.log.Error("Error marshaling snapshot", zap.Error(err))
		return true
	}
	if _, err := w.Write([]byte("data: " + string(data) + "\n\n")); err != nil {
		h.log.Debug("Error writing SSE data", zap.Error(err))
		return false
	}
	flusher.Flush()
	return true
}
