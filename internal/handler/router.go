package handler

import "github.com/gorilla/mux"

func NewRouter(upload *UploadHandler, events *EventsHandler, runs *RunHandler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", upload.Index).Methods("GET")
	r.HandleFunc("/", upload.SubmitPage).Methods("POST")
	r.HandleFunc("/upload", upload.UploadAPI).Methods("POST")
	r.HandleFunc("/board", upload.Board).Methods("GET")
	r.HandleFunc("/board/events", events.Stream).Methods("GET")
	r.HandleFunc("/runs", runs.ListRuns).Methods("GET")

	return r
}
