package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"riskboard/internal/board"
	"riskboard/internal/model"
	"riskboard/internal/scoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUploadInProgress is returned when a submission arrives while another
// one is still waiting on the scoring service.
var ErrUploadInProgress = errors.New("upload already in progress")

// Uploader is the scoring service as seen by the dashboard.
type Uploader interface {
	UploadJSON(ctx context.Context, form *scoring.Form) ([]model.Student, error)
	UploadHTML(ctx context.Context, form *scoring.Form) ([]byte, error)
}

// Snapshot is what the dashboard currently shows: a board in JSON mode, or
// the page returned by the scoring service in HTML mode.
type Snapshot struct {
	RunID     string       `json:"run_id,omitempty"`
	Mode      string       `json:"mode"`
	Board     *board.Board `json:"board,omitempty"`
	HTML      string       `json:"html,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type DashboardService struct {
	db       *gorm.DB
	uploader Uploader
	mode     string
	log      *zap.Logger

	current     *Snapshot
	currentLock sync.RWMutex
	inFlight    atomic.Bool

	listeners    map[chan *Snapshot]bool
	listenerLock sync.RWMutex
}

func NewDashboardService(db *gorm.DB, uploader Uploader, mode string, log *zap.Logger) *DashboardService {
	if mode != scoring.ModeHTML {
		mode = scoring.ModeJSON
	}
	return &DashboardService{
		db:        db,
		uploader:  uploader,
		mode:      mode,
		log:       log,
		current:   &Snapshot{Mode: mode, Board: &board.Board{Rows: []board.Row{}}},
		listeners: make(map[chan *Snapshot]bool),
	}
}

func (s *DashboardService) Mode() string { return s.mode }

// Current returns a copy of the snapshot on screen.
func (s *DashboardService) Current() Snapshot {
	s.currentLock.RLock()
	defer s.currentLock.RUnlock()
	return *s.current
}

// Submit sends the form to the scoring service and, on success, replaces the
// snapshot on screen. On failure the previous snapshot stays in place and the
// returned error matches scoring.ErrUploadFailed.
func (s *DashboardService) Submit(ctx context.Context, form *scoring.Form) (*Snapshot, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrUploadInProgress
	}
	defer s.inFlight.Store(false)

	run := &model.UploadRun{
		ID:        uuid.New().String(),
		Mode:      s.mode,
		Files:     strings.Join(form.Filenames(), ","),
		StartTime: time.Now(),
	}

	snap := &Snapshot{RunID: run.ID, Mode: s.mode}
	var err error
	switch s.mode {
	case scoring.ModeHTML:
		var page []byte
		page, err = s.uploader.UploadHTML(ctx, form)
		snap.HTML = string(page)
	default:
		var students []model.Student
		students, err = s.uploader.UploadJSON(ctx, form)
		if err == nil {
			snap.Board = board.Build(students)
			run.Total = snap.Board.Counts.Total()
			run.High = snap.Board.Counts.High
			run.Medium = snap.Board.Counts.Medium
			run.Low = snap.Board.Counts.Low
		}
	}
	run.EndTime = time.Now()

	if err != nil {
		run.Status = model.RunError
		run.Error = errorCause(err)
		s.log.Warn("upload failed", zap.String("run_id", run.ID), zap.String("mode", s.mode), zap.Error(errors.Unwrap(err)))
		s.saveRun(run)
		return nil, err
	}

	snap.UpdatedAt = run.EndTime
	s.currentLock.Lock()
	s.current = snap
	s.currentLock.Unlock()

	run.Status = model.RunCompleted
	s.saveRun(run)
	s.log.Info("upload rendered",
		zap.String("run_id", run.ID),
		zap.String("mode", s.mode),
		zap.Int("rows", run.Total),
		zap.Duration("took", run.EndTime.Sub(run.StartTime)))

	s.Broadcast(snap)
	return snap, nil
}

func (s *DashboardService) RegisterListener(ch chan *Snapshot) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	s.listeners[ch] = true
}

func (s *DashboardService) UnregisterListener(ch chan *Snapshot) {
	s.listenerLock.Lock()
	defer s.listenerLock.Unlock()
	delete(s.listeners, ch)
}

// Broadcast hands the snapshot to every listener that is ready for it.
func (s *DashboardService) Broadcast(snap *Snapshot) {
	s.listenerLock.RLock()
	defer s.listenerLock.RUnlock()

	for listener := range s.listeners {
		select {
		case listener <- snap:
		default:
			// listener busy, it will get the next one
		}
	}
}

func (s *DashboardService) saveRun(run *model.UploadRun) {
	if s.db == nil {
		return
	}
	if err := s.db.Create(run).Error; err != nil {
		s.log.Error("failed to record upload run", zap.String("run_id", run.ID), zap.Error(err))
	}
}

func errorCause(err error) string {
	if cause := errors.Unwrap(err); cause != nil {
		return cause.Error()
	}
	return err.Error()
}
