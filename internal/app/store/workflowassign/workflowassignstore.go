// internal/app/store/workflowassign/workflowassignstore.go
package workflowassign

// Terminology
//   - Stage: one ordered step of the HR pipeline (models.WorkflowStage)
//   - Assignment: an intern ID present in a stage's AssignedInterns set
//   - By-stage / by-intern view: the two projections of the assignment set

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/hrflow/internal/app/system/notify"
	"github.com/dalemusser/hrflow/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var (
	ErrUnknownStage  = errors.New("unknown workflow stage")
	ErrUnknownIntern = errors.New("unknown intern")
)

var (
	ErrInvalidStage     = errors.New("workflow stage needs an id and a positive order")
	ErrDuplicateStage   = errors.New("a workflow stage with this id already exists")
	ErrDuplicateOrder   = errors.New("a workflow stage with this order already exists")
	ErrInvalidAssignees = errors.New("seeded assignment is not valid")
)

// Directory is the read side of the intern directory the store resolves
// IDs against.
type Directory interface {
	Get(id string) (models.Intern, bool)
	List() []models.Intern
}

// Notifier accepts a notification for asynchronous delivery. Enqueue must
// not block; its result is informational only.
type Notifier interface {
	Enqueue(n models.Notification) bool
}

// Deps holds the collaborators of a Store.
type Deps struct {
	Directory Directory
	Notifier  Notifier
	Renderer  *notify.Renderer // nil uses en-US
	Log       *zap.Logger      // nil discards
	Now       func() time.Time // nil uses time.Now
}

// Store owns the stage pipeline and the stage/intern assignment relation.
// The per-stage AssignedInterns sets are the only record of assignments;
// ViewByIntern is derived from them on every call.
type Store struct {
	mu     sync.Mutex
	stages []models.WorkflowStage // sorted by Order
	byID   map[string]int

	dir      Directory
	notifier Notifier
	render   *notify.Renderer
	log      *zap.Logger
	now      func() time.Time
}

// New validates the seed pipeline and builds a Store. The seed is copied;
// later changes to the caller's slices do not reach the store.
func New(seed []models.WorkflowStage, deps Deps) (*Store, error) {
	if deps.Directory == nil {
		return nil, errors.New("workflowassign: directory is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("workflowassign: notifier is required")
	}
	s := &Store{
		stages:   make([]models.WorkflowStage, 0, len(seed)),
		byID:     make(map[string]int, len(seed)),
		dir:      deps.Directory,
		notifier: deps.Notifier,
		render:   deps.Renderer,
		log:      deps.Log,
		now:      deps.Now,
	}
	if s.render == nil {
		s.render = notify.NewRenderer(language.AmericanEnglish)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}

	seenOrder := make(map[int]string, len(seed))
	seenID := make(map[string]bool, len(seed))
	for _, st := range seed {
		st.ID = strings.TrimSpace(st.ID)
		if st.ID == "" || st.Order <= 0 {
			return nil, fmt.Errorf("%w: id %q order %d", ErrInvalidStage, st.ID, st.Order)
		}
		if seenID[st.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateStage, st.ID)
		}
		if other, dup := seenOrder[st.Order]; dup {
			return nil, fmt.Errorf("%w: %d (stages %q and %q)", ErrDuplicateOrder, st.Order, other, st.ID)
		}
		seenID[st.ID] = true
		seenOrder[st.Order] = st.ID

		assigned := make([]string, 0, len(st.AssignedInterns))
		for _, internID := range st.AssignedInterns {
			if _, ok := s.dir.Get(internID); !ok {
				return nil, fmt.Errorf("%w: stage %q: %w: %q", ErrInvalidAssignees, st.ID, ErrUnknownIntern, internID)
			}
			if slices.Contains(assigned, internID) {
				return nil, fmt.Errorf("%w: stage %q lists intern %q twice", ErrInvalidAssignees, st.ID, internID)
			}
			assigned = append(assigned, internID)
		}
		st.AssignedInterns = assigned
		s.stages = append(s.stages, st)
	}

	sort.Slice(s.stages, func(i, j int) bool { return s.stages[i].Order < s.stages[j].Order })
	for i, st := range s.stages {
		s.byID[st.ID] = i
	}
	return s, nil
}

// lookup resolves both ids. Callers must hold s.mu.
func (s *Store) lookup(stageID, internID string) (*models.WorkflowStage, models.Intern, error) {
	i, ok := s.byID[stageID]
	if !ok {
		return nil, models.Intern{}, fmt.Errorf("%w: %q", ErrUnknownStage, stageID)
	}
	in, ok := s.dir.Get(internID)
	if !ok {
		return nil, models.Intern{}, fmt.Errorf("%w: %q", ErrUnknownIntern, internID)
	}
	return &s.stages[i], in, nil
}

// ToggleAssignment flips the (stage, intern) pair between unassigned and
// assigned and reports the new state.
//
// A fresh assignment enqueues exactly one workflow-task notification to the
// intern's phone. Unassigning sends nothing. The mutation is applied before
// the notification is handed off and is never undone by a failed delivery.
func (s *Store) ToggleAssignment(stageID, internID string) (bool, error) {
	s.mu.Lock()
	st, in, err := s.lookup(stageID, internID)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}

	if idx := slices.Index(st.AssignedInterns, internID); idx >= 0 {
		st.AssignedInterns = slices.Delete(st.AssignedInterns, idx, idx+1)
		s.mu.Unlock()
		s.log.Info("intern unassigned from stage",
			zap.String("stage_id", stageID),
			zap.String("intern_id", internID))
		return false, nil
	}

	st.AssignedInterns = append(st.AssignedInterns, internID)
	stageName := st.Name
	s.mu.Unlock()

	s.log.Info("intern assigned to stage",
		zap.String("stage_id", stageID),
		zap.String("stage", stageName),
		zap.String("intern_id", internID))

	n := models.Notification{
		ID:        uuid.NewString(),
		Type:      models.NotificationWorkflowTask,
		To:        in.Phone,
		Body:      s.render.WorkflowTask(stageName, in.Name),
		CreatedAt: s.now().UTC(),
	}
	if !s.notifier.Enqueue(n) {
		s.log.Debug("workflow task notification not queued",
			zap.String("notification_id", n.ID),
			zap.String("intern_id", internID))
	}
	return true, nil
}

// Unassign removes the intern from the stage if present. It never notifies.
func (s *Store) Unassign(stageID, internID string) error {
	s.mu.Lock()
	st, _, err := s.lookup(stageID, internID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	idx := slices.Index(st.AssignedInterns, internID)
	if idx >= 0 {
		st.AssignedInterns = slices.Delete(st.AssignedInterns, idx, idx+1)
	}
	s.mu.Unlock()

	if idx >= 0 {
		s.log.Info("intern unassigned from stage",
			zap.String("stage_id", stageID),
			zap.String("intern_id", internID))
	}
	return nil
}

// IsAssigned reports whether the intern is in the stage's set.
func (s *Store) IsAssigned(stageID, internID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _, err := s.lookup(stageID, internID)
	if err != nil {
		return false, err
	}
	return slices.Contains(st.AssignedInterns, internID), nil
}
