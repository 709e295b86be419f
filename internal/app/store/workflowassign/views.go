// internal/app/store/workflowassign/views.go
package workflowassign

import (
	"fmt"
	"slices"

	"github.com/dalemusser/hrflow/internal/domain/models"
)

// AssignedIntern is an intern reference resolved for display.
type AssignedIntern struct {
	ID   string
	Name string
}

// StageView is one row of the by-stage view.
type StageView struct {
	ID                string
	Order             int
	Name              string
	Description       string
	EstimatedDuration string
	Assigned          []AssignedIntern
}

// StageRef identifies a stage in the by-intern view.
type StageRef struct {
	ID    string
	Order int
	Name  string
}

// InternView is one row of the by-intern view.
type InternView struct {
	InternID   string
	Name       string
	Department string
	Stages     []StageRef
	Count      int
}

// ViewByStage returns every stage in ascending order with its assigned
// interns resolved to names. The result shares no memory with the store.
func (s *Store) ViewByStage() []StageView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StageView, 0, len(s.stages))
	for i := range s.stages {
		out = append(out, s.stageView(&s.stages[i]))
	}
	return out
}

// Stage returns the by-stage row for a single stage.
func (s *Store) Stage(stageID string) (StageView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[stageID]
	if !ok {
		return StageView{}, fmt.Errorf("%w: %q", ErrUnknownStage, stageID)
	}
	return s.stageView(&s.stages[i]), nil
}

// stageView builds a detached row. Callers must hold s.mu.
func (s *Store) stageView(st *models.WorkflowStage) StageView {
	v := StageView{
		ID:                st.ID,
		Order:             st.Order,
		Name:              st.Name,
		Description:       st.Description,
		EstimatedDuration: st.EstimatedDuration,
		Assigned:          make([]AssignedIntern, 0, len(st.AssignedInterns)),
	}
	for _, id := range st.AssignedInterns {
		in, _ := s.dir.Get(id)
		v.Assigned = append(v.Assigned, AssignedIntern{ID: id, Name: in.Name})
	}
	return v
}

// ViewByIntern returns one row per directory intern, in directory order,
// listing the stages whose assigned set contains that intern. It is rebuilt
// from the stage sets on every call.
func (s *Store) ViewByIntern() []InternView {
	s.mu.Lock()
	defer s.mu.Unlock()

	interns := s.dir.List()
	out := make([]InternView, 0, len(interns))
	for _, in := range interns {
		v := InternView{
			InternID:   in.ID,
			Name:       in.Name,
			Department: in.Department,
			Stages:     []StageRef{},
		}
		for i := range s.stages {
			st := &s.stages[i]
			if slices.Contains(st.AssignedInterns, in.ID) {
				v.Stages = append(v.Stages, StageRef{ID: st.ID, Order: st.Order, Name: st.Name})
			}
		}
		v.Count = len(v.Stages)
		out = append(out, v)
	}
	return out
}
