// internal/app/store/interns/internstore.go
package interns

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/hrflow/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/dalemusser/waffle/toolkit/validate"
)

var (
	ErrEmptyID      = errors.New("intern id is required")
	ErrEmptyName    = errors.New("intern name is required")
	ErrDuplicateID  = errors.New("an intern with this id already exists")
	ErrInvalidEmail = errors.New("intern email is not valid")
)

// Store is the read-only intern directory. It keeps the seed order and
// hands out copies, so nothing outside the package can change a record.
type Store struct {
	interns []models.Intern
	byID    map[string]int
}

// New validates the seed and builds the directory. Emails are optional but
// must look like an address when present.
func New(seed []models.Intern) (*Store, error) {
	s := &Store{
		interns: make([]models.Intern, 0, len(seed)),
		byID:    make(map[string]int, len(seed)),
	}
	for _, in := range seed {
		in.ID = strings.TrimSpace(in.ID)
		in.Name = strings.TrimSpace(in.Name)
		in.Email = strings.ToLower(strings.TrimSpace(in.Email))

		if in.ID == "" {
			return nil, ErrEmptyID
		}
		if in.Name == "" {
			return nil, fmt.Errorf("%w: id %q", ErrEmptyName, in.ID)
		}
		if _, dup := s.byID[in.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, in.ID)
		}
		if in.Email != "" && !validate.SimpleEmailValid(in.Email) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, in.Email)
		}
		s.byID[in.ID] = len(s.interns)
		s.interns = append(s.interns, in)
	}
	return s, nil
}

// Get returns the intern with the given id.
func (s *Store) Get(id string) (models.Intern, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Intern{}, false
	}
	return s.interns[i], true
}

// List returns every intern in directory order.
func (s *Store) List() []models.Intern {
	out := make([]models.Intern, len(s.interns))
	copy(out, s.interns)
	return out
}

// Len reports the number of interns.
func (s *Store) Len() int { return len(s.interns) }

// Filter narrows Search. Empty fields and "all" match everything.
type Filter struct {
	Query      string // matched against name (folded) and email (lowercased)
	Department string
	Status     string
}

// Search returns the interns matching f, in directory order.
func (s *Store) Search(f Filter) []models.Intern {
	q := strings.TrimSpace(f.Query)
	qFold := text.Fold(q)
	qLower := strings.ToLower(q)

	var out []models.Intern
	for _, in := range s.interns {
		if q != "" &&
			!strings.Contains(text.Fold(in.Name), qFold) &&
			!strings.Contains(in.Email, qLower) {
			continue
		}
		if !matchesAll(f.Department, in.Department) || !matchesAll(f.Status, in.OnboardingStatus) {
			continue
		}
		out = append(out, in)
	}
	return out
}

// Departments lists distinct departments in first-seen order.
func (s *Store) Departments() []string {
	seen := make(map[string]bool)
	var out []string
	for _, in := range s.interns {
		if in.Department == "" || seen[in.Department] {
			continue
		}
		seen[in.Department] = true
		out = append(out, in.Department)
	}
	return out
}

func matchesAll(want, got string) bool {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return true
	}
	return strings.EqualFold(want, got)
}
