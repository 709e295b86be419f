// internal/app/store/jobposts/jobpoststore.go
package jobposts

// Terminology
//   - Job post: a listing handed to interns to publish (models.JobPost)
//   - Task: one assigned intern's tracker entry on a job post (models.JobTask)

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
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
	ErrEmptyTitle       = errors.New("job title is required")
	ErrEmptyDescription = errors.New("job description is required")
	ErrUnknownCountry   = errors.New("country is not one of the supported countries")
	ErrUnknownPlatform  = errors.New("platform is not one of the supported platforms")
	ErrNoInterns        = errors.New("a job post needs at least one assigned intern")
	ErrUnknownIntern    = errors.New("unknown intern")
)

var (
	ErrUnknownTask      = errors.New("unknown job task")
	ErrTaskCompleted    = errors.New("job task is already completed")
	ErrEvidenceRequired = errors.New("evidence is required to complete a job task")
)

// Platforms lists the recruiting platforms a job can be posted on.
func Platforms() []string {
	return []string{"LinkedIn", "Internshala", "Indeed", "AngelList", "Glassdoor"}
}

// Countries lists the countries a job can target.
func Countries() []string {
	return []string{"United States", "Canada", "United Kingdom", "Australia", "Germany", "India"}
}

// Directory resolves intern IDs.
type Directory interface {
	Get(id string) (models.Intern, bool)
}

// Notifier accepts a notification for asynchronous delivery.
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

// NewJob is the input to Create.
type NewJob struct {
	Title           string
	Description     string
	Platforms       []string
	Country         string
	AssignedInterns []string
	WhatsAppAlert   bool
}

// Store holds the job posts of one session, newest first.
type Store struct {
	mu     sync.Mutex
	jobs   []models.JobPost
	nextID int

	dir      Directory
	notifier Notifier
	render   *notify.Renderer
	log      *zap.Logger
	now      func() time.Time
}

// New builds an empty Store.
func New(deps Deps) (*Store, error) {
	if deps.Directory == nil {
		return nil, errors.New("jobposts: directory is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("jobposts: notifier is required")
	}
	s := &Store{
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
	return s, nil
}

// canonical returns the entry of allowed equal to v ignoring case.
func canonical(allowed []string, v string) (string, bool) {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(a, v) {
			return a, true
		}
	}
	return "", false
}

// Create validates in, records the job with one pending task per intern and,
// when WhatsAppAlert is set, enqueues one job-assignment notification per
// intern. Duplicate intern IDs collapse to one task.
func (s *Store) Create(in NewJob) (models.JobPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.JobPost{}, ErrEmptyTitle
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return models.JobPost{}, ErrEmptyDescription
	}
	country, ok := canonical(Countries(), in.Country)
	if !ok {
		return models.JobPost{}, fmt.Errorf("%w: %q", ErrUnknownCountry, in.Country)
	}
	platforms := make([]string, 0, len(in.Platforms))
	for _, p := range in.Platforms {
		cp, ok := canonical(Platforms(), p)
		if !ok {
			return models.JobPost{}, fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
		}
		if !slices.Contains(platforms, cp) {
			platforms = append(platforms, cp)
		}
	}

	var assignees []models.Intern
	for _, id := range in.AssignedInterns {
		id = strings.TrimSpace(id)
		if slices.ContainsFunc(assignees, func(a models.Intern) bool { return a.ID == id }) {
			continue
		}
		intern, ok := s.dir.Get(id)
		if !ok {
			return models.JobPost{}, fmt.Errorf("%w: %q", ErrUnknownIntern, id)
		}
		assignees = append(assignees, intern)
	}
	if len(assignees) == 0 {
		return models.JobPost{}, ErrNoInterns
	}

	s.mu.Lock()
	s.nextID++
	job := models.JobPost{
		ID:              "J" + strconv.Itoa(s.nextID),
		Title:           title,
		Description:     desc,
		Platforms:       platforms,
		Country:         country,
		AssignedInterns: make([]string, 0, len(assignees)),
		WhatsAppAlert:   in.WhatsAppAlert,
		CreatedAt:       s.now().UTC(),
		Tasks:           make([]models.JobTask, 0, len(assignees)),
	}
	for _, a := range assignees {
		job.AssignedInterns = append(job.AssignedInterns, a.ID)
		job.Tasks = append(job.Tasks, models.JobTask{
			ID:       job.ID + "-" + a.ID,
			JobID:    job.ID,
			InternID: a.ID,
			Status:   models.JobTaskPending,
		})
	}
	s.jobs = slices.Insert(s.jobs, 0, job)
	out := copyJob(job)
	s.mu.Unlock()

	s.log.Info("job post created",
		zap.String("job_id", job.ID),
		zap.String("title", job.Title),
		zap.Int("interns", len(assignees)),
		zap.Bool("whatsapp_alert", job.WhatsAppAlert))

	if job.WhatsAppAlert {
		names := make([]string, 0, len(assignees))
		for _, a := range assignees {
			names = append(names, a.Name)
		}
		body := s.render.JobAssignment(job.Title, names)
		for _, a := range assignees {
			n := models.Notification{
				ID:        uuid.NewString(),
				Type:      models.NotificationJobAssignment,
				To:        a.Phone,
				Body:      body,
				CreatedAt: s.now().UTC(),
			}
			if !s.notifier.Enqueue(n) {
				s.log.Debug("job assignment notification not queued",
					zap.String("notification_id", n.ID),
					zap.String("intern_id", a.ID))
			}
		}
	}
	return out, nil
}

// CompleteTask marks a task completed with the given evidence (a link or a
// note on where the job was posted).
func (s *Store) CompleteTask(taskID, evidence string) (models.JobTask, error) {
	evidence = strings.TrimSpace(evidence)
	if evidence == "" {
		return models.JobTask{}, ErrEvidenceRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		for j := range s.jobs[i].Tasks {
			t := &s.jobs[i].Tasks[j]
			if t.ID != taskID {
				continue
			}
			if t.Status == models.JobTaskCompleted {
				return models.JobTask{}, fmt.Errorf("%w: %q", ErrTaskCompleted, taskID)
			}
			at := s.now().UTC()
			t.Status = models.JobTaskCompleted
			t.Evidence = evidence
			t.SubmittedAt = &at
			s.log.Info("job task completed",
				zap.String("task_id", t.ID),
				zap.String("intern_id", t.InternID))
			return copyTask(*t), nil
		}
	}
	return models.JobTask{}, fmt.Errorf("%w: %q", ErrUnknownTask, taskID)
}

// List returns every job post, newest first. The result shares no memory
// with the store.
func (s *Store) List() []models.JobPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.JobPost, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, copyJob(j))
	}
	return out
}

func copyJob(j models.JobPost) models.JobPost {
	j.Platforms = slices.Clone(j.Platforms)
	j.AssignedInterns = slices.Clone(j.AssignedInterns)
	tasks := make([]models.JobTask, 0, len(j.Tasks))
	for _, t := range j.Tasks {
		tasks = append(tasks, copyTask(t))
	}
	j.Tasks = tasks
	return j
}

func copyTask(t models.JobTask) models.JobTask {
	if t.SubmittedAt != nil {
		at := *t.SubmittedAt
		t.SubmittedAt = &at
	}
	return t
}
