package hrflow_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/hrflow/internal/app/features/hrflow"
	"github.com/dalemusser/hrflow/internal/app/store/interns"
	"github.com/dalemusser/hrflow/internal/app/store/jobposts"
	"github.com/dalemusser/hrflow/internal/app/store/workflowassign"
	"github.com/dalemusser/hrflow/internal/app/system/auditlog"
	"github.com/dalemusser/hrflow/internal/app/system/notify"
	"github.com/dalemusser/hrflow/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/audit"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type countingNotifier struct{ n int }

func (c *countingNotifier) Enqueue(models.Notification) bool {
	c.n++
	return true
}

func newTestHandler(t *testing.T) (*hrflow.Handler, *bytes.Buffer, *countingNotifier) {
	t.Helper()
	dir, err := interns.New([]models.Intern{
		{ID: "a", Name: "Alice", Email: "alice@example.com", Phone: "+1", Department: "Development", OnboardingStatus: models.OnboardingInProgress},
		{ID: "b", Name: "Bob", Email: "bob@example.com", Phone: "+2", Department: "Design", OnboardingStatus: models.OnboardingCompleted},
	})
	if err != nil {
		t.Fatalf("interns.New failed: %v", err)
	}
	notifier := &countingNotifier{}
	render := notify.NewRenderer(language.AmericanEnglish)
	store, err := workflowassign.New([]models.WorkflowStage{
		{ID: "1", Order: 1, Name: "Job Posting", Description: "Create and post job listings", EstimatedDuration: "2-3 hours"},
		{ID: "2", Order: 2, Name: "Interview Scheduling", Description: "Schedule interviews", EstimatedDuration: "1-2 hours"},
	}, workflowassign.Deps{Directory: dir, Notifier: notifier, Renderer: render, Log: zap.NewNop()})
	if err != nil {
		t.Fatalf("workflowassign.New failed: %v", err)
	}

	fixed := func() time.Time { return time.Date(2024, 1, 22, 9, 30, 0, 0, time.UTC) }
	jobs, err := jobposts.New(jobposts.Deps{Directory: dir, Notifier: notifier, Renderer: render, Log: zap.NewNop(), Now: fixed})
	if err != nil {
		t.Fatalf("jobposts.New failed: %v", err)
	}
	auditLog := auditlog.New(audit.NewMemoryStore(100), zap.NewNop(), auditlog.Config{Admin: "db"})

	var out bytes.Buffer
	h := hrflow.NewHandler(store, jobs, dir, render, auditLog, t.TempDir(), &out, zap.NewNop())
	h.Now = fixed
	return h, &out, notifier
}

func TestExec_ToggleAndViews(t *testing.T) {
	h, out, notifier := newTestHandler(t)
	ctx := context.Background()

	if err := h.Exec(ctx, "toggle 1 a"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Assigned Alice to 1. Job Posting") {
		t.Errorf("unexpected toggle output: %q", out.String())
	}
	if notifier.n != 1 {
		t.Errorf("notifications: got %d, want 1", notifier.n)
	}

	out.Reset()
	if err := h.Exec(ctx, "stages"); err != nil {
		t.Fatalf("stages failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "1. Job Posting [1]  (2-3 hours)") {
		t.Errorf("missing stage header: %q", got)
	}
	if !strings.Contains(got, "Assigned: Alice [a]") {
		t.Errorf("missing assignment: %q", got)
	}
	if !strings.Contains(got, "No interns assigned") {
		t.Errorf("stage 2 should be empty: %q", got)
	}

	out.Reset()
	if err := h.Exec(ctx, "interns"); err != nil {
		t.Fatalf("interns failed: %v", err)
	}
	got = out.String()
	if !strings.Contains(got, "Alice [a]  Development  (1 task)") {
		t.Errorf("missing Alice row: %q", got)
	}
	if !strings.Contains(got, "Bob [b]  Design  (0 tasks)") || !strings.Contains(got, "No assignments") {
		t.Errorf("missing Bob row: %q", got)
	}

	out.Reset()
	if err := h.Exec(ctx, "toggle 1 a"); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if !strings.Contains(out.String(), "Removed Alice from 1. Job Posting") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if notifier.n != 1 {
		t.Errorf("notifications after untoggle: got %d, want 1", notifier.n)
	}
}

func TestExec_Unassign(t *testing.T) {
	h, out, notifier := newTestHandler(t)
	ctx := context.Background()
	if err := h.Exec(ctx, "toggle 2 b"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := h.Exec(ctx, "unassign 2 b"); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if !strings.Contains(out.String(), "Removed Bob from 2. Interview Scheduling") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if notifier.n != 1 {
		t.Errorf("notifications: got %d, want 1", notifier.n)
	}
}

func TestExec_Errors(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx := context.Background()

	tests := []struct {
		line string
		want error
	}{
		{"toggle 9 a", workflowassign.ErrUnknownStage},
		{"toggle 1 z", workflowassign.ErrUnknownIntern},
		{"unassign 9 a", workflowassign.ErrUnknownStage},
		{"toggle 1", hrflow.ErrUsage},
		{"export pdf", hrflow.ErrUsage},
		{"dance", hrflow.ErrUsage},
		{`job title="Frontend`, hrflow.ErrUsage},
		{"job nonsense", hrflow.ErrUsage},
		{"job title=x alert=maybe", hrflow.ErrUsage},
		{"job title=x", jobposts.ErrEmptyDescription},
		{"complete J1-a", hrflow.ErrUsage},
		{"complete J9-z done", jobposts.ErrUnknownTask},
		{"audit 0", hrflow.ErrUsage},
		{"quit", hrflow.ErrQuit},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if err := h.Exec(ctx, tt.line); !errors.Is(err, tt.want) {
				t.Errorf("Exec(%q): got %v, want %v", tt.line, err, tt.want)
			}
		})
	}

	for _, line := range []string{"", "   ", "# comment"} {
		if err := h.Exec(ctx, line); err != nil {
			t.Errorf("Exec(%q): got %v, want nil", line, err)
		}
	}
}

func TestRun_ContinuesAfterErrors(t *testing.T) {
	h, out, _ := newTestHandler(t)
	script := strings.Join([]string{
		"toggle 1 a",
		"toggle nope a",
		"toggle 1 b",
		"quit",
		"toggle 2 a",
	}, "\n")

	failed, err := h.Run(context.Background(), strings.NewReader(script))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if failed != 1 {
		t.Errorf("failed: got %d, want 1", failed)
	}
	if !strings.Contains(out.String(), "error: unknown workflow stage") {
		t.Errorf("expected error line, got %q", out.String())
	}

	ok, err := h.Store.IsAssigned("1", "b")
	if err != nil || !ok {
		t.Errorf("command after error did not run: %v, %v", ok, err)
	}
	ok, _ = h.Store.IsAssigned("2", "a")
	if ok {
		t.Error("command after quit should not run")
	}
}

func TestSearch(t *testing.T) {
	h, out, _ := newTestHandler(t)
	ctx := context.Background()

	if err := h.Exec(ctx, "search ali"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "[a] Alice") || strings.Contains(out.String(), "[b] Bob") {
		t.Errorf("unexpected search output: %q", out.String())
	}
	if !strings.Contains(out.String(), "1 of 2 interns") {
		t.Errorf("missing count: %q", out.String())
	}

	out.Reset()
	if err := h.Exec(ctx, "search status=In_Progress"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "[a] Alice") {
		t.Errorf("status filter: %q", out.String())
	}

	out.Reset()
	if err := h.Exec(ctx, "search dept=Marketing"); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out.String(), "No interns found") {
		t.Errorf("expected no results: %q", out.String())
	}
}

func TestExport_Files(t *testing.T) {
	h, out, _ := newTestHandler(t)
	ctx := context.Background()
	if err := h.Exec(ctx, "toggle 1 a"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if err := h.Exec(ctx, "toggle 1 b"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	if err := h.Exec(ctx, "export stages"); err != nil {
		t.Fatalf("export stages failed: %v", err)
	}
	path := filepath.Join(h.ExportDir, "workflow_stages_20240122_093000.csv")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM")
	}
	want := "order,stage,estimated_duration,assigned_count,interns\r\n" +
		"1,Job Posting,2-3 hours,2,Alice|Bob\r\n" +
		"2,Interview Scheduling,1-2 hours,0,\r\n"
	if got := string(data[3:]); got != want {
		t.Errorf("stages CSV:\ngot  %q\nwant %q", got, want)
	}
	if !strings.Contains(out.String(), "Exported 2 rows to") {
		t.Errorf("unexpected output: %q", out.String())
	}

	if err := h.Exec(ctx, "export interns ../team"); err != nil {
		t.Fatalf("export interns failed: %v", err)
	}
	data, err = os.ReadFile(filepath.Join(h.ExportDir, "team.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want = "intern,department,stage_count,stages\r\n" +
		"Alice,Development,1,Job Posting\r\n" +
		"Bob,Design,1,Job Posting\r\n"
	if got := string(data[3:]); got != want {
		t.Errorf("interns CSV:\ngot  %q\nwant %q", got, want)
	}
}

func TestNotificationOutcome(t *testing.T) {
	h, out, _ := newTestHandler(t)

	h.NotificationOutcome(models.Notification{To: "+1", Body: "hello"}, models.NotificationDelivered, nil)
	if !strings.Contains(out.String(), "WhatsApp sent to +1:") || !strings.Contains(out.String(), "hello") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	h.NotificationOutcome(models.Notification{To: "+2"}, models.NotificationFailed, notify.ErrQueueFull)
	if !strings.Contains(out.String(), "WhatsApp to +2 failed: notification queue is full") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestHelp(t *testing.T) {
	h, out, _ := newTestHandler(t)
	ctx := context.Background()
	if err := h.Exec(ctx, "help"); err != nil {
		t.Fatalf("help failed: %v", err)
	}
	for _, want := range []string{"toggle <stage-id> <intern-id>", "export stages|interns", "quit"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestRun_StopsWhenContextCancelled(t *testing.T) {
	h, _, _ := newTestHandler(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		failed int
		err    error
	}
	done := make(chan result, 1)
	go func() {
		failed, err := h.Run(ctx, pr)
		done <- result{failed, err}
	}()

	if _, err := io.WriteString(pw, "toggle 1 a\n"); err != nil {
		t.Fatalf("write command: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		if ok, _ := h.Store.IsAssigned("1", "a"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("command was not executed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// The reader is now blocked waiting for the next line.
	cancel()
	select {
	case r := <-done:
		if !errors.Is(r.err, context.Canceled) {
			t.Errorf("err: got %v, want context.Canceled", r.err)
		}
		if r.failed != 0 {
			t.Errorf("failed: got %d, want 0", r.failed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run kept waiting for input after the context was cancelled")
	}
}

func TestJobs_CreateTrackCompleteExport(t *testing.T) {
	h, out, notifier := newTestHandler(t)
	ctx := context.Background()

	line := `job title="Frontend Intern" desc="Post the frontend listing" country="United States" interns=a,b platforms=LinkedIn,Indeed`
	if err := h.Exec(ctx, line); err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if !strings.Contains(out.String(), `Created job J1 "Frontend Intern" for 2 intern(s), WhatsApp alerts queued`) {
		t.Errorf("unexpected job output: %q", out.String())
	}
	if notifier.n != 2 {
		t.Errorf("notifications: got %d, want 2", notifier.n)
	}

	out.Reset()
	if err := h.Exec(ctx, "jobs"); err != nil {
		t.Fatalf("jobs failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Frontend Intern [J1]  United States  2024-01-22  WhatsApp alerts on",
		"Platforms: LinkedIn, Indeed",
		"[J1-a] Alice  Pending",
		"[J1-b] Bob  Pending",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tracker missing %q: %q", want, got)
		}
	}

	out.Reset()
	if err := h.Exec(ctx, "complete J1-a https://example.com/jobs/42 (LinkedIn)"); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !strings.Contains(out.String(), "Completed J1-a (Alice)") {
		t.Errorf("unexpected complete output: %q", out.String())
	}

	if err := h.Exec(ctx, "export jobs tracker"); err != nil {
		t.Fatalf("export jobs failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(h.ExportDir, "tracker.csv"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "job_title,intern,status,submitted,evidence\r\n" +
		"Frontend Intern,Alice,Completed,2024-01-22,https://example.com/jobs/42 (LinkedIn)\r\n" +
		"Frontend Intern,Bob,Pending,,\r\n"
	if got := string(data[3:]); got != want {
		t.Errorf("jobs CSV:\ngot  %q\nwant %q", got, want)
	}
}

func TestJobs_AlertOff(t *testing.T) {
	h, out, notifier := newTestHandler(t)
	ctx := context.Background()

	if err := h.Exec(ctx, `job title=Designer desc="Post it" country=india interns=b alert=off`); err != nil {
		t.Fatalf("job failed: %v", err)
	}
	if notifier.n != 0 {
		t.Errorf("notifications: got %d, want 0", notifier.n)
	}
	if !strings.Contains(out.String(), "no WhatsApp alert") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestAudit_RecordsAssignmentChanges(t *testing.T) {
	h, out, _ := newTestHandler(t)
	ctx := context.Background()

	for _, line := range []string{
		"toggle 1 a",
		"toggle 1 a",
		"unassign 2 b", // not assigned, nothing to record
		"toggle 2 b",
		"unassign 2 b",
	} {
		if err := h.Exec(ctx, line); err != nil {
			t.Fatalf("Exec(%q) failed: %v", line, err)
		}
	}

	events, err := h.AuditLog.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	counts := map[string]int{}
	for _, e := range events {
		counts[e.Action]++
	}
	if counts[auditlog.ActionInternAssignedToStage] != 2 || counts[auditlog.ActionInternUnassignedFromStage] != 2 || len(events) != 4 {
		t.Errorf("audit events: got %v (%d total), want 2 assigned and 2 unassigned", counts, len(events))
	}

	out.Reset()
	if err := h.Exec(ctx, "audit 10"); err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "workflow.intern_assigned  workflow_stage 1 (Job Posting)") || !strings.Contains(got, "intern_id=a") {
		t.Errorf("unexpected audit output: %q", got)
	}
}
