// internal/app/features/hrflow/jobs.go
package hrflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/hrflow/internal/app/store/jobposts"
	"github.com/dalemusser/hrflow/internal/domain/models"
)

// splitList splits a comma-separated argument value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreateJob handles the job assignment form:
// job title=".." desc=".." country=".." interns=<id,id> [platforms=<p,p>] [alert=on|off]
func (h *Handler) CreateJob(ctx context.Context, args []string) error {
	in := jobposts.NewJob{WhatsAppAlert: true}
	for _, a := range args {
		key, val, ok := strings.Cut(a, "=")
		if !ok {
			return usageErr("job")
		}
		switch strings.ToLower(key) {
		case "title":
			in.Title = val
		case "desc", "description":
			in.Description = val
		case "country":
			in.Country = val
		case "interns":
			in.AssignedInterns = splitList(val)
		case "platforms":
			in.Platforms = splitList(val)
		case "alert":
			switch strings.ToLower(val) {
			case "on", "yes", "true":
				in.WhatsAppAlert = true
			case "off", "no", "false":
				in.WhatsAppAlert = false
			default:
				return usageErr("job")
			}
		default:
			return fmt.Errorf("%w: unknown field %q; %s", ErrUsage, key, commands()["job"].usage)
		}
	}

	job, err := h.Jobs.Create(in)
	if err != nil {
		return err
	}
	h.AuditLog.JobPostCreated(ctx, job.ID, job.Title, len(job.Tasks))

	alert := "no WhatsApp alert"
	if job.WhatsAppAlert {
		alert = "WhatsApp alerts queued"
	}
	h.printf("Created job %s %q for %d intern(s), %s\n", job.ID, job.Title, len(job.Tasks), alert)
	return nil
}

// ShowJobs renders the job task tracker, newest job first.
func (h *Handler) ShowJobs(ctx context.Context, args []string) error {
	jobs := h.Jobs.List()
	if len(jobs) == 0 {
		h.printf("No job posts yet\n")
		return nil
	}

	var b strings.Builder
	for _, job := range jobs {
		fmt.Fprintf(&b, "%s [%s]  %s  %s", job.Title, job.ID, job.Country, job.CreatedAt.Format("2006-01-02"))
		if job.WhatsAppAlert {
			b.WriteString("  WhatsApp alerts on")
		}
		b.WriteString("\n")
		if len(job.Platforms) > 0 {
			fmt.Fprintf(&b, "   Platforms: %s\n", strings.Join(job.Platforms, ", "))
		}
		for _, t := range job.Tasks {
			fmt.Fprintf(&b, "   [%s] %s  %s", t.ID, h.internName(t.InternID), t.Status)
			if t.Status == models.JobTaskCompleted && t.SubmittedAt != nil {
				fmt.Fprintf(&b, "  %s  %s", t.SubmittedAt.Format("2006-01-02 15:04"), t.Evidence)
			}
			b.WriteString("\n")
		}
	}
	h.printf("%s", b.String())
	return nil
}

// CompleteTask handles "complete <task-id> <evidence>". Everything after the
// task id is the evidence.
func (h *Handler) CompleteTask(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageErr("complete")
	}
	task, err := h.Jobs.CompleteTask(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	h.AuditLog.JobTaskCompleted(ctx, task.ID, task.JobID, task.InternID)
	h.printf("Completed %s (%s)\n", task.ID, h.internName(task.InternID))
	return nil
}
