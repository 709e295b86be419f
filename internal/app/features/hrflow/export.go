// internal/app/features/hrflow/export.go
package hrflow

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dalemusser/hrflow/internal/app/store/workflowassign"
	"github.com/dalemusser/hrflow/internal/domain/models"
	"go.uber.org/zap"
)

// Export handles "export stages|interns|jobs [filename]".
func (h *Handler) Export(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageErr("export")
	}
	kind := strings.ToLower(args[0])

	var write func(io.Writer) (int, error)
	switch kind {
	case "stages":
		views := h.Store.ViewByStage()
		write = func(w io.Writer) (int, error) { return WriteStagesCSV(w, views) }
	case "interns":
		views := h.Store.ViewByIntern()
		write = func(w io.Writer) (int, error) { return WriteInternsCSV(w, views) }
	case "jobs":
		jobs := h.Jobs.List()
		write = func(w io.Writer) (int, error) { return WriteJobsCSV(w, jobs, h.internName) }
	default:
		return usageErr("export")
	}

	name := ""
	if len(args) == 2 {
		name = args[1]
	}
	path := filepath.Join(h.ExportDir, h.csvFilename(kind, name))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	rows, werr := write(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("write export: %w", werr)
	}

	h.Log.Info("workflow CSV exported", zap.String("kind", kind), zap.String("path", path), zap.Int("rows", rows))
	h.printf("Exported %d rows to %s\n", rows, path)
	return nil
}

// csvFilename returns name with a .csv suffix, or a timestamped default.
// Directory parts are dropped so exports stay inside ExportDir.
func (h *Handler) csvFilename(kind, name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "workflow_" + kind + "_" + h.Now().UTC().Format("20060102_150405") + ".csv"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		name += ".csv"
	}
	return name
}

// newCSVWriter writes the UTF-8 BOM Excel needs and returns a CRLF writer.
func newCSVWriter(w io.Writer) (*csv.Writer, error) {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return nil, err
	}
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return cw, nil
}

// WriteStagesCSV writes one row per stage with the assigned intern names
// pipe-separated, and returns the number of data rows.
func WriteStagesCSV(w io.Writer, views []workflowassign.StageView) (int, error) {
	cw, err := newCSVWriter(w)
	if err != nil {
		return 0, err
	}
	_ = cw.Write([]string{"order", "stage", "estimated_duration", "assigned_count", "interns"})
	for _, st := range views {
		names := make([]string, 0, len(st.Assigned))
		for _, a := range st.Assigned {
			names = append(names, a.Name)
		}
		_ = cw.Write([]string{
			strconv.Itoa(st.Order),
			st.Name,
			st.EstimatedDuration,
			strconv.Itoa(len(st.Assigned)),
			strings.Join(names, "|"),
		})
	}
	cw.Flush()
	return len(views), cw.Error()
}

// WriteInternsCSV writes one row per intern with their stage names
// pipe-separated in pipeline order, and returns the number of data rows.
func WriteInternsCSV(w io.Writer, views []workflowassign.InternView) (int, error) {
	cw, err := newCSVWriter(w)
	if err != nil {
		return 0, err
	}
	_ = cw.Write([]string{"intern", "department", "stage_count", "stages"})
	for _, iv := range views {
		names := make([]string, 0, len(iv.Stages))
		for _, ref := range iv.Stages {
			names = append(names, ref.Name)
		}
		_ = cw.Write([]string{
			iv.Name,
			iv.Department,
			strconv.Itoa(iv.Count),
			strings.Join(names, "|"),
		})
	}
	cw.Flush()
	return len(views), cw.Error()
}

// WriteJobsCSV writes the job task tracker, one row per task, newest job
// first. Submitted and evidence are empty for pending tasks. name resolves
// intern IDs for display.
func WriteJobsCSV(w io.Writer, jobs []models.JobPost, name func(id string) string) (int, error) {
	cw, err := newCSVWriter(w)
	if err != nil {
		return 0, err
	}
	_ = cw.Write([]string{"job_title", "intern", "status", "submitted", "evidence"})
	rows := 0
	for _, job := range jobs {
		for _, t := range job.Tasks {
			submitted := ""
			if t.SubmittedAt != nil {
				submitted = t.SubmittedAt.Format("2006-01-02")
			}
			_ = cw.Write([]string{job.Title, name(t.InternID), t.Status, submitted, t.Evidence})
			rows++
		}
	}
	cw.Flush()
	return rows, cw.Error()
}
