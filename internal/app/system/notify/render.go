// internal/app/system/notify/render.go
package notify

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Renderer builds notification bodies. Names come from directory data and
// are stripped of markup before they go into a message.
type Renderer struct {
	printer *message.Printer
	policy  *bluemonday.Policy
}

// NewRenderer returns a Renderer that formats for the given locale.
func NewRenderer(tag language.Tag) *Renderer {
	return &Renderer{
		printer: message.NewPrinter(tag),
		policy:  bluemonday.StrictPolicy(),
	}
}

// ParseLocale parses a BCP 47 tag such as "en-US".
func ParseLocale(s string) (language.Tag, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return language.AmericanEnglish, nil
	}
	return language.Parse(s)
}

// WorkflowTask is the message sent when an intern is assigned to a stage.
func (r *Renderer) WorkflowTask(taskName, internName string) string {
	return r.printer.Sprintf("📋 New Workflow Task!\n\nTask: %s\nAssigned to: %s\n\nPlease complete within the estimated timeframe.",
		r.plain(taskName), r.plain(internName))
}

// JobAssignment is the message sent to every intern on a new job post. All
// assignees are named in each copy.
func (r *Renderer) JobAssignment(jobTitle string, internNames []string) string {
	names := make([]string, 0, len(internNames))
	for _, n := range internNames {
		if n = r.plain(n); n != "" {
			names = append(names, n)
		}
	}
	return r.printer.Sprintf("🎯 New Job Assignment!\n\nJob: %s\nAssigned to: %s\n\nPlease check your dashboard for details.",
		r.plain(jobTitle), strings.Join(names, ", "))
}

// TaskCount renders the per-intern assignment badge ("3 tasks").
func (r *Renderer) TaskCount(n int) string {
	if n == 1 {
		return r.printer.Sprintf("%d task", n)
	}
	return r.printer.Sprintf("%d tasks", n)
}

// plain drops any markup and undoes the entity escaping bluemonday applies,
// since bodies are plain text rather than HTML.
func (r *Renderer) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.policy.Sanitize(s)))
}
