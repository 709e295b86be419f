// internal/app/features/hrflow/commands.go
package hrflow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

type command struct {
	usage string
	help  string
	run   func(h *Handler, ctx context.Context, args []string) error
}

// commands lists every command the front end understands, keyed by name.
func commands() map[string]command {
	return map[string]command{
		"stages":   {usage: "stages", help: "show the task view (stages with assigned interns)", run: (*Handler).ShowStages},
		"interns":  {usage: "interns", help: "show the intern view (interns with their stages)", run: (*Handler).ShowInterns},
		"toggle":   {usage: "toggle <stage-id> <intern-id>", help: "assign or unassign an intern", run: (*Handler).Toggle},
		"unassign": {usage: "unassign <stage-id> <intern-id>", help: "remove an intern from a stage", run: (*Handler).Unassign},
		"search":   {usage: "search [query] [dept=<name>] [status=<status>]", help: "find interns by name or email", run: (*Handler).Search},
		"job":      {usage: `job title="<title>" desc="<text>" country="<country>" interns=<id,id> [platforms=<p,p>] [alert=on|off]`, help: "assign a job post to interns", run: (*Handler).CreateJob},
		"jobs":     {usage: "jobs", help: "show the job task tracker", run: (*Handler).ShowJobs},
		"complete": {usage: "complete <task-id> <evidence>", help: "mark a job task completed", run: (*Handler).CompleteTask},
		"audit":    {usage: "audit [n]", help: "show the most recent admin events", run: (*Handler).ShowAudit},
		"export":   {usage: "export stages|interns|jobs [filename]", help: "write a CSV report", run: (*Handler).Export},
		"help":     {usage: "help", help: "list commands", run: (*Handler).Help},
	}
}

// splitArgs splits a command line on blanks. Double quotes group words and
// may start mid-word, so title="Frontend Intern" is one argument.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inQuote bool
		inWord  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case !inQuote && (r == ' ' || r == '\t'):
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote", ErrUsage)
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}

// Exec runs a single command line. Blank lines and # comments do nothing.
func (h *Handler) Exec(ctx context.Context, line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil
	}
	fields, err := splitArgs(trimmed)
	if err != nil {
		return err
	}
	name := strings.ToLower(fields[0])
	if name == "quit" || name == "exit" {
		return ErrQuit
	}
	cmd, ok := commands()[name]
	if !ok {
		return fmt.Errorf("%w: unknown command %q (try help)", ErrUsage, fields[0])
	}
	return cmd.run(h, ctx, fields[1:])
}

// Run reads commands from in until EOF, quit or ctx is done. Command errors
// are printed and the session continues; the number of failed commands is
// returned so the caller can pick an exit status.
//
// Lines are read on a separate goroutine so cancelling ctx ends the session
// even while the reader is blocked. That goroutine stays parked on in until
// the reader returns.
func (h *Handler) Run(ctx context.Context, in io.Reader) (int, error) {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				readErr <- ctx.Err()
				return
			}
		}
		readErr <- sc.Err()
	}()

	failed := 0
	for {
		select {
		case <-ctx.Done():
			return failed, ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return failed, <-readErr
			}
			err := h.Exec(ctx, line)
			if errors.Is(err, ErrQuit) {
				return failed, nil
			}
			if err != nil {
				failed++
				h.Log.Warn("command failed", zap.String("command", strings.TrimSpace(line)), zap.Error(err))
				h.printf("error: %v\n", err)
			}
		}
	}
}

// Help prints the command list.
func (h *Handler) Help(ctx context.Context, args []string) error {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n      %s\n", cmds[name].usage, cmds[name].help)
	}
	fmt.Fprintf(&b, "  quit\n      end the session\n")
	h.printf("%s", b.String())
	return nil
}

func usageErr(name string) error {
	return fmt.Errorf("%w: %s", ErrUsage, commands()[name].usage)
}
