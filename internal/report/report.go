// Package report prints the end-of-run summary table.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status of a job at the end of a run.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusWritten   Status = "written"
	StatusPreviewed Status = "previewed"
)

// Row is one job in the summary.
type Row struct {
	Job        string
	QueueType  string
	ScriptPath string
	JobID      string
	Status     Status
}

// Write renders rows as an aligned table. Colors are only emitted when w is
// a terminal.
func Write(w io.Writer, rows []Row) error {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true)
	nameWidth := len("JOB")
	for _, row := range rows {
		nameWidth = max(nameWidth, len(row.Job))
	}
	name := r.NewStyle().Width(nameWidth + 2)
	queue := r.NewStyle().Width(6)
	status := r.NewStyle().Width(11)
	id := r.NewStyle().Width(12)

	styles := map[Status]lipgloss.Style{
		StatusSubmitted: status.Foreground(lipgloss.Color("10")),
		StatusWritten:   status.Foreground(lipgloss.Color("11")),
		StatusPreviewed: status.Foreground(lipgloss.Color("12")),
	}

	if _, err := fmt.Fprintln(w, header.Render(
		name.Render("JOB")+queue.Render("QUEUE")+status.Render("STATUS")+id.Render("JOB ID")+"SCRIPT",
	)); err != nil {
		return err
	}
	for _, row := range rows {
		jobID := row.JobID
		if jobID == "" {
			jobID = "-"
		}
		st, ok := styles[row.Status]
		if !ok {
			st = status
		}
		line := name.Render(row.Job) + queue.Render(row.QueueType) + st.Render(string(row.Status)) + id.Render(jobID) + row.ScriptPath
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
