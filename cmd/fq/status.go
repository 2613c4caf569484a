package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"fq/internal/jobdir"
)

const (
	stateRunning = "running"
	stateDone    = "done"
	stateMissing = "missing"
)

// renderStatus lists jobs with their lock state instead of following them.
func renderStatus(w io.Writer, jobs []jobdir.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No jobs found")
		return err
	}

	colorize := shouldColorize(w)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Job", "State", "Size", "Modified"})
	for _, job := range jobs {
		tw.AppendRow(statusRow(job, colorize))
	}
	// Size is the only numeric column.
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Size", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}

func statusRow(job jobdir.Job, colorize bool) table.Row {
	if job.Missing {
		return table.Row{job.Name, paint(stateMissing, text.FgRed, colorize), "-", "-"}
	}
	state := paint(stateDone, text.FgHiBlack, colorize)
	if job.Running {
		state = paint(stateRunning, text.FgGreen, colorize)
	}
	return table.Row{
		job.Name,
		state,
		humanize.IBytes(uint64(job.Size)),
		humanize.Time(job.Modified),
	}
}

func paint(value string, color text.Color, colorize bool) string {
	if !colorize {
		return value
	}
	return color.Sprint(value)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
