package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"taskflow/internal/dates"
	"taskflow/internal/output"
	"taskflow/internal/query"
	"taskflow/internal/task"
	"taskflow/internal/undo"
)

// dateArg validates a --date value, defaulting to today.
func dateArg(v string) string {
	if v == "" {
		return dates.Today()
	}
	if !dates.Valid(v) {
		printError(task.InvalidDateError{Value: v})
	}
	return v
}

// addCmd implements 'taskflow add'.
func addCmd() *cobra.Command {
	var tag, date string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to a day",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			a := mustOpen()
			defer a.Close()

			if tag == "" {
				tag = a.cfg.DefaultTag
			}
			tg, err := task.ParseTag(tag)
			if err != nil {
				printError(err)
			}
			t, err := a.store.Add(strings.Join(args, " "), tg, dateArg(date))
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Tag ("+tagList()+")")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day as YYYY-MM-DD (default today)")
	return cmd
}

// listCmd implements 'taskflow list'.
func listCmd() *cobra.Command {
	var date, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one day's tasks",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			day := dateArg(date)
			printOutput(formatter.FormatTaskList(day, search, query.Day(a.store, day, search)))
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only tasks whose title contains this text")
	return cmd
}

// toggleCmd implements 'taskflow toggle'.
func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			a := mustOpen()
			defer a.Close()

			res, err := a.store.Toggle(args[0])
			if err != nil {
				printError(err)
			}
			if res.Completed {
				printOutput(formatter.FormatMessage("✓ Task completed"))
			}
			printOutput(formatter.FormatTask(res.Task))
		},
	}
}

// rmCmd implements 'taskflow rm'. With a grace period the deletion can be
// cancelled with Ctrl+C until it expires.
func rmCmd() *cobra.Command {
	var grace time.Duration
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			a := mustOpen()
			defer a.Close()

			coord := undo.New(a.store, grace)
			p, err := coord.Delete(args[0])
			if err != nil {
				printError(err)
			}
			title := p.Handle.Task.Title
			if grace <= 0 {
				coord.Dismiss()
				printOutput(formatter.FormatMessage(fmt.Sprintf("Deleted %q", title)))
				return
			}

			fmt.Fprintf(os.Stderr, "Deleting %q in %s, press Ctrl+C to undo\n", title, coord.Timeout())
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			committed, err := coord.Wait(ctx, p)
			if errors.Is(err, context.Canceled) {
				coord.Undo()
				printOutput(formatter.FormatMessage(fmt.Sprintf("Restored %q", title)))
				return
			}
			if !committed {
				printError(task.NotFoundError{ID: args[0]})
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Deleted %q", title)))
		},
	}
	cmd.Flags().DurationVar(&grace, "grace", 0, "Undo window before the delete is committed, e.g. 3s")
	return cmd
}

// statsCmd implements 'taskflow stats'.
func statsCmd() *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show pending count, progress and streak for a day",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			day := dateArg(date)
			printOutput(formatter.FormatStats(output.Stats{
				Date:     day,
				Pending:  a.store.PendingCountForDate(day),
				Streak:   a.store.Streak(day),
				Progress: a.store.Progress(day),
			}))
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day as YYYY-MM-DD (default today)")
	return cmd
}

// calendarCmd implements 'taskflow calendar'.
func calendarCmd() *cobra.Command {
	var month, date string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show a month grid with the days that have tasks",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			today := dates.Today()
			selected := dateArg(date)
			m := dates.MonthOf(selected)
			if month != "" {
				var err error
				if m, err = dates.ParseMonth(month); err != nil {
					printError(err)
				}
			}
			printOutput(formatter.FormatCalendar(output.Calendar{
				Month:    m,
				Selected: selected,
				Today:    today,
				Marked:   a.store.DatesWithTasks(),
			}))
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default the selected day's month)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Selected day as YYYY-MM-DD (default today)")
	return cmd
}

// exportCmd implements 'taskflow export'.
func exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored task",
		Run: func(_ *cobra.Command, _ []string) {
			a := mustOpen()
			defer a.Close()

			f := formatter
			switch strings.ToLower(format) {
			case "":
			case "json":
				f = output.NewJSONFormatter()
			case "yaml", "yml":
				f = output.NewYAMLFormatter()
			default:
				printError(fmt.Errorf("unknown export format %q (want json or yaml)", format))
			}
			printOutput(f.FormatExport(a.store.Tasks()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default follows --json/--yaml)")
	return cmd
}

func tagList() string {
	names := make([]string, 0, len(task.Tags()))
	for _, t := range task.Tags() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
