package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"github.com/tonhe/opsdeck/internal/store"
	"github.com/tonhe/opsdeck/internal/tasks"
)

func addTasks(topLevel *cobra.Command, o *rootOptions) {
	var pending bool

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Print the tasks parsed from the Todo buffer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			list, err := loadTasks(store.Open(env.dataDir))
			if err != nil {
				return err
			}
			if pending {
				list = tasks.Schedule(list, 0)
			}
			return printTasks(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "only open tasks, in reminder order")

	topLevel.AddCommand(cmd)
}

// loadTasks parses todo.txt, falling back to the tasks.json mirror when the
// buffer is empty.
func loadTasks(st *store.Store) ([]tasks.Task, error) {
	text, err := st.LoadBuffer(store.TodoKey)
	if err != nil {
		return nil, fmt.Errorf("read todo: %w", err)
	}
	if strings.TrimSpace(text) != "" {
		return tasks.Parse(text), nil
	}
	list, err := st.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("read tasks mirror: %w", err)
	}
	return list, nil
}

func printTasks(w io.Writer, list []tasks.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	timeColor := color.New(color.FgYellow).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow(bold("TIME"), bold("DONE"), bold("TITLE"), bold("DESCRIPTION"))
	for _, t := range list {
		when := "--:--"
		if t.HasTime() {
			when = timeColor(t.Time)
		}
		done := ""
		title := t.Title
		if t.Completed {
			done = "x"
			title = faint(title)
		}
		tbl.AddRow(when, done, title, strings.ReplaceAll(t.Description, "\n", " / "))
	}
	_, err := fmt.Fprintln(w, tbl)
	return err
}
