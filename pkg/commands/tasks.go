package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/runner/tasks"
	"tableflip.dev/daybook/pkg/timeutil"
)

func addTasks(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task", "t"},
		Short:   "Manage tasks and their email reminders",
		Example: `
daybook tasks add Buy milk --due 2/28 --tags "home, errand"
daybook tasks list --search milk
daybook tasks toggle 7
`,
	}

	addTasksList(cmd)
	addTasksAdd(cmd)
	addTasksToggle(cmd)
	addTasksRemind(cmd)
	addTasksDelete(cmd)
	addTasksGet(cmd)
	addTasksDue(cmd)
	addTasksExport(cmd)
	addTasksCalendar(cmd)

	topLevel.AddCommand(cmd)
}

func taskOutput(io *options.IDOptions) tasks.Output {
	return tasks.Output{JSON: output.JSON, ShowID: io.ShowID}
}

func addTasksList(parent *cobra.Command) {
	io := &options.IDOptions{}
	so := &options.SearchOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			l := tasks.List{Output: taskOutput(io), Tasks: s.tasks, Search: so.Search}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddSearchArgs(cmd, so)
	parent.AddCommand(cmd)
}

func addTasksAdd(parent *cobra.Command) {
	io := &options.IDOptions{}
	fo := &options.TaskFormOptions{}

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Long: options.Wrap80("Create a task. Reminder emails go to --email once the " +
			"reminder is turned on with `daybook tasks remind`."),
		Example: `
daybook tasks add Call the dentist --due 2024-3-1
daybook tasks add Water plants --tags home --email me@example.com --name Sam
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			a := tasks.Add{
				Output: taskOutput(io),
				Tasks:  s.tasks,
				Form:   fo.Form(strings.Join(args, " "), time.Now()),
			}
			return output.HandleError(a.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddTaskFormArgs(cmd, fo)
	parent.AddCommand(cmd)
}

// addTaskByID registers a subcommand taking a single task id.
func addTaskByID(parent *cobra.Command, use, short string, aliases []string, run func(s *session, o tasks.Output, id entry.ID) runner) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:               use + " [id]",
		Aliases:           aliases,
		Short:             short,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: taskCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			r := run(s, taskOutput(io), entry.ID(args[0]))
			return output.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	parent.AddCommand(cmd)
}

func addTasksToggle(parent *cobra.Command) {
	addTaskByID(parent, "toggle", "Flip a task between open and completed", []string{"done", "x"},
		func(s *session, o tasks.Output, id entry.ID) runner {
			return &tasks.Toggle{Output: o, Tasks: s.tasks, ID: id}
		})
}

func addTasksRemind(parent *cobra.Command) {
	addTaskByID(parent, "remind", "Turn email reminders for a task on or off", nil,
		func(s *session, o tasks.Output, id entry.ID) runner {
			return &tasks.Remind{Output: o, Tasks: s.tasks, ID: id}
		})
}

func addTasksDelete(parent *cobra.Command) {
	addTaskByID(parent, "delete", "Delete a task", []string{"rm"},
		func(s *session, o tasks.Output, id entry.ID) runner {
			return &tasks.Delete{Output: o, Tasks: s.tasks, ID: id}
		})
}

func addTasksGet(parent *cobra.Command) {
	addTaskByID(parent, "get", "Show a task with its reminder status", []string{"show"},
		func(s *session, o tasks.Output, id entry.ID) runner {
			return &tasks.Get{Output: o, Tasks: s.tasks, ID: id}
		})
}

func addTasksDue(parent *cobra.Command) {
	io := &options.IDOptions{}
	var (
		window     string
		privileged bool
	)

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List tasks due soon",
		Example: `
daybook tasks due
daybook tasks due --window 2h --privileged
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			d := tasks.Due{Output: taskOutput(io), Tasks: s.tasks, Window: window, Privileged: privileged}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&window, "window", "w", timeutil.DefaultDueWindow,
		"How far ahead to look, example: 45, 30m, 2h or 1d.")
	cmd.Flags().BoolVar(&privileged, "privileged", false,
		options.Wrap80("Send the configured development secret header with the query."))
	parent.AddCommand(cmd)
}

func addTasksExport(parent *cobra.Command) {
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			e := tasks.Export{Output: tasks.Output{JSON: output.JSON}, Tasks: s.tasks, Path: path}
			return output.HandleError(e.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&path, "out", "o", export.TasksFile,
		`File to write, "-" for stdout.`)
	parent.AddCommand(cmd)
}

func addTasksCalendar(parent *cobra.Command) {
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with the tasks due on each day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			c := tasks.Calendar{Output: tasks.Output{}, Tasks: s.tasks, Month: month}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddMonthArgs(cmd, mo)
	parent.AddCommand(cmd)
}
