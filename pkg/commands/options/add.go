package options

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/entry"
)

// TaskFormOptions
type TaskFormOptions struct {
	Due       string
	Tags      string
	UserEmail string
	UserName  string
}

func AddTaskFormArgs(cmd *cobra.Command, o *TaskFormOptions) {
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Specify a due date, example: --due="2024-2-28" or --due="2/28".`)
	cmd.Flags().StringVarP(&o.Tags, "tags", "t", "",
		`Comma separated tags, example: --tags="home, errand".`)
	cmd.Flags().StringVar(&o.UserEmail, "email", "",
		Wrap80("Email address that receives reminders for this task."))
	cmd.Flags().StringVar(&o.UserName, "name", "",
		"Name used in reminder emails.")
}

// Form builds the form for title. Dates the flag parser cannot read are
// passed through untouched so validation reports them.
func (o *TaskFormOptions) Form(title string, now time.Time) entry.TaskForm {
	due := strings.TrimSpace(o.Due)
	if parsed, err := ParseDue(due, now); err == nil {
		due = parsed
	}
	return entry.TaskForm{
		Title:     title,
		DueDate:   due,
		Tags:      o.Tags,
		UserEmail: o.UserEmail,
		UserName:  o.UserName,
	}
}
