package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/export"
	"tableflip.dev/daybook/pkg/runner/journal"
)

func addJournal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"j"},
		Short:   "Write journal entries and review their sentiment",
		Example: `
daybook journal write "A great walk by the river" --tags outdoors
daybook journal compose
daybook journal stats
`,
	}

	addJournalList(cmd)
	addJournalWrite(cmd)
	addJournalCompose(cmd)
	addJournalDraft(cmd)
	addJournalStats(cmd)
	addJournalExport(cmd)

	topLevel.AddCommand(cmd)
}

func journalOutput(io *options.IDOptions) journal.Output {
	return journal.Output{JSON: output.JSON, ShowID: io.ShowID}
}

func addJournalList(parent *cobra.Command) {
	io := &options.IDOptions{}
	jo := &options.JournalOptions{}
	so := &options.SearchOptions{}
	var since string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent entries, newest first",
		Example: `
daybook journal list --limit 20
daybook journal list --since 1w --search work
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			l := journal.List{
				Output:  journalOutput(io),
				Journal: s.journal,
				Limit:   limitOr(jo.Limit, s),
				Search:  so.Search,
				Since:   since,
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddJournalArgs(cmd, jo, 0)
	options.AddSearchArgs(cmd, so)
	cmd.Flags().StringVar(&since, "since", "",
		"Only show entries from this window, example: 3d or 1w.")
	parent.AddCommand(cmd)
}

func addJournalWrite(parent *cobra.Command) {
	io := &options.IDOptions{}
	var (
		tags string
		more bool
	)

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Submit an entry and show its sentiment",
		Long: options.Wrap80("Submit an entry. The backend classifies its sentiment and " +
			"answers with a motivational message. A stored draft is cleared."),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			saver, err := s.autosaver()
			if err != nil {
				return output.HandleError(err)
			}
			defer saver.Stop()
			w := journal.Write{
				Output:  journalOutput(io),
				Journal: s.journal,
				Draft:   entry.Draft{Text: strings.Join(args, " "), Tags: tags},
				More:    more,
				Saver:   saver,
			}
			return output.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&tags, "tags", "t", "",
		`Comma separated tags, example: --tags="work, ideas".`)
	cmd.Flags().BoolVar(&more, "more", false,
		"Ask for a second motivational message.")
	parent.AddCommand(cmd)
}

func addJournalCompose(parent *cobra.Command) {
	io := &options.IDOptions{}
	var (
		tags string
		keep bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Write an entry line by line with autosave",
		Long: options.Wrap80("Read an entry from stdin, saving the draft shortly after " +
			"every line. End the input (ctrl-d) to submit it. An interrupted or " +
			"failed compose keeps the draft, and the next compose continues it."),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			saver, err := s.autosaver()
			if err != nil {
				return output.HandleError(err)
			}
			defer saver.Stop()
			c := journal.Compose{
				Output:  journalOutput(io),
				Journal: s.journal,
				Saver:   saver,
				In:      os.Stdin,
				Tags:    tags,
				Keep:    keep,
			}
			return output.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVarP(&tags, "tags", "t", "",
		"Comma separated tags for the entry.")
	cmd.Flags().BoolVar(&keep, "keep", false,
		"Save the draft at end of input instead of submitting it.")
	parent.AddCommand(cmd)
}

func addJournalDraft(parent *cobra.Command) {
	var (
		clearDraft bool
		follow     bool
	)

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Show, follow or clear the saved draft",
		Example: `
daybook journal draft
daybook journal draft --follow
daybook journal draft --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			p, err := s.persistence()
			if err != nil {
				return output.HandleError(err)
			}
			d := journal.Draft{
				Output:  journal.Output{JSON: output.JSON},
				Store:   p,
				Clear:   clearDraft,
				Follow:  follow,
				Watcher: p,
			}
			return output.HandleError(d.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&clearDraft, "clear", false, "Delete the saved draft.")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false,
		"Keep printing the draft as another session edits it.")
	parent.AddCommand(cmd)
}

func addJournalStats(parent *cobra.Command) {
	jo := &options.JournalOptions{}
	mo := &options.MonthOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Chart the sentiment of recent entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			st := journal.Stats{
				Output:  journal.Output{JSON: output.JSON},
				Journal: s.journal,
				Limit:   limitOr(jo.Limit, s),
				Month:   month,
			}
			return output.HandleError(st.Do(cmd.Context()))
		},
	}

	options.AddJournalArgs(cmd, jo, 0)
	options.AddMonthArgs(cmd, mo)
	parent.AddCommand(cmd)
}

func addJournalExport(parent *cobra.Command) {
	jo := &options.JournalOptions{}
	var path string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write recent entries to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return output.HandleError(err)
			}
			e := journal.Export{
				Output:  journal.Output{JSON: output.JSON},
				Journal: s.journal,
				Limit:   limitOr(jo.Limit, s),
				Path:    path,
			}
			return output.HandleError(e.Do(cmd.Context()))
		},
	}

	options.AddJournalArgs(cmd, jo, 0)
	cmd.Flags().StringVarP(&path, "out", "o", export.JournalFile,
		`File to write, "-" for stdout.`)
	parent.AddCommand(cmd)
}

// limitOr falls back to the configured journal limit when the flag is unset.
func limitOr(flag int, s *session) int {
	if flag > 0 {
		return flag
	}
	return s.cfg.JournalLimit()
}
