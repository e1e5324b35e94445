package options

import (
	"time"

	"github.com/spf13/cobra"
)

// JournalOptions
type JournalOptions struct {
	Limit int
}

func AddJournalArgs(cmd *cobra.Command, o *JournalOptions, limit int) {
	cmd.Flags().IntVarP(&o.Limit, "limit", "n", limit,
		"How many recent entries to fetch.")
}

// SearchOptions
type SearchOptions struct {
	Search string
}

func AddSearchArgs(cmd *cobra.Command, o *SearchOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show items whose text or tags contain this, ignoring case.")
}

// MonthOptions
type MonthOptions struct {
	Month string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.Month, "month", "m", "",
		`Month to show, example: --month="2024-5". Defaults to this month.`)
}

// GetMonth returns the first of the selected month, or the zero time.
func (o *MonthOptions) GetMonth() (time.Time, error) {
	if o.Month == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-1", o.Month, time.Local)
}
