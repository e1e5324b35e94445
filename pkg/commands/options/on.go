package options

import (
	"time"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
	layoutDue      = "2006-01-02"
)

// ParseDue accepts "2024-2-28" or "2/28" and returns the date as YYYY-MM-DD.
// Without a year the date is the next one to come, relative to now.
func ParseDue(s string, now time.Time) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return "", err
		}
		t = t.AddDate(now.Year(), 0, 0)
		// 1/3 said on 12/5 means next January.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if t.Before(today) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return t.Format(layoutDue), nil
}
