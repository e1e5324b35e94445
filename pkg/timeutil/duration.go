// Package timeutil parses the short windows used on the command line, such
// as "30m" for due tasks or "1w" for recent journal entries.
package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback window used when none is provided.
	DefaultWindow = "1w"
	// DefaultDueWindow is the look-ahead used for due-task queries.
	DefaultDueWindow = "30m"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// units are ordered largest first; FormatWindow relies on that.
var units = []struct {
	label   string
	size    time.Duration
	aliases []string
}{
	{"w", week, []string{"wk", "wks", "week", "weeks"}},
	{"d", day, []string{"day", "days"}},
	{"h", time.Hour, []string{"hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"min", "mins", "minute", "minutes"}},
	{"s", time.Second, []string{"sec", "secs", "second", "seconds"}},
}

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)\s*`)
	unitOf  = map[string]time.Duration{}
)

func init() {
	for _, u := range units {
		unitOf[u.label] = u.size
		for _, a := range u.aliases {
			unitOf[a] = u.size
		}
	}
}

// ErrPartialMinute is returned by ParseMinutes for windows such as "90s".
var ErrPartialMinute = errors.New("window must be a whole number of minutes")

// ParseWindow reads a window made of one or more number+unit segments, for
// example "3d" or "1h30m", and returns it with its compact form. Empty input
// means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid duration segment %q", rest)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		size, ok := unitOf[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * size
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with the largest units first, for example "1d2h".
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if n := d / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			d -= n * u.size
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

// ParseMinutes parses a due window into a positive number of whole minutes.
// A bare number is read as minutes. An empty input uses DefaultDueWindow.
func ParseMinutes(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultDueWindow
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("duration must be greater than zero")
		}
		return n, nil
	}
	d, _, err := ParseWindow(trimmed)
	if err != nil {
		return 0, err
	}
	if d%time.Minute != 0 {
		return 0, ErrPartialMinute
	}
	return int(d / time.Minute), nil
}

// Since returns the instant window before now, for "entries from the last
// week" style filters.
func Since(now time.Time, window string) (time.Time, error) {
	d, _, err := ParseWindow(window)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
