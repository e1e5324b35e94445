package entry

import (
	"regexp"
	"strings"
	"time"
)

const layoutISO = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is returned when form input is rejected before any request
// is made. Message is suitable for showing to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func validDate(s string) bool {
	_, err := time.Parse(layoutISO, s)
	return err == nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
