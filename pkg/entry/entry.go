// Package entry holds the records exchanged with the daybook backend: tasks,
// journal entries and the locally kept journal draft.
package entry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque backend-assigned identifier. Backends may emit it as a JSON
// string or a JSON number; both decode to the same textual form.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("entry: id must be a string or number: %w", err)
		}
		*id = ID(n.String())
		return nil
	}
}

// ParseTags splits a comma separated tag list as typed into a form. Segments
// are trimmed and empty ones dropped; order and duplicates are kept. The
// result is never nil so it encodes as [].
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	if strings.TrimSpace(raw) == "" {
		return tags
	}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// matches reports whether lowerTerm occurs in text or any tag, ignoring case.
// lowerTerm must already be lower cased.
func matches(lowerTerm, text string, tags []string) bool {
	if strings.Contains(strings.ToLower(text), lowerTerm) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
