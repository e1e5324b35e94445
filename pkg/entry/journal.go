package entry

import "strings"

// Sentiment is the backend's classification of a journal entry.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
	Mixed    Sentiment = "mixed"
	Unknown  Sentiment = "unknown"
)

// UnknownLabel is shown, and used as the aggregation key, when an entry has
// no sentiment at all.
const UnknownLabel = "Unknown"

// Label is the display and aggregation key for s.
func (s Sentiment) Label() string {
	if s == "" {
		return UnknownLabel
	}
	return string(s)
}

// Normalize folds the label into one of the known sentiments.
func (s Sentiment) Normalize() Sentiment {
	switch v := Sentiment(strings.ToLower(strings.TrimSpace(string(s)))); v {
	case Positive, Negative, Neutral, Mixed:
		return v
	default:
		return Unknown
	}
}

// JournalEntry is a diary entry with its server-side analysis.
type JournalEntry struct {
	ID                  ID        `json:"id"`
	Text                string    `json:"text"`
	Tags                []string  `json:"tags"`
	Sentiment           Sentiment `json:"sentiment"`
	MotivationalMessage string    `json:"motivationalMessage,omitempty"`
	CreatedAt           Timestamp `json:"createdAt"`
}

// Clone returns a deep copy of e.
func (e *JournalEntry) Clone() *JournalEntry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Tags = cloneStrings(e.Tags)
	return &cp
}

// Matches reports whether term is a case-insensitive substring of the text or
// of any tag.
func (e *JournalEntry) Matches(term string) bool {
	return matches(strings.ToLower(term), e.Text, e.Tags)
}

// JournalInput is the body of a create-entry request.
type JournalInput struct {
	Text string   `json:"text"`
	Tags []string `json:"tags"`
}

// Draft is the journal composition form: the text being written and the raw
// comma separated tags. It is mirrored to local storage while being edited.
type Draft struct {
	Text string `json:"text"`
	Tags string `json:"tags"`
}

// Empty reports whether the draft has no text worth keeping.
func (d Draft) Empty() bool {
	return blank(d.Text)
}

// Input validates the draft and converts it to a request body.
func (d Draft) Input() (JournalInput, error) {
	if d.Empty() {
		return JournalInput{}, &ValidationError{Field: "text", Message: "Journal text is required."}
	}
	return JournalInput{Text: d.Text, Tags: ParseTags(d.Tags)}, nil
}
