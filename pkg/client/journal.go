package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"tableflip.dev/daybook/pkg/entry"
)

// DefaultJournalLimit is the number of entries fetched when none is given.
const DefaultJournalLimit = 10

// ListJournal fetches the most recent journal entries, newest first.
func (c *Client) ListJournal(ctx context.Context, limit int) ([]entry.JournalEntry, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	r := request{
		op:     "list journal",
		method: http.MethodGet,
		path:   "/journal",
		query:  url.Values{"limit": []string{strconv.Itoa(limit)}},
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var entries []entry.JournalEntry
	if err := decode(r, body, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entry.JournalEntry{}
	}
	return entries, nil
}

// CreateJournalEntry submits an entry for analysis and returns the stored
// record including its sentiment and motivational message.
func (c *Client) CreateJournalEntry(ctx context.Context, in entry.JournalInput) (*entry.JournalEntry, error) {
	if in.Tags == nil {
		in.Tags = []string{}
	}
	r := request{op: "create journal entry", method: http.MethodPost, path: "/journal", body: in}
	body, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	var e entry.JournalEntry
	if err := decode(r, body, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type inspireRequest struct {
	Sentiment entry.Sentiment `json:"sentiment"`
}

type inspireResponse struct {
	MotivationalMessage string `json:"motivationalMessage"`
}

// Inspire asks for a fresh motivational message for the given sentiment.
func (c *Client) Inspire(ctx context.Context, sentiment entry.Sentiment) (string, error) {
	r := request{
		op:     "inspire",
		method: http.MethodPost,
		path:   "/journal/inspire",
		body:   inspireRequest{Sentiment: sentiment},
	}
	body, err := c.do(ctx, r)
	if err != nil {
		return "", err
	}
	var out inspireResponse
	if err := decode(r, body, &out); err != nil {
		return "", err
	}
	return out.MotivationalMessage, nil
}
