package app

import (
	"strings"

	"tableflip.dev/daybook/pkg/entry"
)

// FilterTasks keeps the tasks whose title or any tag contains term, ignoring
// case. The input is not modified.
func FilterTasks(tasks []entry.Task, term string) []entry.Task {
	out := make([]entry.Task, 0, len(tasks))
	for i := range tasks {
		if tasks[i].Matches(term) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// FilterEntries keeps the entries whose text or any tag contains term,
// ignoring case.
func FilterEntries(entries []entry.JournalEntry, term string) []entry.JournalEntry {
	out := make([]entry.JournalEntry, 0, len(entries))
	for i := range entries {
		if entries[i].Matches(term) {
			out = append(out, entries[i])
		}
	}
	return out
}

// SentimentCounts counts entries per sentiment label. Entries without a
// sentiment are counted under entry.UnknownLabel.
func SentimentCounts(entries []entry.JournalEntry) map[string]int {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Sentiment.Label()]++
	}
	return counts
}

// SentimentBar is one row of the sentiment charts.
type SentimentBar struct {
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
}

var sentimentColors = map[entry.Sentiment]string{
	entry.Positive: "#10b981",
	entry.Negative: "#ef4444",
	entry.Neutral:  "#6b7280",
	entry.Mixed:    "#f59e0b",
}

const defaultSentimentColor = "#6b7280"

// SentimentChart returns one bar per label in the order labels first appear
// in entries.
func SentimentChart(entries []entry.JournalEntry) []SentimentBar {
	counts := SentimentCounts(entries)
	bars := make([]SentimentBar, 0, len(counts))
	seen := make(map[string]bool, len(counts))
	for _, e := range entries {
		label := e.Sentiment.Label()
		if seen[label] {
			continue
		}
		seen[label] = true
		bars = append(bars, SentimentBar{Sentiment: label, Count: counts[label], Color: SentimentColor(e.Sentiment)})
	}
	return bars
}

// SentimentColor is the chart color for s, matched without regard to case.
func SentimentColor(s entry.Sentiment) string {
	if c, ok := sentimentColors[entry.Sentiment(strings.ToLower(string(s)))]; ok {
		return c
	}
	return defaultSentimentColor
}
