package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/entry"
)

const chartWidth = 30

// SentimentAttribute is the terminal color for s, matched without regard to
// case.
func SentimentAttribute(s entry.Sentiment) color.Attribute {
	switch s.Normalize() {
	case entry.Positive:
		return color.FgGreen
	case entry.Negative:
		return color.FgRed
	case entry.Mixed:
		return color.FgYellow
	default:
		return color.FgHiBlack
	}
}

// Badge renders the sentiment label in its color. An absent sentiment shows
// as entry.UnknownLabel.
func Badge(s entry.Sentiment) string {
	return color.New(SentimentAttribute(s), color.Bold).Sprintf("[%s]", s.Label())
}

// SentimentChart renders one horizontal bar per sentiment, scaled so the
// largest count fills the chart width.
func (pp *PrettyPrint) SentimentChart(bars []app.SentimentBar) {
	if len(bars) == 0 {
		return
	}
	pp.Title("Sentiment Overview")
	top := 0
	for _, b := range bars {
		if b.Count > top {
			top = b.Count
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range bars {
		n := int(math.Round(float64(b.Count) / float64(top) * chartWidth))
		if n == 0 && b.Count > 0 {
			n = 1
		}
		c := color.New(SentimentAttribute(entry.Sentiment(b.Sentiment)))
		tbl.AddRow(b.Sentiment, c.Sprint(strings.Repeat("█", n)), b.Count)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// SentimentDistribution renders each sentiment's share of the total.
func (pp *PrettyPrint) SentimentDistribution(bars []app.SentimentBar) {
	if len(bars) == 0 {
		return
	}
	pp.Title("Sentiment Distribution")
	total := 0
	for _, b := range bars {
		total += b.Count
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, b := range bars {
		c := color.New(SentimentAttribute(entry.Sentiment(b.Sentiment)))
		tbl.AddRow(c.Sprint("●"), fmt.Sprintf("%s: %d", b.Sentiment, b.Count), Percent(b.Count, total))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Percent renders part/total with one decimal place.
func Percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
