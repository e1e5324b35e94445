// Package key prints the legend of symbols used in task and journal output.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/glyph"
	"tableflip.dev/daybook/pkg/printers"
)

// Key prints the glyph legend followed by the sentiment badges.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Symbol"), bold.Sprint("Meaning"))
	for _, g := range glyph.DefaultGlyphs() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Sentiment"), bold.Sprint("Badge"))
	for _, s := range []entry.Sentiment{entry.Positive, entry.Negative, entry.Neutral, entry.Mixed, ""} {
		tbl.AddRow(s.Label(), printers.Badge(s))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
