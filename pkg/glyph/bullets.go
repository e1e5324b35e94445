// Package glyph holds the symbols used when rendering tasks and entries.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

// DefaultGlyphs is indexed by Bullet.
func DefaultGlyphs() []Glyph {
	return []Glyph{{
		Key:     "task",
		Symbol:  "●",
		Meaning: "open task",
	}, {
		Key:     "done",
		Symbol:  "✘",
		Meaning: "completed task",
	}, {
		Key:     "reminder",
		Symbol:  "♪",
		Meaning: "reminder enabled",
	}, {
		Key:     "due",
		Symbol:  "›",
		Meaning: "due date",
	}, {
		Key:     "entry",
		Symbol:  "⁃",
		Meaning: "journal entry",
	}, {
		Key:     "inspiration",
		Symbol:  "!",
		Meaning: "motivational message",
	}}
}

func (g Glyph) String() string {
	return g.Symbol
}

type Bullet int

const (
	Task Bullet = iota
	Completed
	Reminder
	Due
	Entry
	Inspiration
)

func (b Bullet) Glyph() Glyph {
	return DefaultGlyphs()[b]
}

func (b Bullet) String() string {
	return b.Glyph().String()
}
