// Package terminal holds the output log shown in the terminal panel.
package terminal

import "strings"

// Kind tags an entry for rendering.
type Kind int

const (
	KindSystem Kind = iota
	KindLog
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindLog:
		return "log"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Entry is one rendered line (or block, for errors) of terminal output.
type Entry struct {
	Kind    Kind
	Content string
}

// System returns a system marker entry.
func System(content string) Entry { return Entry{Kind: KindSystem, Content: content} }

// Log returns a program output entry.
func Log(content string) Entry { return Entry{Kind: KindLog, Content: content} }

// Error returns an error entry.
func Error(content string) Entry { return Entry{Kind: KindError, Content: content} }

// OutputLog is an ordered, append-only list of entries. Reset is the only
// way to drop entries and always leaves exactly one system entry behind.
type OutputLog struct {
	entries []Entry
}

// Reset replaces the log with a single system entry.
func (l *OutputLog) Reset(marker string) {
	l.entries = []Entry{System(marker)}
}

// Append adds entries in order.
func (l *OutputLog) Append(entries ...Entry) {
	if len(entries) == 0 {
		return
	}
	l.entries = append(l.entries, entries...)
}

// Entries returns a copy of the log.
func (l *OutputLog) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// OutputLines splits program output into log entries, one per line, dropping
// blank lines. Line content is kept as-is apart from a trailing carriage
// return.
func OutputLines(output string) []Entry {
	if output == "" {
		return nil
	}
	var out []Entry
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Log(line))
	}
	return out
}
