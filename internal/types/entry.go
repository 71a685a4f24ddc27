package types

import (
	"strings"
	"time"
)

// EntryType is the discriminator of a session log line.
type EntryType string

const (
	EntryUser      EntryType = "user"
	EntryAssistant EntryType = "assistant"
	EntrySummary   EntryType = "summary"
	EntryOther     EntryType = "other"
)

// Content block kinds we look at. Anything else is kept with its raw kind.
const (
	BlockText    = "text"
	BlockToolUse = "tool_use"
)

// LogEntry is one decoded line of a session log.
type LogEntry struct {
	Type    EntryType `json:"type"`
	RawType string    `json:"raw_type,omitempty"` // original tag when Type is EntryOther

	// Timestamp is nil when the line had no timestamp or it did not parse.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// Message is set for any line carrying a "message" key, even when the
	// value is not an object.
	Message *Message `json:"message,omitempty"`

	Summary    string `json:"summary,omitempty"`
	HasSummary bool   `json:"-"`
}

// Message is the payload of user and assistant entries.
type Message struct {
	// Text is set when content was a plain string.
	Text   string         `json:"text,omitempty"`
	Blocks []ContentBlock `json:"blocks,omitempty"`
}

// ContentBlock is one element of a message content array. Plain strings in
// the array are stored as text blocks with Bare set.
type ContentBlock struct {
	Kind  string         `json:"kind"`
	Text  string         `json:"text,omitempty"`
	Bare  bool           `json:"-"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

// PlainText concatenates the text content of a message with single spaces.
func (m *Message) PlainText() string {
	if m == nil {
		return ""
	}
	if m.Blocks == nil {
		return m.Text
	}

	var parts []string
	for _, b := range m.Blocks {
		if b.Kind == BlockText {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, " ")
}

// ToolUses returns the tool_use blocks of a message in order.
func (m *Message) ToolUses() []ContentBlock {
	if m == nil {
		return nil
	}
	var uses []ContentBlock
	for _, b := range m.Blocks {
		if b.Kind == BlockToolUse {
			uses = append(uses, b)
		}
	}
	return uses
}

// Session is the entry sequence of one log file, in file order.
type Session struct {
	Project   string     `json:"project"`
	SessionID string     `json:"session_id"`
	Path      string     `json:"path"`
	Entries   []LogEntry `json:"entries"`
}

// Bounds returns the earliest and latest timestamps in the session, or
// false when none of its entries carry one.
func (s Session) Bounds() (first, last time.Time, ok bool) {
	for _, e := range s.Entries {
		if e.Timestamp == nil {
			continue
		}
		ts := *e.Timestamp
		if !ok || ts.Before(first) {
			first = ts
		}
		if !ok || ts.After(last) {
			last = ts
		}
		ok = true
	}
	return first, last, ok
}

// UserMessages counts user entries carrying a message.
func (s Session) UserMessages() int {
	n := 0
	for _, e := range s.Entries {
		if e.Type == EntryUser && e.Message != nil {
			n++
		}
	}
	return n
}
