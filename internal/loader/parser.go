package loader

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/sdpower/ccreport-go/internal/types"
)

// timestampFormats are tried in order. Naive date-times are taken as UTC.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

type rawEntry struct {
	Type      json.RawMessage `json:"type"`
	Timestamp json.RawMessage `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
	Summary   json.RawMessage `json:"summary"`
}

type rawMessage struct {
	Content json.RawMessage `json:"content"`
}

type rawBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text"`
	Name  *string         `json:"name"`
	Input json.RawMessage `json:"input"`
}

// ParseLine decodes one log line. ok is false for blank lines and lines that
// are not a JSON object; those are expected in append-only logs.
func ParseLine(line []byte) (entry types.LogEntry, ok bool) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 || line[0] != '{' {
		return types.LogEntry{}, false
	}

	var raw rawEntry
	if err := json.Unmarshal(line, &raw); err != nil {
		return types.LogEntry{}, false
	}

	var tag string
	if len(raw.Type) > 0 {
		// Non-string tags fall through to EntryOther.
		_ = json.Unmarshal(raw.Type, &tag)
	}
	switch types.EntryType(tag) {
	case types.EntryUser, types.EntryAssistant, types.EntrySummary:
		entry.Type = types.EntryType(tag)
	default:
		entry.Type = types.EntryOther
		entry.RawType = tag
	}

	if ts, ok := parseTimestamp(raw.Timestamp); ok {
		entry.Timestamp = &ts
	}

	if len(raw.Message) > 0 {
		entry.Message = parseMessage(raw.Message)
	}

	if len(raw.Summary) > 0 {
		var s string
		if err := json.Unmarshal(raw.Summary, &s); err == nil {
			entry.Summary = s
			entry.HasSummary = true
		}
	}

	return entry, true
}

func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	if len(raw) == 0 {
		return time.Time{}, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	return ParseTimestamp(s)
}

// ParseTimestamp parses an ISO-8601 instant and returns it in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseMessage never fails: a message of an unexpected shape yields an empty
// Message so the entry still counts.
func parseMessage(raw json.RawMessage) *types.Message {
	msg := &types.Message{}

	var m rawMessage
	if err := json.Unmarshal(raw, &m); err != nil || len(m.Content) == 0 {
		return msg
	}

	var text string
	if err := json.Unmarshal(m.Content, &text); err == nil {
		msg.Text = text
		return msg
	}

	var items []json.RawMessage
	if err := json.Unmarshal(m.Content, &items); err != nil {
		return msg
	}

	msg.Blocks = make([]types.ContentBlock, 0, len(items))
	for _, item := range items {
		if b, ok := parseBlock(item); ok {
			msg.Blocks = append(msg.Blocks, b)
		}
	}
	return msg
}

func parseBlock(item json.RawMessage) (types.ContentBlock, bool) {
	var s string
	if err := json.Unmarshal(item, &s); err == nil {
		return types.ContentBlock{Kind: types.BlockText, Text: s, Bare: true}, true
	}

	var rb rawBlock
	if err := json.Unmarshal(item, &rb); err != nil {
		return types.ContentBlock{}, false
	}

	b := types.ContentBlock{Kind: rb.Type, Text: rb.Text}
	if rb.Type == types.BlockToolUse {
		b.Name = "unknown"
		if rb.Name != nil {
			b.Name = *rb.Name
		}
		b.Input = map[string]any{}
		if len(rb.Input) > 0 {
			var input map[string]any
			if err := json.Unmarshal(rb.Input, &input); err == nil && input != nil {
				b.Input = input
			}
		}
	}
	return b, true
}
