package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/types"
)

const (
	FormatMarkdown = "markdown"
	FormatTable    = "table"
	FormatJSON     = "json"
)

type Formatter struct {
	options FormatterOptions
}

type FormatterOptions struct {
	Format   string // "markdown", "table", "json"
	NoColor  bool
	Language i18n.Language
	Now      func() time.Time
}

func NewFormatter(opts FormatterOptions) *Formatter {
	if opts.Format == "" {
		opts.Format = FormatMarkdown
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Formatter{options: opts}
}

func (f *Formatter) labels() i18n.Labels {
	return i18n.For(f.options.Language)
}

// FormatReport renders an analysis result in the configured format.
func (f *Formatter) FormatReport(result *types.AnalysisResult) (string, error) {
	switch f.options.Format {
	case FormatJSON:
		return f.FormatJSON(result)
	case FormatTable:
		r := tableRenderer{labels: f.labels(), noColor: f.options.NoColor}
		return r.render(result, f.options.Now()), nil
	case FormatMarkdown:
		return renderMarkdown(result, f.labels(), f.options.Now()), nil
	default:
		return "", fmt.Errorf("unknown format %q", f.options.Format)
	}
}

func (f *Formatter) FormatJSON(data interface{}) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

// SessionRow is one line of the session listing.
type SessionRow struct {
	Project      string     `json:"project"`
	SessionID    string     `json:"session_id"`
	Entries      int        `json:"entries"`
	UserMessages int        `json:"user_messages"`
	First        *time.Time `json:"first,omitempty"`
	Last         *time.Time `json:"last,omitempty"`
}

// SessionRows summarizes sessions ordered by project, then first activity.
func SessionRows(sessions []types.Session) []SessionRow {
	rows := make([]SessionRow, 0, len(sessions))
	for _, s := range sessions {
		row := SessionRow{
			Project:      s.Project,
			SessionID:    s.SessionID,
			Entries:      len(s.Entries),
			UserMessages: s.UserMessages(),
		}
		if first, last, ok := s.Bounds(); ok {
			row.First, row.Last = &first, &last
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Project != rows[j].Project {
			return rows[i].Project < rows[j].Project
		}
		return before(rows[i].First, rows[j].First)
	})
	return rows
}

// before orders known times first, then untimed sessions.
func before(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

// FormatSessionList renders one row per loaded session.
func (f *Formatter) FormatSessionList(sessions []types.Session) (string, error) {
	rows := SessionRows(sessions)
	if f.options.Format == FormatJSON {
		return f.FormatJSON(rows)
	}

	l := f.labels()
	r := tableRenderer{labels: l, noColor: f.options.NoColor}
	if len(rows) == 0 {
		return l.NoData + "\n", nil
	}

	var buf bytes.Buffer
	buf.WriteString(r.titleStyle().Render(l.SessionListTitle))
	buf.WriteString("\n")

	table := newTable(&buf, tw.AlignLeft, false)
	table.Header([]string{l.ColProject, l.ColSession, l.ColEntries, l.ColMessages, l.ColFirst, l.ColLast})
	totalEntries, totalMessages := 0, 0
	for _, row := range rows {
		table.Append([]string{
			row.Project,
			row.SessionID,
			count(row.Entries),
			count(row.UserMessages),
			activity(row.First),
			activity(row.Last),
		})
		totalEntries += row.Entries
		totalMessages += row.UserMessages
	}
	table.Footer([]string{"", count(len(rows)), count(totalEntries), count(totalMessages), "", ""})
	table.Render()
	return buf.String(), nil
}

func activity(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(activityLayout)
}
