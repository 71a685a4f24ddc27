package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/types"
)

type tableRenderer struct {
	labels  i18n.Labels
	noColor bool
}

func (r tableRenderer) titleStyle() lipgloss.Style {
	if r.noColor {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
}

func (r tableRenderer) headingStyle() lipgloss.Style {
	if r.noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
}

func newTable(buf *bytes.Buffer, rowAlign tw.Align, betweenRows bool) *tablewriter.Table {
	separators := tw.Off
	if betweenRows {
		separators = tw.On
	}
	return tablewriter.NewTable(buf,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: separators}},
		})),
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: rowAlign},
			},
		}),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
}

func count(n int) string {
	return humanize.Comma(int64(n))
}

func (r tableRenderer) render(result *types.AnalysisResult, now time.Time) string {
	l := r.labels
	var out strings.Builder

	out.WriteString("\n")
	out.WriteString(r.titleStyle().Render(l.Title))
	out.WriteString("\n")
	fmt.Fprintf(&out, l.GeneratedFmt, now.Format(l.TimestampLayout))
	out.WriteString("\n")
	if !result.Start.IsZero() {
		fmt.Fprintf(&out, l.PeriodFmt, result.Start.Format(isoDayLayout), result.End.Format(isoDayLayout))
		out.WriteString("\n")
	}
	fmt.Fprintf(&out, "%s: %s  %s: %s\n\n",
		l.TotalSessions, count(result.TotalSessions),
		l.ActiveProjects, count(result.ActiveProjects()))

	if result.TotalSessions == 0 {
		out.WriteString(l.NoData)
		out.WriteString("\n")
		return out.String()
	}

	out.WriteString(r.headingStyle().Render(l.ProjectSummary))
	out.WriteString("\n")
	out.WriteString(r.projectTable(result))

	if len(result.ToolUsage) > 0 {
		out.WriteString("\n")
		out.WriteString(r.headingStyle().Render(l.ToolStats))
		out.WriteString("\n")
		out.WriteString(r.countTable(l.ColTool, TopN(result.ToolUsage, globalToolsTop)))
	}

	if len(result.DailyActivity) > 0 {
		out.WriteString("\n")
		out.WriteString(r.headingStyle().Render(l.DailyActivity))
		out.WriteString("\n")
		days := make([]Ranked, 0, len(result.DailyActivity))
		for _, day := range sortedKeys(result.DailyActivity) {
			days = append(days, Ranked{Name: displayDay(day), Count: result.DailyActivity[day]})
		}
		out.WriteString(r.countTable(l.ColDate, days))
	}

	if max := result.MaxHourly(); max > 0 {
		out.WriteString("\n")
		out.WriteString(r.headingStyle().Render(fmt.Sprintf("%s (%s)", l.HourlyActivity, result.Location)))
		out.WriteString("\n")
		for hour, c := range result.HourlyActivity {
			fmt.Fprintf(&out, " "+l.HourFmt+" %s %s\n", hour, colorBar(IntensityLevel(c, max), r.noColor), count(c))
		}
	}

	return out.String()
}

func (r tableRenderer) projectTable(result *types.AnalysisResult) string {
	l := r.labels
	var buf bytes.Buffer
	table := newTable(&buf, tw.AlignLeft, true)
	table.Header([]string{l.ColProject, l.Sessions, l.Messages, l.Period, l.Topics, l.Tools})

	for _, name := range sortedKeys(result.Projects) {
		p := result.Projects[name]
		if !p.Active() {
			continue
		}
		tools := make([]string, 0, projectToolsTop)
		for _, t := range TopN(p.ToolUsage, projectToolsTop) {
			tools = append(tools, fmt.Sprintf("%s %s", t.Name, count(t.Count)))
		}
		table.Append([]string{
			name,
			count(len(p.Sessions)),
			count(p.MessageCount),
			p.FirstActivity.UTC().Format(activityLayout) + "\n" + p.LastActivity.UTC().Format(activityLayout),
			strings.Join(p.Topics, "\n"),
			strings.Join(tools, "\n"),
		})
	}

	table.Render()
	return buf.String()
}

func (r tableRenderer) countTable(label string, rows []Ranked) string {
	var buf bytes.Buffer
	table := newTable(&buf, tw.AlignRight, false)
	table.Header([]string{label, r.labels.ColCount})
	for _, row := range rows {
		table.Append([]string{row.Name, count(row.Count)})
	}
	table.Render()
	return buf.String()
}
