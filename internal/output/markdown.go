package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/types"
)

const (
	activityLayout  = "2006/01/02 15:04"
	dayLayout       = "2006/01/02"
	isoDayLayout    = "2006-01-02"
	projectToolsTop = 5
	globalToolsTop  = 10
)

func renderMarkdown(result *types.AnalysisResult, labels i18n.Labels, now time.Time) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	line("# %s", labels.Title)
	line("")
	line(labels.GeneratedFmt, now.Format(labels.TimestampLayout))
	if !result.Start.IsZero() {
		line(labels.PeriodFmt, result.Start.Format(isoDayLayout), result.End.Format(isoDayLayout))
	}
	line("%s: %d", labels.TotalSessions, result.TotalSessions)
	line("%s: %d", labels.ActiveProjects, result.ActiveProjects())
	line("")

	if result.TotalSessions == 0 {
		line("%s", labels.NoData)
		return b.String()
	}

	line("## %s", labels.ProjectSummary)
	line("")
	for _, name := range sortedKeys(result.Projects) {
		p := result.Projects[name]
		if !p.Active() {
			continue
		}
		line("### 📁 %s", name)
		line("- %s: %d", labels.Sessions, len(p.Sessions))
		line("- %s: %d", labels.Messages, p.MessageCount)
		line("- "+labels.PeriodFmt, p.FirstActivity.UTC().Format(activityLayout), p.LastActivity.UTC().Format(activityLayout))
		if len(p.Topics) > 0 {
			line("- %s:", labels.Topics)
			for _, topic := range p.Topics {
				line("  - %s", topic)
			}
		}
		if len(p.ToolUsage) > 0 {
			line("- %s:", labels.Tools)
			for _, r := range TopN(p.ToolUsage, projectToolsTop) {
				line("  - %s: "+labels.TimesFmt, r.Name, r.Count)
			}
		}
		line("")
	}

	if len(result.ToolUsage) > 0 {
		line("## %s", labels.ToolStats)
		line("")
		for _, r := range TopN(result.ToolUsage, globalToolsTop) {
			line("- %s: "+labels.TimesFmt, r.Name, r.Count)
		}
		line("")
	}

	if len(result.DailyActivity) > 0 {
		line("## %s", labels.DailyActivity)
		line("")
		for _, day := range sortedKeys(result.DailyActivity) {
			line("- %s: "+labels.CountFmt, displayDay(day), result.DailyActivity[day])
		}
		line("")
	}

	if max := result.MaxHourly(); max > 0 {
		line("## %s (%s)", labels.HourlyActivity, result.Location)
		line("")
		for hour, count := range result.HourlyActivity {
			line("- "+labels.HourFmt+": %s ("+labels.CountFmt+")", hour, HourBar(IntensityLevel(count, max)), count)
		}
		line("")
	}

	return b.String()
}

// displayDay turns a YYYY-MM-DD bucket key into YYYY/MM/DD.
func displayDay(key string) string {
	t, err := time.Parse(isoDayLayout, key)
	if err != nil {
		return key
	}
	return t.Format(dayLayout)
}
