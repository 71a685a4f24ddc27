package aggregator

import (
	"time"

	"github.com/sdpower/ccreport-go/internal/types"
)

const dateLayout = "2006-01-02"

type ContentSummarizer interface {
	Summarize(text string) (string, bool)
}

type ToolSummarizer interface {
	Summarize(name string, input map[string]any) (string, bool)
}

type Aggregator struct {
	content  ContentSummarizer
	tools    ToolSummarizer
	location *time.Location
}

func New(content ContentSummarizer, tools ToolSummarizer) *Aggregator {
	return &Aggregator{
		content:  content,
		tools:    tools,
		location: time.Local,
	}
}

// SetLocation sets the zone used for daily and hourly buckets. It defaults
// to the zone of the running process, not the zone the logs came from.
func (a *Aggregator) SetLocation(loc *time.Location) {
	if loc != nil {
		a.location = loc
	}
}

// Analyze folds sessions, in load order, into a fresh AnalysisResult.
// Sessions are not modified, so repeated calls give equal results.
func (a *Aggregator) Analyze(sessions []types.Session) *types.AnalysisResult {
	result := types.NewAnalysisResult()
	result.TotalSessions = len(sessions)
	result.Location = a.location.String()

	// Projects whose topic list was seeded by a summary entry take no
	// further user-message topics.
	seeded := make(map[string]bool)

	for _, session := range sessions {
		project := result.Project(session.Project)
		project.Sessions = append(project.Sessions, session.SessionID)

		for _, entry := range session.Entries {
			if entry.Timestamp != nil {
				a.observe(result, project, *entry.Timestamp)
			}

			switch entry.Type {
			case types.EntryUser:
				if entry.Message == nil {
					continue
				}
				project.MessageCount++
				if seeded[project.Name] || len(project.Topics) >= types.MaxUserTopics {
					continue
				}
				if topic, ok := a.content.Summarize(entry.Message.PlainText()); ok {
					project.Topics = append(project.Topics, topic)
				}

			case types.EntryAssistant:
				for _, use := range entry.Message.ToolUses() {
					project.ToolUsage[use.Name]++
					result.ToolUsage[use.Name]++

					if len(project.Topics) >= types.MaxTopics {
						continue
					}
					if topic, ok := a.tools.Summarize(use.Name, use.Input); ok {
						project.Topics = append(project.Topics, topic)
					}
				}

			case types.EntrySummary:
				if entry.HasSummary && len(project.Topics) == 0 {
					project.Topics = append(project.Topics, entry.Summary)
					seeded[project.Name] = true
				}
			}
		}
	}

	return result
}

func (a *Aggregator) observe(result *types.AnalysisResult, project *types.ProjectStats, ts time.Time) {
	project.Observe(ts)

	local := ts.In(a.location)
	result.DailyActivity[local.Format(dateLayout)]++
	result.HourlyActivity[local.Hour()]++
}

// AnalyzeWindow is Analyze with the requested window recorded on the result.
func (a *Aggregator) AnalyzeWindow(sessions []types.Session, start, end time.Time) *types.AnalysisResult {
	result := a.Analyze(sessions)
	result.Start = start.UTC()
	result.End = end.UTC()
	return result
}
