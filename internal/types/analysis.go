package types

import (
	"time"
)

// Topic list caps.
const (
	MaxUserTopics = 3
	MaxTopics     = 5
)

// ProjectStats accumulates everything known about one project.
type ProjectStats struct {
	Name          string         `json:"name"`
	Sessions      []string       `json:"sessions"`
	MessageCount  int            `json:"message_count"`
	ToolUsage     map[string]int `json:"tool_usage"`
	FirstActivity *time.Time     `json:"first_activity,omitempty"`
	LastActivity  *time.Time     `json:"last_activity,omitempty"`
	Topics        []string       `json:"topics"`
}

// Observe narrows the activity bounds with ts.
func (p *ProjectStats) Observe(ts time.Time) {
	ts = ts.UTC()
	if p.FirstActivity == nil || ts.Before(*p.FirstActivity) {
		first := ts
		p.FirstActivity = &first
	}
	if p.LastActivity == nil || ts.After(*p.LastActivity) {
		last := ts
		p.LastActivity = &last
	}
}

// Active reports whether the project has sessions and timestamped activity.
func (p *ProjectStats) Active() bool {
	return len(p.Sessions) > 0 && p.FirstActivity != nil && p.LastActivity != nil
}

// AnalysisResult is the aggregate root built once per run.
type AnalysisResult struct {
	TotalSessions  int                      `json:"total_sessions"`
	Projects       map[string]*ProjectStats `json:"projects"`
	ToolUsage      map[string]int           `json:"tool_usage"`
	DailyActivity  map[string]int           `json:"daily_activity"` // YYYY-MM-DD in Location
	HourlyActivity [24]int                  `json:"hourly_activity"`
	Location       string                   `json:"location"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
}

// NewAnalysisResult returns an empty result with all maps allocated.
func NewAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Projects:      make(map[string]*ProjectStats),
		ToolUsage:     make(map[string]int),
		DailyActivity: make(map[string]int),
	}
}

// Project returns the stats for name, inserting an empty record (no
// sessions, zero counts, empty tool map, nil bounds) on first use.
func (r *AnalysisResult) Project(name string) *ProjectStats {
	if p, ok := r.Projects[name]; ok {
		return p
	}
	p := &ProjectStats{
		Name:      name,
		Sessions:  []string{},
		ToolUsage: make(map[string]int),
		Topics:    []string{},
	}
	r.Projects[name] = p
	return p
}

// ActiveProjects counts projects with timestamped activity.
func (r *AnalysisResult) ActiveProjects() int {
	n := 0
	for _, p := range r.Projects {
		if p.Active() {
			n++
		}
	}
	return n
}

// MaxHourly returns the largest hourly bucket.
func (r *AnalysisResult) MaxHourly() int {
	max := 0
	for _, c := range r.HourlyActivity {
		if c > max {
			max = c
		}
	}
	return max
}
