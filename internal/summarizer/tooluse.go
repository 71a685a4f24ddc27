package summarizer

import (
	"fmt"
	"path"
	"strings"

	"github.com/sdpower/ccreport-go/internal/i18n"
)

const maxQueryRunes = 30

// ToolSummarizer labels a single tool invocation.
type ToolSummarizer struct {
	labels i18n.Labels
}

func NewToolSummarizer(lang i18n.Language) *ToolSummarizer {
	return &ToolSummarizer{labels: i18n.For(lang)}
}

// Summarize dispatches on the exact tool name. Unknown tools and known tools
// missing their parameter yield false.
func (s *ToolSummarizer) Summarize(name string, input map[string]any) (string, bool) {
	switch name {
	case "Read", "Write", "Edit":
		filePath, ok := stringParam(input, "file_path")
		if !ok {
			return "", false
		}
		return fmt.Sprintf("[%s] %s", name, path.Base(filePath)), true

	case "Bash":
		command, ok := stringParam(input, "command")
		if !ok {
			return "", false
		}
		fields := strings.Fields(command)
		if len(fields) == 0 {
			return "", false
		}
		return fmt.Sprintf(s.labels.BashFmt, name, fields[0]), true

	case "WebSearch":
		query, ok := stringParam(input, "query")
		if !ok {
			return "", false
		}
		if head, cut := truncateRunes(query, maxQueryRunes); cut {
			query = head + ellipsis
		}
		return fmt.Sprintf("[%s] %s", name, query), true

	case "WebFetch":
		url, ok := stringParam(input, "url")
		if !ok {
			return "", false
		}
		host, ok := Host(url)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("[%s] %s", name, host), true
	}
	return "", false
}

// stringParam returns a non-empty string parameter.
func stringParam(input map[string]any, key string) (string, bool) {
	v, ok := input[key].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
