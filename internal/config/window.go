package config

import (
	"time"

	"github.com/sdpower/ccreport-go/internal/types"
)

const dateLayout = "2006-01-02"

// Window is an inclusive UTC time range.
type Window struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow picks explicit dates when both are given (start of the
// first day to the last second of the second, UTC), otherwise the trailing
// days ending at now.
func ResolveWindow(from, to string, days int, now time.Time) (Window, error) {
	if from != "" || to != "" {
		if from == "" || to == "" {
			return Window{}, types.ValidationError{Field: "from/to", Message: "both --from and --to are required"}
		}
		start, err := time.ParseInLocation(dateLayout, from, time.UTC)
		if err != nil {
			return Window{}, types.ValidationError{Field: "from", Message: "use YYYY-MM-DD"}
		}
		end, err := time.ParseInLocation(dateLayout, to, time.UTC)
		if err != nil {
			return Window{}, types.ValidationError{Field: "to", Message: "use YYYY-MM-DD"}
		}
		end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		if end.Before(start) {
			return Window{}, types.ValidationError{Field: "from/to", Message: "--from is after --to"}
		}
		return Window{Start: start, End: end}, nil
	}

	if days <= 0 {
		return Window{}, types.ValidationError{Field: "days", Message: "must be a positive number of days"}
	}
	end := now.UTC()
	return Window{Start: end.AddDate(0, 0, -days), End: end}, nil
}
