// Package analysis holds the summarization core: pure, deterministic
// transforms from raw upstream payloads to capped, classified summaries.
// Truncation applies to displayed samples only; aggregate counts always
// cover the full input.
package analysis

import "strings"

// Level is the severity assigned to a log line by keyword classification.
type Level string

const (
	LevelFatal   Level = "Fatal"
	LevelError   Level = "Error"
	LevelWarning Level = "Warning"
	LevelInfo    Level = "Info"
	LevelDebug   Level = "Debug"
	LevelUnknown Level = "Unknown"
)

// levelKeywords pins the classification table and its priority order.
// A line matching several keywords resolves to the first matching row.
var levelKeywords = []struct {
	level    Level
	keywords []string
}{
	{LevelFatal, []string{"FATAL", "CRITICAL"}},
	{LevelError, []string{"ERROR", "ERR"}},
	{LevelWarning, []string{"WARN", "WARNING"}},
	{LevelInfo, []string{"INFO"}},
	{LevelDebug, []string{"DEBUG"}},
}

// issueKeywords flag operationally significant lines that carry no
// explicit severity keyword. Matching is a plain boolean OR.
var issueKeywords = []string{
	"exception",
	"panic",
	"crash",
	"failed",
	"timeout",
	"unable to",
	"cannot",
	"refused",
	"denied",
}

// Classify assigns a severity level by case-insensitive substring match.
func Classify(content string) Level {
	upper := strings.ToUpper(content)
	for _, row := range levelKeywords {
		for _, kw := range row.keywords {
			if strings.Contains(upper, kw) {
				return row.level
			}
		}
	}
	return LevelUnknown
}

// PotentialIssue reports whether a line is operationally significant:
// severity Fatal, Error or Warning, or any issue keyword present.
func PotentialIssue(content string) bool {
	switch Classify(content) {
	case LevelFatal, LevelError, LevelWarning:
		return true
	}
	lower := strings.ToLower(content)
	for _, kw := range issueKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
