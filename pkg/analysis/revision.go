package analysis

import "strings"

// Signature verification outcomes derived from the upstream signature
// info text.
const (
	SignatureAbsent  = "Absent"
	SignatureValid   = "Valid"
	SignatureInvalid = "Invalid"
	SignaturePresent = "Present"
)

// RevisionSummary condenses commit metadata for one revision.
type RevisionSummary struct {
	Revision      string   `json:"revision"`
	ShortRevision string   `json:"shortRevision"`
	Author        string   `json:"author,omitempty"`
	Date          string   `json:"date,omitempty"`
	Message       string   `json:"message,omitempty"`
	TagCount      int      `json:"tagCount"`
	Tags          []string `json:"tags,omitempty"`
	Signature     string   `json:"signature"`
}

// SummarizeRevision keeps only the first line of the commit message and
// classifies the signature info text.
func SummarizeRevision(revision, author, date, message string, tags []string, signatureInfo string) RevisionSummary {
	return RevisionSummary{
		Revision:      revision,
		ShortRevision: ShortRevision(revision),
		Author:        author,
		Date:          date,
		Message:       firstLine(message),
		TagCount:      len(tags),
		Tags:          tags,
		Signature:     classifySignature(signatureInfo),
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}

func classifySignature(info string) string {
	if info == "" {
		return SignatureAbsent
	}
	lower := strings.ToLower(info)
	switch {
	case strings.Contains(lower, "good signature"):
		return SignatureValid
	case strings.Contains(lower, "bad signature"), strings.Contains(lower, "invalid"):
		return SignatureInvalid
	default:
		return SignaturePresent
	}
}
