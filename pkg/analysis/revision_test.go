package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeRevisionFirstLine(t *testing.T) {
	summary := SummarizeRevision(
		"0123456789abcdef", "alice <alice@example.com>", "2026-08-27T12:00:00Z",
		"fix: handle nil destination\n\nLonger body that should not appear.",
		nil, "",
	)

	assert.Equal(t, "fix: handle nil destination", summary.Message)
	assert.Equal(t, "01234567", summary.ShortRevision)
	assert.Equal(t, "0123456789abcdef", summary.Revision)
}

func TestSummarizeRevisionTags(t *testing.T) {
	summary := SummarizeRevision("abc", "", "", "", []string{"v1.2.0", "stable"}, "")

	assert.Equal(t, 2, summary.TagCount)
	assert.Equal(t, []string{"v1.2.0", "stable"}, summary.Tags)
}

func TestClassifySignature(t *testing.T) {
	tests := []struct {
		name string
		info string
		want string
	}{
		{"absent", "", SignatureAbsent},
		{"valid", `gpg: Good signature from "Release Bot"`, SignatureValid},
		{"bad", "gpg: BAD signature from somebody", SignatureInvalid},
		{"invalid keyword", "signature invalid: key expired", SignatureInvalid},
		{"present but unverified", "gpg: Signature made Thu 27 Aug", SignaturePresent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySignature(tt.info))
		})
	}
}
