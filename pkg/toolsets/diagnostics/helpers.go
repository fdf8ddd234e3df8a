package diagnostics

import (
	"encoding/json"
	"sort"

	"github.com/samber/lo"
)

// withJSON appends the structured summary as a JSON block after the
// rendered report.
func withJSON(output string, v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return output
	}
	return output + "\nStructured summary:\n```json\n" + string(data) + "\n```\n"
}

// sortedKeys gives a deterministic iteration order over a count map.
func sortedKeys(m map[string]int) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
