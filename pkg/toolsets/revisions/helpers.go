package revisions

import "encoding/json"

// withJSON appends the structured summary as a JSON block after the
// rendered report.
func withJSON(output string, v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return output
	}
	return output + "\nStructured summary:\n```json\n" + string(data) + "\n```\n"
}
