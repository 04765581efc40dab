package llm

import "strings"

// ExtractJSON strips markdown code fences that models often wrap around
// JSON output, returning the bare payload. The input is returned trimmed
// but otherwise untouched when no fence is present.
func ExtractJSON(reply string) string {
	s := strings.TrimSpace(reply)

	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
