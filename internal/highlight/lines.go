package highlight

import "strings"

// SplitLines splits text on "\n" and "\r\n" boundaries, dropping the separators.
// The empty string yields a single empty line so that absent content is still
// compared and rendered as one line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{""}
	}
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines)-1; i++ {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}
