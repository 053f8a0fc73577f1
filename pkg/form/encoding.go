package form

import "strings"

// defaultSeparator joins multi-value encodings before being swapped for a
// comma. A title containing a comma is therefore indistinguishable from two
// titles once encoded; the output is not meant to be split back.
const defaultSeparator = "␞"

// Merge combines encoded row maps into one submission payload. Later maps win
// on key collisions, so callers must pass rows in declaration order. The result
// is never nil.
func Merge(maps ...map[string]string) map[string]string {
	size := 0
	for _, m := range maps {
		size += len(m)
	}
	out := make(map[string]string, size)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}

func joinCSV(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	joined := strings.Join(parts, defaultSeparator)
	return strings.ReplaceAll(joined, defaultSeparator, ",")
}
