package util

import "strings"

// FirstName returns the first whitespace-delimited token of a full name.
// Empty or all-whitespace input yields "".
func FirstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
