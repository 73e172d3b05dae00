package domain

import "strings"

// NormalizeName derives a storage key from a display name: lower-cased with
// every space replaced by an underscore. Applied to model names and artifact
// file names before they become storage path segments.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
