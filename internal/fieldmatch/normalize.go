// Package fieldmatch turns free-form field labels into stable storage keys and
// canonical semantic keys, and gates candidate values by the type a key expects.
package fieldmatch

import (
	"regexp"
	"strings"
)

// Unknown is the label used when nothing better can be derived.
const Unknown = "unknown"

// maxNormalizedLength bounds the normalized label embedded in site keys.
const maxNormalizedLength = 100

var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize canonicalizes a label for use inside a storage key. It is
// case- and punctuation-insensitive so the same field on the same site maps to
// one key across visits.
func Normalize(label string) string {
	if label == "" {
		return Unknown
	}

	normalized := strings.ToLower(label)
	normalized = nonAlphanumericRun.ReplaceAllString(normalized, "_")
	normalized = strings.Trim(normalized, "_")
	if len(normalized) > maxNormalizedLength {
		normalized = strings.TrimRight(normalized[:maxNormalizedLength], "_")
	}

	if normalized == "" {
		return Unknown
	}
	return normalized
}

// SiteKey builds the per-site storage key "<domain>::<normalized-label>::<kind>".
func SiteKey(domain, label, kind string) string {
	return domain + "::" + Normalize(label) + "::" + kind
}
