package labels

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	asteriskRun     = regexp.MustCompile(`\*+`)
	trailingColon   = regexp.MustCompile(`:\s*$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	camelBoundary   = regexp.MustCompile(`([a-z])([A-Z])`)
	separatorRun    = regexp.MustCompile(`[-_]+`)
	separatorChar   = regexp.MustCompile(`[-_]`)
	attrPrefix      = regexp.MustCompile(`(?i)^(input|field|txt|text|frm|form)\s*`)
	dataAttrPrefix  = regexp.MustCompile(`(?i)^(input|field|txt|text)\s*`)
	actionWord      = regexp.MustCompile(`(?i)^(submit|cancel|reset|save|next|back|previous)$`)
	domainLabelTerm = regexp.MustCompile(`(?i)name|email|phone|address|city|state|zip|country|date|time|url|link`)
)

// CleanLabelText strips required-field asterisks and a trailing colon, then
// collapses whitespace.
func CleanLabelText(text string) string {
	text = asteriskRun.ReplaceAllString(text, "")
	text = trailingColon.ReplaceAllString(text, "")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// CleanAttributeName turns an identifier such as "txtFirst_name" into words.
func CleanAttributeName(name string) string {
	name = camelBoundary.ReplaceAllString(name, "$1 $2")
	name = separatorRun.ReplaceAllString(name, " ")
	name = attrPrefix.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// cleanDataAttr turns a test hook such as "input-first-name" into words.
func cleanDataAttr(value string) string {
	value = separatorChar.ReplaceAllString(value, " ")
	value = dataAttrPrefix.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

// LooksLikeLabel reports whether short free text plausibly names a field.
func LooksLikeLabel(text string) bool {
	n := length(text)
	if n < 2 || n > 100 {
		return false
	}
	if actionWord.MatchString(text) {
		return false
	}
	if domainLabelTerm.MatchString(text) {
		return true
	}
	words := len(whitespaceRun.Split(text, -1))
	return words >= 1 && words <= 6
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
