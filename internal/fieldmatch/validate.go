package fieldmatch

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`(?i)^(https?://|www\.)`)
	embeddedWWW    = regexp.MustCompile(`(?i)www\.`)
	emailPattern   = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^[\d\s()+-]{7,}$`)
	longDigitsRun  = regexp.MustCompile(`^[\d\s()+-]{10,}$`)
	numberPrefix   = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?|^[+-]?Infinity`)
	booleanPattern = regexp.MustCompile(`(?i)^(yes|no|true|false|1|0)$`)
)

// maxNameTokens is the most whitespace-separated words a name value may have.
const maxNameTokens = 5

// IsValid reports whether value is an acceptable fill for a field with the
// given canonical key. An empty key accepts any non-blank value.
func IsValid(value string, key Key) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	if key == "" {
		return true
	}

	switch TypeOf(key) {
	case TypeURL:
		return IsURL(v)
	case TypeEmail:
		return IsEmail(v)
	case TypePhone:
		return IsPhone(v)
	case TypeName:
		return isName(v)
	case TypeNumber:
		return numberPrefix.MatchString(v)
	case TypeBoolean:
		return booleanPattern.MatchString(v)
	default:
		return true
	}
}

// IsURL reports whether v starts with http(s):// or www.
func IsURL(v string) bool {
	return urlPattern.MatchString(strings.TrimSpace(v))
}

// IsEmail reports whether v is a single local@domain.tld address.
func IsEmail(v string) bool {
	return emailPattern.MatchString(strings.TrimSpace(v))
}

// IsPhone reports whether v, with whitespace removed, has at least seven
// characters drawn from digits, parentheses, plus and minus.
func IsPhone(v string) bool {
	return phonePattern.MatchString(strings.Join(strings.Fields(v), ""))
}

func isName(v string) bool {
	if IsURL(v) || embeddedWWW.MatchString(v) {
		return false
	}
	if IsEmail(v) || longDigitsRun.MatchString(v) {
		return false
	}
	words := strings.Fields(v)
	return len(words) >= 1 && len(words) <= maxNameTokens
}
