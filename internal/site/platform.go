package site

import (
	"net/url"
	"strings"
)

// Platform represents a known applicant tracking system.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the applicant tracking system from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.Contains(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.Contains(host, "lever.co"):
		return PlatformLever
	case strings.Contains(host, "workday.com") || strings.Contains(host, "myworkdayjobs.com"):
		return PlatformWorkday
	}
	return PlatformUnknown
}

// CompanySlug returns the company identifier an ATS embeds in its URLs:
// the first path segment on Greenhouse and Lever, the leftmost host label on
// Workday. It returns "" for other platforms.
func CompanySlug(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	switch DetectPlatform(urlStr) {
	case PlatformGreenhouse, PlatformLever:
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(segments) > 0 && segments[0] != "" && segments[0] != "embed" {
			return segments[0]
		}
		if q := parsed.Query().Get("for"); q != "" {
			return q
		}
	case PlatformWorkday:
		host := parsed.Hostname()
		if i := strings.Index(host, "."); i > 0 {
			return host[:i]
		}
	}
	return ""
}
