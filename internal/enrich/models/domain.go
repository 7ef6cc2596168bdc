package models

import (
	"net/url"
	"strings"
)

// CanonicalDomain derives the bare hostname from a website string: lowercase,
// scheme stripped, leading "www." stripped. Returns "" when the input does not
// yield a plausible domain (no dot).
func CanonicalDomain(website string) string {
	trimmed := strings.TrimSpace(website)
	if trimmed == "" {
		return ""
	}
	switch strings.ToLower(trimmed) {
	case "nan", "none", "null":
		return ""
	}

	raw := trimmed
	if !strings.HasPrefix(strings.ToLower(raw), "http://") && !strings.HasPrefix(strings.ToLower(raw), "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := parsed.Hostname()
	if host == "" {
		// url.Parse puts bare "host/path" strings into Path when the scheme
		// prefix was malformed.
		host = strings.SplitN(parsed.Path, "/", 2)[0]
	}

	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	if !strings.Contains(host, ".") {
		return ""
	}
	return host
}

// NormalizeURL returns the website string with an https scheme prepended when
// no scheme is present. Used by the crawler, which works on full URLs rather
// than bare domains.
func NormalizeURL(website string) string {
	trimmed := strings.TrimSpace(website)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch lower {
	case "nan", "none", "null":
		return ""
	}
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
