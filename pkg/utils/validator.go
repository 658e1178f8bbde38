package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ValidateBaseURL checks that raw is an absolute http(s) URL with a host
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https: %s", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host: %s", raw)
	}
	return nil
}

// TrimBaseURL removes trailing slashes so paths can be appended directly
func TrimBaseURL(raw string) string {
	return strings.TrimRight(raw, "/")
}

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// SanitizeString removes control characters from text shown to the user
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}
