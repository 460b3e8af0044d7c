package resource

import "strings"

// Scheme names a resource backend. It appears as the "<scheme>:" prefix of
// a location string.
type Scheme string

const (
	SchemeFile   Scheme = "file"
	SchemeBundle Scheme = "bundle"
	SchemeHTTP   Scheme = "http"
	SchemeHTTPS  Scheme = "https"
)

// Prefix returns the scheme's location prefix, e.g. "file:".
func (s Scheme) Prefix() string {
	return string(s) + ":"
}

// SplitScheme splits a location into its scheme and the remainder after the
// colon. Locations without a colon have no scheme; ok is false and rest is
// the whole location.
func SplitScheme(location string) (scheme Scheme, rest string, ok bool) {
	i := strings.Index(location, ":")
	if i <= 0 {
		return "", location, false
	}
	return Scheme(strings.ToLower(location[:i])), location[i+1:], true
}
