// Package share pulls a streaming link out of text someone shared with the
// app, e.g. "Here's a song for you... https://open.spotify.com/track/...".
package share

import (
	"errors"
	"net/url"
	"strings"
)

// ErrNoShareURL is returned when the text holds no acceptable link.
var ErrNoShareURL = errors.New("no share url found")

const (
	shareScheme = "https"
	shareHost   = "open.spotify.com"

	// trailingPunctuation is dropped from the end of a link that ends a
	// sentence, e.g. "listen to https://.../track/1, it's great".
	trailingPunctuation = ".,;:!?)"
)

// Extract returns the first link in message if it is an https link on the
// streaming service's share host.
func Extract(message string) (string, error) {
	start := strings.Index(message, shareScheme)
	if start < 0 {
		return "", ErrNoShareURL
	}
	fields := strings.Fields(message[start:])
	if len(fields) == 0 {
		return "", ErrNoShareURL
	}

	parsed, err := url.Parse(strings.TrimRight(fields[0], trailingPunctuation))
	if err != nil {
		return "", ErrNoShareURL
	}
	if !IsValid(parsed) {
		return "", ErrNoShareURL
	}
	return parsed.String(), nil
}

// IsValid reports whether u points at the share host over https.
func IsValid(u *url.URL) bool {
	return u != nil && u.Scheme == shareScheme && strings.EqualFold(u.Host, shareHost)
}
