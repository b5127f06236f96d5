package store

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// ErrInvalidURL is returned when a bookmark URL fails syntactic validation.
var ErrInvalidURL = errors.New("invalid URL format")

// URLPatternRe matches URLs acceptable for storage: http or https scheme,
// anything after the scheme separator.
var URLPatternRe = regexp.MustCompile(`^(http|https)://.*`)

// ValidateURL checks that raw matches URLPatternRe and parses as a URL.
// The check is purely syntactic: no DNS lookup, no reachability probe.
func ValidateURL(raw string) error {
	if !URLPatternRe.MatchString(raw) {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, raw)
	}
	return nil
}
