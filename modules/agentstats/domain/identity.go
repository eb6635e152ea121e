package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedIdentity marks an Agent cell that does not match the
// "Name (12345678)" shape. Row-scoped: the caller skips the row.
var ErrMalformedIdentity = errors.New("malformed agent identity")

// Source shape: display name, whitespace, parenthesized digit run.
var identityPattern = regexp.MustCompile(`^(.*)\s+\((\d+)\)\s*$`)

// Identity is the structured form of the composite Agent field.
type Identity struct {
	UserID int64
	Name   string
}

// ParseAgentIdentity extracts the numeric user id and display name from
// the composite source string, e.g. "Bajram Krushevci (10190035)".
// Internal whitespace in the name is preserved; surrounding whitespace
// is not significant.
func ParseAgentIdentity(raw string) (Identity, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Identity{}, fmt.Errorf("%w: empty value", ErrMalformedIdentity)
	}

	m := identityPattern.FindStringSubmatch(s)
	if m == nil {
		return Identity{}, fmt.Errorf("%w: %q", ErrMalformedIdentity, raw)
	}

	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: user id %q: %v", ErrMalformedIdentity, m[2], err)
	}

	return Identity{UserID: id, Name: strings.TrimSpace(m[1])}, nil
}
