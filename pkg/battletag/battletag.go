// Package battletag validates and converts Battle.net battletags between the
// display format (Player#1234) and the API format (Player-1234).
package battletag

import (
	"errors"
	"strings"
)

// ErrInvalidBattletag is returned when a battletag can't be parsed.
var ErrInvalidBattletag = errors.New("invalid battletag, expected Name#1234")

// Normalize converts a battletag to the canonical API format (Name-1234).
// Both the display and the API formats are accepted, surrounding whitespace
// is ignored.
func Normalize(raw string) (string, error) {
	tag := strings.TrimSpace(raw)

	if strings.Contains(tag, "#") {
		parts := strings.Split(tag, "#")
		if len(parts) != 2 || parts[0] == "" || !isDigits(parts[1]) {
			return "", ErrInvalidBattletag
		}
		return parts[0] + "-" + parts[1], nil
	}

	// API format. The discriminator sits after the last dash, since the
	// account name itself may contain dashes.
	idx := strings.LastIndex(tag, "-")
	if idx <= 0 || !isDigits(tag[idx+1:]) {
		return "", ErrInvalidBattletag
	}

	return tag, nil
}

// ToDisplay converts a canonical battletag back to the display format
// (Name#1234). Strings that aren't canonical battletags pass through
// unchanged.
func ToDisplay(canonical string) string {
	if strings.Contains(canonical, "#") {
		return canonical
	}

	idx := strings.LastIndex(canonical, "-")
	if idx <= 0 || !isDigits(canonical[idx+1:]) {
		return canonical
	}

	return canonical[:idx] + "#" + canonical[idx+1:]
}

// isDigits reports whether s is a non-empty string of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
