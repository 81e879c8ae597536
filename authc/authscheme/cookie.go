package authscheme

import (
	"net/http"
	"strings"
)

const cookieHeader = "Cookie"

// CookiePair is a raw name=value pair of the Cookie request header.
// Values are kept as they are sent, quotes included.
type CookiePair struct {
	Name     string
	Value    string
	HasValue bool
}

// String serializes the cookie pair.
func (cp CookiePair) String() string {
	if !cp.HasValue {
		return cp.Name
	}

	return cp.Name + "=" + cp.Value
}

// ParseCookiePairs parses all Cookie header lines in order. Empty segments are skipped.
func ParseCookiePairs(header http.Header) []CookiePair {
	lines := header.Values(cookieHeader)
	if len(lines) == 0 {
		return nil
	}

	var pairs []CookiePair

	for _, line := range lines {
		for part := range strings.SplitSeq(line, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			name, value, hasValue := strings.Cut(part, "=")

			pairs = append(pairs, CookiePair{
				Name:     strings.TrimSpace(name),
				Value:    strings.TrimSpace(value),
				HasValue: hasValue,
			})
		}
	}

	return pairs
}

// SetCookie merges a cookie into the Cookie header. Existing pairs keep their order,
// the first pair with the same name gets the new value and later duplicates are dropped,
// otherwise the pair is appended. All Cookie header lines are folded into one.
func SetCookie(header http.Header, name string, value string) {
	pairs := ParseCookiePairs(header)
	result := make([]CookiePair, 0, len(pairs)+1)
	found := false

	for _, pair := range pairs {
		if pair.Name != name {
			result = append(result, pair)

			continue
		}

		if found {
			continue
		}

		found = true

		result = append(result, CookiePair{
			Name:     name,
			Value:    value,
			HasValue: true,
		})
	}

	if !found {
		result = append(result, CookiePair{
			Name:     name,
			Value:    value,
			HasValue: true,
		})
	}

	header.Set(cookieHeader, joinCookiePairs(result))
}

func joinCookiePairs(pairs []CookiePair) string {
	var sb strings.Builder

	for i, pair := range pairs {
		if i > 0 {
			sb.WriteString("; ")
		}

		sb.WriteString(pair.String())
	}

	return sb.String()
}
