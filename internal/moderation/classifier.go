// Package moderation decides whether user-submitted comments may be shown
// publicly, based on a configured banned-word list.
package moderation

import (
	"strings"
)

// Decision is the outcome of classifying a piece of content
type Decision string

const (
	// Accepted means the content may be published
	Accepted Decision = "accepted"
	// Rejected means the content contains banned vocabulary
	Rejected Decision = "rejected"
)

// Classify scans content for banned vocabulary. Matching is case-insensitive
// and substring-based: any banned token occurring anywhere inside the
// lowercased content rejects it, even in the middle of a longer word.
//
// bannedWords is loosely typed because it comes from live configuration that
// may be malformed. Anything that does not coerce to a list of strings is
// treated as an empty list, so content is accepted (fail open): moderation
// misconfiguration must not block publication.
func Classify(content string, bannedWords any) Decision {
	words, _ := coerceWordList(bannedWords)

	lowered := strings.ToLower(content)
	for _, w := range words {
		if w == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(w)) {
			return Rejected
		}
	}

	return Accepted
}

// coerceWordList converts a configuration value into a banned-word list. It
// reports false when the value was malformed and had to be discarded.
func coerceWordList(v any) ([]string, bool) {
	switch words := v.(type) {
	case nil:
		return nil, true
	case []string:
		return words, true
	case []any:
		out := make([]string, 0, len(words))
		for _, w := range words {
			s, ok := w.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
