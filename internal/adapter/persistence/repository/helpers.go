package repository

import (
	"errors"
	"time"
)

// ErrMalformedDocument marks a stored item that fails boundary validation.
// Reads that meet one fail instead of passing it on.
var ErrMalformedDocument = errors.New("malformed document")

// timestampLayout is fixed width so that lexical order equals time order,
// which the created_at range conditions rely on.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampLayout, s)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
