package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/shubhamkumaar/socioBuy-backend/internal/graph"
)

// ErrNotFound signals that a lookup matched no node. Callers translate it
// into their own error taxonomy.
var ErrNotFound = errors.New("no matching record")

// Repository encapsulates all graph persistence and traversal operations.
type Repository struct {
	client graph.Querier
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Querier) *Repository {
	return &Repository{client: client}
}

// timeLayout keeps the fractional seconds fixed width. Stored timestamps are
// compared as strings in Cypher (ORDER BY, revocation expiry checks), and
// RFC3339Nano trims trailing zeros, which breaks the lexicographic/temporal
// correspondence at sub-second resolution.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func toFloat64(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func toBool(val any) bool {
	b, ok := val.(bool)
	return ok && b
}

func toTime(val any) time.Time {
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		if v == "" {
			return time.Time{}
		}
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func toStringSlice(val any) []string {
	raw, ok := val.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s := toString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
