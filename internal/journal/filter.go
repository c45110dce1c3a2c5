package journal

import (
	"strings"
	"time"
)

// Filter selects a view over the entry collection. Zero-valued fields mean
// "no constraint": a nil Folder passes entries from every folder, while a
// pointer to the empty string selects the root (unfiled) bucket.
type Filter struct {
	// Folder constrains entries to an exact folder id; see above for nil
	// versus pointer-to-empty.
	Folder *string
	// Query is matched case-insensitively as a substring of title or
	// content. Whitespace-only queries are ignored.
	Query string
	// Start keeps entries created on or after the start of this day.
	Start time.Time
	// End keeps entries created on or before the end of this day.
	End time.Time
}

// Apply returns the entries passing every predicate of the filter, in their
// stored order. Predicates are applied in a fixed order: folder membership,
// text query, start date, end date.
func (f Filter) Apply(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	var start, end time.Time
	if !f.Start.IsZero() {
		start = startOfDay(f.Start)
	}
	if !f.End.IsZero() {
		end = endOfDay(f.End)
	}

	for _, e := range entries {
		if f.Folder != nil && e.FolderID != *f.Folder {
			continue
		}
		if query != "" && !matchesQuery(e, query) {
			continue
		}
		if !start.IsZero() && e.CreatedAt.Before(start) {
			continue
		}
		if !end.IsZero() && e.CreatedAt.After(end) {
			continue
		}
		out = append(out, e)
	}

	return out
}

func matchesQuery(e Entry, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(e.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(e.Content), lowerQuery)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
