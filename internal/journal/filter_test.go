package journal

import (
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func TestFilterApply(t *testing.T) {
	root := ""
	work := "folder-work"

	entries := []Entry{
		{ID: "trip", Title: "Trip", Content: "packing list", CreatedAt: date("2024-01-05")},
		{ID: "work", Title: "Work", Content: "standup notes", CreatedAt: date("2024-02-10"), FolderID: work},
		{ID: "late", Title: "Late night", Content: "couldn't sleep", CreatedAt: date("2024-03-01").Add(23*time.Hour + 30*time.Minute)},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "no constraints passes everything",
			filter: Filter{},
			want:   []string{"trip", "work", "late"},
		},
		{
			name:   "start date excludes earlier entries",
			filter: Filter{Start: date("2024-02-01")},
			want:   []string{"work", "late"},
		},
		{
			name:   "end date is inclusive of the whole day",
			filter: Filter{End: date("2024-03-01")},
			want:   []string{"trip", "work", "late"},
		},
		{
			name:   "start and end bound a window",
			filter: Filter{Start: date("2024-02-01"), End: date("2024-02-28")},
			want:   []string{"work"},
		},
		{
			name:   "query matches title case-insensitively",
			filter: Filter{Query: "tRiP"},
			want:   []string{"trip"},
		},
		{
			name:   "query matches content",
			filter: Filter{Query: "standup"},
			want:   []string{"work"},
		},
		{
			name:   "whitespace query is ignored",
			filter: Filter{Query: "   "},
			want:   []string{"trip", "work", "late"},
		},
		{
			name:   "root folder selects unfiled entries",
			filter: Filter{Folder: &root},
			want:   []string{"trip", "late"},
		},
		{
			name:   "named folder selects its entries",
			filter: Filter{Folder: &work},
			want:   []string{"work"},
		},
		{
			name:   "all predicates combine with AND",
			filter: Filter{Folder: &root, Query: "sleep", Start: date("2024-02-15")},
			want:   []string{"late"},
		},
		{
			name:   "no matches yields empty non-nil slice",
			filter: Filter{Query: "no such text"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(entries)
			if got == nil {
				t.Fatal("Apply() returned nil slice")
			}
			ids := entryIDs(got)
			if len(ids) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("Apply()[%d] = %q, want %q", i, ids[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	entries := []Entry{
		{ID: "a", Title: "A", CreatedAt: date("2024-01-01")},
		{ID: "b", Title: "B", CreatedAt: date("2024-06-01")},
	}

	_ = Filter{Start: date("2024-05-01")}.Apply(entries)

	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Error("Apply() mutated its input")
	}
}
