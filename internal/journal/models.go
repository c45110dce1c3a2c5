// Package journal implements the journal data store: entries, folders and
// categories held in memory and mirrored to a persistent key-value store.
package journal

import "time"

// Storage keys for the three persisted collections.
const (
	entriesKey    = "journalEntries"
	foldersKey    = "journalFolders"
	categoriesKey = "journalCategories"
)

// Entry is a single journal record.
type Entry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// FolderID references a Folder; empty means the root (unfiled) bucket.
	// The reference is soft: deleting a folder clears this field.
	FolderID string `json:"folderId,omitempty"`
	// Tags are normalized to lowercase and hold no duplicates or blanks.
	Tags []string `json:"tags"`
	// CategoryID references a Category; empty means uncategorized.
	CategoryID string `json:"category,omitempty"`
	// Sentiment is a lexicon-derived score in [-1, 1]; nil when never scored.
	Sentiment *float64 `json:"sentiment,omitempty"`
}

// Folder is a named grouping bucket entries can be filed into.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category is a named, colored classification. Unlike tags it is
// single-valued per entry.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// colorPalette is the fixed rotation new categories draw their color from
// when none is given, indexed by the current category count.
var colorPalette = []string{
	"blue", "emerald", "amber", "rose", "violet", "teal", "orange", "slate",
}
