package journal

import "strings"

// The persisted format has grown fields over time (folders, sentiment, tags,
// categories) without a schema version. Instead of defaulting fields at every
// read site, each collection passes through an ordered list of migration
// functions once at load time.

var entryMigrations = []func([]Entry) []Entry{
	dropInvalidEntries,
	defaultEntryFields,
	normalizeEntryTags,
	clampEntrySentiment,
}

var folderMigrations = []func([]Folder) []Folder{
	dropInvalidFolders,
}

var categoryMigrations = []func([]Category) []Category{
	dropInvalidCategories,
}

func migrateEntries(entries []Entry) []Entry {
	for _, m := range entryMigrations {
		entries = m(entries)
	}
	return entries
}

func migrateFolders(folders []Folder) []Folder {
	for _, m := range folderMigrations {
		folders = m(folders)
	}
	return folders
}

func migrateCategories(categories []Category) []Category {
	for _, m := range categoryMigrations {
		categories = m(categories)
	}
	return categories
}

// dropInvalidEntries removes records without an id.
func dropInvalidEntries(entries []Entry) []Entry {
	out := entries[:0]
	for _, e := range entries {
		if e.ID == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// defaultEntryFields fills fields older persisted variants never wrote.
func defaultEntryFields(entries []Entry) []Entry {
	for i := range entries {
		if entries[i].Tags == nil {
			entries[i].Tags = []string{}
		}
	}
	return entries
}

// normalizeEntryTags lowercases, trims and deduplicates each entry's tags.
func normalizeEntryTags(entries []Entry) []Entry {
	for i := range entries {
		seen := make(map[string]struct{}, len(entries[i].Tags))
		tags := entries[i].Tags[:0]
		for _, tag := range entries[i].Tags {
			normalized := NormalizeTag(tag)
			if normalized == "" {
				continue
			}
			if _, dup := seen[normalized]; dup {
				continue
			}
			seen[normalized] = struct{}{}
			tags = append(tags, normalized)
		}
		entries[i].Tags = tags
	}
	return entries
}

// clampEntrySentiment forces persisted scores back into [-1, 1].
func clampEntrySentiment(entries []Entry) []Entry {
	for i := range entries {
		if entries[i].Sentiment == nil {
			continue
		}
		clamped := clamp(*entries[i].Sentiment, -1, 1)
		entries[i].Sentiment = &clamped
	}
	return entries
}

func dropInvalidFolders(folders []Folder) []Folder {
	out := folders[:0]
	for _, f := range folders {
		if f.ID == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

func dropInvalidCategories(categories []Category) []Category {
	out := categories[:0]
	for _, c := range categories {
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// NormalizeTag maps a raw tag to its canonical form: trimmed and lowercased.
// An empty result means the tag is not storable.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
