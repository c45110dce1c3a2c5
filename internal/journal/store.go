package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/storage"
)

// Options configure a Store.
type Options struct {
	// SentimentEnabled recomputes each entry's sentiment score on save.
	SentimentEnabled bool
	// AutosaveDelay is the quiet window after an entry save before the
	// entries collection is flushed. Defaults to one second.
	AutosaveDelay time.Duration
	Logger        *slog.Logger
}

// Store owns the entry, folder and category collections and mirrors them to
// a persistent key-value store. All operations are safe for concurrent use.
//
// Operations on missing ids are silent no-ops (or a false second return),
// never errors. Flush failures are logged and swallowed: the store favors
// availability over strict durability, matching the original design.
//
// Known limitation: two processes pointed at the same database file are
// unsynchronized and can overwrite each other's last flush.
type Store struct {
	mu sync.RWMutex
	kv storage.KVStore

	entries    []Entry
	folders    []Folder
	categories []Category

	sentimentEnabled bool
	autosaveDelay    time.Duration
	autosaveTimer    *time.Timer
	closed           bool

	logger *slog.Logger
}

// Load reads the three persisted collections and returns a ready store.
// A collection that fails to parse is logged and reset to empty rather than
// failing the load; only an unreadable backing store is fatal.
func Load(ctx context.Context, kv storage.KVStore, opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	delay := opts.AutosaveDelay
	if delay <= 0 {
		delay = time.Second
	}

	s := &Store{
		kv:               kv,
		sentimentEnabled: opts.SentimentEnabled,
		autosaveDelay:    delay,
		logger:           logger,
	}

	entries, err := loadCollection[Entry](ctx, kv, logger, entriesKey)
	if err != nil {
		return nil, err
	}
	s.entries = migrateEntries(entries)

	folders, err := loadCollection[Folder](ctx, kv, logger, foldersKey)
	if err != nil {
		return nil, err
	}
	s.folders = migrateFolders(folders)

	categories, err := loadCollection[Category](ctx, kv, logger, categoriesKey)
	if err != nil {
		return nil, err
	}
	s.categories = migrateCategories(categories)

	logger.Info("journal store loaded",
		"entries", len(s.entries),
		"folders", len(s.folders),
		"categories", len(s.categories),
	)

	return s, nil
}

// loadCollection decodes one persisted collection. A missing key yields an
// empty collection; corrupt JSON is logged and the collection reset to empty.
func loadCollection[T any](ctx context.Context, kv storage.KVStore, logger *slog.Logger, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		logger.Warn("resetting unparseable collection", "key", key, "error", err)
		return nil, nil
	}
	return out, nil
}

// Close cancels any pending autosave and flushes all collections.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.autosaveTimer != nil {
		s.autosaveTimer.Stop()
		s.autosaveTimer = nil
	}

	ctx := context.Background()
	return errors.Join(
		s.flushEntriesLocked(ctx),
		s.flushFoldersLocked(ctx),
		s.flushCategoriesLocked(ctx),
	)
}

// Flush writes all three collections to the backing store immediately.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelAutosaveLocked()
	return errors.Join(
		s.flushEntriesLocked(ctx),
		s.flushFoldersLocked(ctx),
		s.flushCategoriesLocked(ctx),
	)
}

// ---- entries ----

// SaveEntry stores the entry and returns it as stored. An entry with a known
// id replaces the existing record in place; anything else is prepended as
// newest. New entries get a generated id and creation timestamp. When
// sentiment scoring is enabled, the score is recomputed from title and
// content, overwriting whatever the caller supplied.
//
// The write-back of the entries collection is debounced: rapid successive
// saves collapse into one flush after the quiet window.
func (s *Store) SaveEntry(ctx context.Context, e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now
	e.Tags = normalizeTagList(e.Tags)

	if s.sentimentEnabled {
		score := AnalyzeSentiment(e.Title + " " + e.Content)
		e.Sentiment = &score
	}

	replaced := false
	for i := range s.entries {
		if s.entries[i].ID == e.ID {
			s.entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append([]Entry{e}, s.entries...)
	}

	s.scheduleAutosaveLocked()
	return cloneEntry(e)
}

// DeleteEntry removes the entry with the given id; missing ids are a no-op.
func (s *Store) DeleteEntry(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept

	s.persistEntriesLocked(ctx)
}

// Entry returns the entry with the given id.
func (s *Store) Entry(id string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.ID == id {
			return cloneEntry(e), true
		}
	}
	return Entry{}, false
}

// Entries returns all entries, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneEntries(s.entries)
}

// FilteredEntries returns the entries passing the filter, in stored order.
func (s *Store) FilteredEntries(f Filter) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneEntries(f.Apply(s.entries))
}

// MoveEntry sets the entry's folder; the empty id means the root bucket.
// The target folder is not validated: moving to an unknown folder id leaves
// an orphaned (tolerated) reference.
func (s *Store) MoveEntry(ctx context.Context, entryID, folderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entryID {
			s.entries[i].FolderID = folderID
			break
		}
	}

	s.persistEntriesLocked(ctx)
}

// EntriesByFolder returns entries filed under the given folder id; the empty
// id selects the root (unfiled) bucket.
func (s *Store) EntriesByFolder(folderID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.FolderID == folderID {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// ---- folders ----

// CreateFolder creates a folder with a fresh id and prepends it as newest.
func (s *Store) CreateFolder(ctx context.Context, name string) Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := Folder{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	s.folders = append([]Folder{folder}, s.folders...)

	s.persistFoldersLocked(ctx)
	return folder
}

// DeleteFolder removes the folder and detaches every entry filed under it
// back to the root bucket. Folder removal and entry detachment happen under
// one lock, so observers never see one without the other.
func (s *Store) DeleteFolder(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept

	for i := range s.entries {
		if s.entries[i].FolderID == id {
			s.entries[i].FolderID = ""
		}
	}

	s.persistFoldersLocked(ctx)
	s.persistEntriesLocked(ctx)
}

// RenameFolder replaces the folder's name; missing ids are a no-op.
func (s *Store) RenameFolder(ctx context.Context, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders[i].Name = name
			break
		}
	}

	s.persistFoldersLocked(ctx)
}

// Folders returns all folders, newest first.
func (s *Store) Folders() []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Folder, len(s.folders))
	copy(out, s.folders)
	return out
}

// ---- tags ----

// AddTag attaches a tag to the entry. Tags are normalized to trimmed
// lowercase and held with set semantics; blank tags and missing entries are
// no-ops.
func (s *Store) AddTag(ctx context.Context, entryID, tag string) {
	normalized := NormalizeTag(tag)
	if normalized == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != entryID {
			continue
		}
		for _, existing := range s.entries[i].Tags {
			if existing == normalized {
				return
			}
		}
		s.entries[i].Tags = append(s.entries[i].Tags, normalized)
		s.persistEntriesLocked(ctx)
		return
	}
}

// RemoveTag detaches a tag from the entry; missing entries or tags are
// no-ops.
func (s *Store) RemoveTag(ctx context.Context, entryID, tag string) {
	normalized := NormalizeTag(tag)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID != entryID {
			continue
		}
		kept := s.entries[i].Tags[:0]
		for _, existing := range s.entries[i].Tags {
			if existing != normalized {
				kept = append(kept, existing)
			}
		}
		s.entries[i].Tags = kept
		s.persistEntriesLocked(ctx)
		return
	}
}

// EntriesByTag returns the entries carrying the tag (after normalization).
func (s *Store) EntriesByTag(tag string) []Entry {
	normalized := NormalizeTag(tag)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		for _, existing := range e.Tags {
			if existing == normalized {
				out = append(out, cloneEntry(e))
				break
			}
		}
	}
	return out
}

// AllTags returns the sorted deduplicated union of tags across all entries.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, e := range s.entries {
		for _, tag := range e.Tags {
			seen[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ---- categories ----

// CreateCategory creates a category with a fresh id and prepends it as
// newest. When color is empty, the next color from the fixed palette is
// assigned, rotating by the current category count.
func (s *Store) CreateCategory(ctx context.Context, name, color string) Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	if color == "" {
		color = colorPalette[len(s.categories)%len(colorPalette)]
	}

	category := Category{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}
	s.categories = append([]Category{category}, s.categories...)

	s.persistCategoriesLocked(ctx)
	return category
}

// DeleteCategory removes the category and detaches every entry referencing
// it, under one lock.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept

	for i := range s.entries {
		if s.entries[i].CategoryID == id {
			s.entries[i].CategoryID = ""
		}
	}

	s.persistCategoriesLocked(ctx)
	s.persistEntriesLocked(ctx)
}

// RenameCategory replaces the category's name; missing ids are a no-op.
func (s *Store) RenameCategory(ctx context.Context, id, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			break
		}
	}

	s.persistCategoriesLocked(ctx)
}

// UpdateCategoryColor replaces the category's color; missing ids are a
// no-op.
func (s *Store) UpdateCategoryColor(ctx context.Context, id, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Color = color
			break
		}
	}

	s.persistCategoriesLocked(ctx)
}

// SetEntryCategory assigns the entry's category; the empty id clears it.
// Like MoveEntry, the target is not validated.
func (s *Store) SetEntryCategory(ctx context.Context, entryID, categoryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ID == entryID {
			s.entries[i].CategoryID = categoryID
			break
		}
	}

	s.persistEntriesLocked(ctx)
}

// Categories returns all categories, newest first.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// EntriesByCategory returns entries assigned to the given category id.
func (s *Store) EntriesByCategory(id string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.CategoryID == id {
			out = append(out, cloneEntry(e))
		}
	}
	return out
}

// ---- persistence ----

// scheduleAutosaveLocked (re)schedules the single pending entries flush.
// Each call supersedes the previous one, so only the last save inside a
// quiet window is written.
func (s *Store) scheduleAutosaveLocked() {
	if s.closed {
		return
	}
	s.cancelAutosaveLocked()
	s.autosaveTimer = time.AfterFunc(s.autosaveDelay, s.autosaveFlush)
}

func (s *Store) cancelAutosaveLocked() {
	if s.autosaveTimer != nil {
		s.autosaveTimer.Stop()
		s.autosaveTimer = nil
	}
}

func (s *Store) autosaveFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.autosaveTimer = nil
	if s.closed {
		return
	}
	if err := s.flushEntriesLocked(context.Background()); err != nil {
		s.logger.Error("autosave flush failed", "error", err)
		return
	}
	s.logger.Debug("autosave flushed entries", "count", len(s.entries))
}

// persistEntriesLocked writes the entries collection through immediately,
// superseding any pending autosave. Failures are logged, not surfaced.
func (s *Store) persistEntriesLocked(ctx context.Context) {
	s.cancelAutosaveLocked()
	if err := s.flushEntriesLocked(ctx); err != nil {
		s.logger.Error("failed to persist entries", "error", err)
	}
}

func (s *Store) persistFoldersLocked(ctx context.Context) {
	if err := s.flushFoldersLocked(ctx); err != nil {
		s.logger.Error("failed to persist folders", "error", err)
	}
}

func (s *Store) persistCategoriesLocked(ctx context.Context) {
	if err := s.flushCategoriesLocked(ctx); err != nil {
		s.logger.Error("failed to persist categories", "error", err)
	}
}

func (s *Store) flushEntriesLocked(ctx context.Context) error {
	return s.flushLocked(ctx, entriesKey, s.entries)
}

func (s *Store) flushFoldersLocked(ctx context.Context) error {
	return s.flushLocked(ctx, foldersKey, s.folders)
}

func (s *Store) flushCategoriesLocked(ctx context.Context) error {
	return s.flushLocked(ctx, categoriesKey, s.categories)
}

// flushLocked serializes the whole collection and overwrites its key.
// Persistence is whole-collection, not an incremental patch.
func (s *Store) flushLocked(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// ---- helpers ----

func normalizeTagList(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		normalized := NormalizeTag(tag)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func cloneEntry(e Entry) Entry {
	tags := make([]string, len(e.Tags))
	copy(tags, e.Tags)
	e.Tags = tags
	if e.Sentiment != nil {
		score := *e.Sentiment
		e.Sentiment = &score
	}
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = cloneEntry(e)
	}
	return out
}
