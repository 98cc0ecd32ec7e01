package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/picta/internal/domain"
)

var bucketHistory = []byte("history")

// DefaultHistoryLimit bounds the store when no limit is given
const DefaultHistoryLimit = 50

// HistoryStore implements domain.HistoryStore using BoltDB.
// All entries are mirrored in memory; the database is write-through.
type HistoryStore struct {
	db    *bolt.DB
	mu    sync.RWMutex
	cache map[string]domain.HistoryEntry // keyed by normalized query
	limit int
	now   func() time.Time
}

// Option configures a HistoryStore
type Option func(*HistoryStore)

// WithClock overrides the time source used for LastUsed
func WithClock(now func() time.Time) Option {
	return func(s *HistoryStore) {
		s.now = now
	}
}

// NewHistoryStore opens the history database at path.
// An empty path gives a memory-only store. limit <= 0 uses DefaultHistoryLimit.
func NewHistoryStore(path string, limit int, opts ...Option) (*HistoryStore, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	s := &HistoryStore{
		cache: make(map[string]domain.HistoryEntry),
		limit: limit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if path == "" {
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketHistory)
		if err != nil {
			return err
		}
		var corrupt [][]byte
		err = b.ForEach(func(k, v []byte) error {
			var entry domain.HistoryEntry
			if json.Unmarshal(v, &entry) != nil {
				corrupt = append(corrupt, append([]byte(nil), k...))
				return nil
			}
			s.cache[string(k)] = entry
			return nil
		})
		if err != nil {
			return err
		}
		// Undecodable rows are dropped rather than failing startup
		for _, k := range corrupt {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	return s, nil
}

func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// normalizeQuery folds case and whitespace so "Cats" and " cats" share an entry
func normalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Add records query, bumping its count and recency, then prunes to the limit.
func (s *HistoryStore) Add(query string) error {
	key := normalizeQuery(query)
	if key == "" {
		return domain.ErrEmptyQuery
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.cache[key]
	entry.Query = strings.TrimSpace(query)
	entry.Count++
	entry.LastUsed = s.now()
	s.cache[key] = entry

	evicted := s.pruneLocked()

	if s.db == nil {
		return nil // Memory-only mode
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketHistory)
		if err := b.Put([]byte(key), data); err != nil {
			return err
		}
		for _, k := range evicted {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
		}
		return nil
	})
}

// pruneLocked drops the least recently used entries beyond the limit
// and returns their keys. Callers hold s.mu.
func (s *HistoryStore) pruneLocked() []string {
	if len(s.cache) <= s.limit {
		return nil
	}
	keys := s.sortedKeysLocked()
	evicted := keys[s.limit:]
	for _, k := range evicted {
		delete(s.cache, k)
	}
	return evicted
}

// sortedKeysLocked orders keys most recent first, then by count, then alphabetically
func (s *HistoryStore) sortedKeysLocked() []string {
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := s.cache[keys[i]], s.cache[keys[j]]
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Recent returns up to limit entries, most recently used first (limit <= 0 = all)
func (s *HistoryStore) Recent(limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := s.sortedKeysLocked()
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}
	entries := make([]domain.HistoryEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, s.cache[k])
	}
	return entries, nil
}

// Clear removes every entry
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]domain.HistoryEntry)
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketHistory); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketHistory)
		return err
	})
}

var _ domain.HistoryStore = (*HistoryStore)(nil)
