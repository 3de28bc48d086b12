// Package store persists user state (progress, favorites, identity) in a
// local BoltDB file. The application core touches it only through this
// load/save boundary and keeps working if persistence is unavailable.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quietloop/sona/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketProgress  = []byte("progress")
	bucketFavorites = []byte("favorites")
	bucketAccount   = []byte("account")
)

// Favorite kinds, used as keys within the favorites bucket
const (
	FavoriteCourses = "courses"
	FavoriteTracks  = "tracks"
)

// UserStore persists user state using BoltDB with an in-memory cache for
// hot-path reads. An empty data dir gives memory-only mode (no persistence).
type UserStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	cache map[string][]byte
}

// NewUserStore opens (or creates) the user-state database under dataDir
func NewUserStore(dataDir string) (*UserStore, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &UserStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "sona.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketProgress, bucketFavorites, bucketAccount} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &UserStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close closes the underlying database
func (s *UserStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *UserStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *UserStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *UserStore) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Progress ===

// GetProgress returns the persisted completion sets, keyed by course ID
func (s *UserStore) GetProgress() (map[string][]string, bool) {
	var entries map[string][]string
	ok := s.get(bucketProgress, "ledger", &entries)
	return entries, ok
}

// SaveProgress persists the completion sets
func (s *UserStore) SaveProgress(entries map[string][]string) error {
	return s.set(bucketProgress, "ledger", entries)
}

// === Favorites ===

// GetFavorites returns the persisted favorite IDs for a kind
func (s *UserStore) GetFavorites(kind string) ([]string, bool) {
	var ids []string
	ok := s.get(bucketFavorites, kind, &ids)
	return ids, ok
}

// SaveFavorites persists the favorite IDs for a kind
func (s *UserStore) SaveFavorites(kind string, ids []string) error {
	return s.set(bucketFavorites, kind, ids)
}

// === Account ===

// GetUser returns the persisted resolved user
func (s *UserStore) GetUser() (*domain.User, bool) {
	var user domain.User
	if !s.get(bucketAccount, "user", &user) {
		return nil, false
	}
	return &user, true
}

// SaveUser persists the resolved user
func (s *UserStore) SaveUser(user *domain.User) error {
	return s.set(bucketAccount, "user", user)
}

// ClearUser removes the persisted user on logout
func (s *UserStore) ClearUser() {
	s.delete(bucketAccount, "user")
}
