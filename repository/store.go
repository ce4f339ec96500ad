package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/photoclass/photoclassbackend/database"
)

// storage keys; the students collection is sharded per project
const (
	keyProjects       = "photoClassAppProjects"
	keySchoolClasses  = "photoClassAppSchoolClasses"
	keyPhotos         = "photoClassAppPhotos"
	keyProjectConfig  = "projectConfig"
	keyTheme          = "theme"
	studentsKeyPrefix = "photoClassProjectStudents_"
)

func studentsKey(projectID string) string {
	return studentsKeyPrefix + projectID
}

// Store owns every read and write against the key-value medium. All
// repositories go through it, so the load-modify-store cycle is serialized
// per key and no two writers can clobber each other from stale snapshots.
type Store struct {
	kv database.KV

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(kv database.KV) *Store {
	return &Store{
		kv:    kv,
		locks: make(map[string]*sync.Mutex),
	}
}

// lockKey acquires the mutex guarding a storage key and returns the unlock
func (s *Store) lockKey(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// loadJSON reads a key into v. A missing key leaves v untouched (callers
// pass the empty collection). A payload that fails to decode, whether invalid
// JSON or valid JSON of the wrong shape, is logged and likewise leaves v
// untouched, so the caller sees the empty collection rather than partially
// decoded records: availability over strictness for a single-user local tool.
func (s *Store) loadJSON(key string, v interface{}) error {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("failed to load %q: %w", key, err)
	}
	if !ok {
		return nil
	}
	// decode into a scratch value; json.Unmarshal writes whatever fields it
	// managed to decode before a type error, and that partial state must
	// never reach v
	decoded := reflect.New(reflect.TypeOf(v).Elem())
	if err := json.Unmarshal(data, decoded.Interface()); err != nil {
		log.Printf("store: malformed payload under %q, treating as empty: %v", key, err)
		return nil
	}
	reflect.ValueOf(v).Elem().Set(decoded.Elem())
	return nil
}

// storeJSON serializes v and writes it whole under key
func (s *Store) storeJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := s.kv.Set(key, data); err != nil {
		return fmt.Errorf("failed to store %q: %w", key, err)
	}
	return nil
}

func (s *Store) deleteKey(key string) error {
	return s.kv.Delete(key)
}
