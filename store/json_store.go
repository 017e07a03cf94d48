// Package store provides a JSON-file-backed record store that converted
// query parameters execute against. Records live in memory; the backing
// file is written atomically and guarded by a cross-process file lock.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/arthur-debert/docbind/query"
	"github.com/arthur-debert/docbind/types"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a record UUID does not exist.
var ErrNotFound = errors.New("record not found")

const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// storeData is the on-disk shape of the store file.
type storeData struct {
	Records  []types.Record `json:"records"`
	Metadata metadata       `json:"metadata"`
}

type metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a JSON-file-backed record store.
type Store struct {
	filePath    string
	lockManager lockManager
	fileLock    FileLock
	data        *storeData

	// timeFunc supplies timestamps, overridable for tests.
	timeFunc func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLockFactory overrides the file lock implementation.
func WithLockFactory(factory FileLockFactory) Option {
	return func(s *Store) {
		s.fileLock = factory.New(s.filePath + ".lock")
	}
}

// WithTimeFunc overrides the timestamp source.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *Store) {
		s.timeFunc = fn
	}
}

// Open loads the store at path, creating an empty one if the file does
// not exist yet.
func Open(path string, opts ...Option) (*Store, error) {
	now := time.Now()
	s := &Store{
		filePath: path,
		timeFunc: time.Now,
		data: &storeData{
			Records: []types.Record{},
			Metadata: metadata{
				Version:   "1.0",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.fileLock == nil {
		s.fileLock = (&FlockFactory{}).New(path + ".lock")
	}

	if err := s.loadWithLock(); err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return s, nil
}

// acquireLock attempts to take the cross-process lock with retries.
func (s *Store) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

func (s *Store) loadWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return s.load()
}

// load reads the file into memory. Caller must hold the file lock.
func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var loaded storeData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	// JSON decoding yields generic maps and slices; bring the field
	// trees back into Document/List form so queries compare structurally.
	for i := range loaded.Records {
		loaded.Records[i].Fields = types.Normalize(loaded.Records[i].Fields).(types.Document)
	}

	s.data = &loaded
	return nil
}

func (s *Store) saveWithLock() error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()

	return s.save()
}

// save writes the in-memory data atomically. Caller must hold the file lock.
func (s *Store) save() error {
	s.data.Metadata.UpdatedAt = s.timeFunc()

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmpFile := s.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, s.filePath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// Add stores a new record with the given fields and returns its UUID.
// Fields should already be in the store's native representation; raw Go
// values belong on the writer side.
func (s *Store) Add(fields types.Document) (string, error) {
	id := uuid.New().String()

	err := s.lockManager.execute(writeOperation, func() error {
		now := s.timeFunc()
		s.data.Records = append(s.data.Records, types.Record{
			UUID:      id,
			Fields:    fields.Clone(),
			CreatedAt: now,
			UpdatedAt: now,
		})
		return s.saveWithLock()
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the record with the given UUID.
func (s *Store) Get(id string) (types.Record, error) {
	var result types.Record
	err := s.lockManager.execute(readOperation, func() error {
		for _, rec := range s.data.Records {
			if rec.UUID == id {
				result = rec
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	})
	return result, err
}

// Find returns the records matching the query, ordered by the query's
// sort and windowed by its pageable.
func (s *Store) Find(q query.Query) ([]types.Record, error) {
	var result []types.Record
	err := s.lockManager.execute(readOperation, func() error {
		for _, rec := range s.data.Records {
			match, err := q.Matches(rec)
			if err != nil {
				return err
			}
			if match {
				result = append(result, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if q.Sort.IsSorted() {
		sortRecords(result, q.Sort)
	}

	start, end := q.Pageable.Window(len(result))
	return result[start:end], nil
}

// Delete removes the record with the given UUID.
func (s *Store) Delete(id string) error {
	return s.lockManager.execute(writeOperation, func() error {
		for i, rec := range s.data.Records {
			if rec.UUID == id {
				s.data.Records = append(s.data.Records[:i], s.data.Records[i+1:]...)
				return s.saveWithLock()
			}
		}
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	})
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var n int
	err := s.lockManager.execute(readOperation, func() error {
		n = len(s.data.Records)
		return nil
	})
	return n, err
}

// Close releases the store's resources.
func (s *Store) Close() error {
	return nil
}

// sortRecords orders records by the sort clauses, left to right. Fields
// that fail to compare keep their relative order.
func sortRecords(records []types.Record, s types.Sort) {
	sort.SliceStable(records, func(i, j int) bool {
		for _, clause := range s {
			a := recordField(records[i], clause.Field)
			b := recordField(records[j], clause.Field)
			cmp, err := query.Compare(a, b)
			if err != nil || cmp == 0 {
				continue
			}
			if clause.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func recordField(rec types.Record, field string) interface{} {
	switch field {
	case "uuid":
		return rec.UUID
	case "created_at":
		return rec.CreatedAt
	case "updated_at":
		return rec.UpdatedAt
	}
	return rec.Fields[field]
}
