// Package memory is an in-process implementation of storage.Store.
package memory

import (
	"sync"

	"github.com/zhangbiao2009/primitive-db/pkg/catalog"
	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/storage"
)

// Storage keeps blobs in maps. Loads and saves copy, so callers never share
// state with the store.
type Storage struct {
	mu      sync.RWMutex
	catalog *catalog.Catalog
	// map[tableName][]Record
	tables map[string][]storage.Record
	// failures injects errors per operation name, for tests
	failures map[string]error

	loads int
	saves int
}

// New creates a new memory storage
func New() *Storage {
	return &Storage{
		catalog:  catalog.New(),
		tables:   make(map[string][]storage.Record),
		failures: make(map[string]error),
	}
}

var _ storage.Store = (*Storage)(nil)

// FailOn makes every later call of op ("load", "save" or "remove") fail
// with a StorageFailure wrapping err. op may be narrowed to one blob as
// "save:users" or "save:metadata". A nil err clears the failure.
func (s *Storage) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Loads returns how many blobs have been read
func (s *Storage) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

// Saves returns how many blobs have been written
func (s *Storage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *Storage) fail(op, key string) error {
	if err, ok := s.failures[op]; ok {
		return dberr.Storage(op, key, err)
	}
	if err, ok := s.failures[op+":"+key]; ok {
		return dberr.Storage(op, key, err)
	}
	return nil
}

// LoadCatalog returns a copy of the stored catalog
func (s *Storage) LoadCatalog() (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("load", "metadata"); err != nil {
		return nil, err
	}
	s.loads++
	return s.catalog.Clone(), nil
}

// SaveCatalog stores a copy of cat
func (s *Storage) SaveCatalog(cat *catalog.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("save", "metadata"); err != nil {
		return err
	}
	s.saves++
	s.catalog = cat.Clone()
	return nil
}

// LoadTable returns a copy of the table's records
func (s *Storage) LoadTable(tableName string) ([]storage.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("load", tableName); err != nil {
		return nil, err
	}
	s.loads++
	return storage.CloneRecords(s.tables[tableName]), nil
}

// SaveTable replaces the table's records with a copy of records
func (s *Storage) SaveTable(tableName string, records []storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("save", tableName); err != nil {
		return err
	}
	s.saves++
	s.tables[tableName] = storage.CloneRecords(records)
	return nil
}

// RemoveTable drops the table's records
func (s *Storage) RemoveTable(tableName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fail("remove", tableName); err != nil {
		return err
	}
	delete(s.tables, tableName)
	return nil
}

// HasTable reports whether a blob exists for the table
func (s *Storage) HasTable(tableName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[tableName]
	return ok
}
