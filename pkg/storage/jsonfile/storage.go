// Package jsonfile implements storage.Store on top of plain JSON files: one
// metadata file for the catalog and one file per table under a data
// directory.
package jsonfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/zhangbiao2009/primitive-db/pkg/catalog"
	"github.com/zhangbiao2009/primitive-db/pkg/dberr"
	"github.com/zhangbiao2009/primitive-db/pkg/logging"
	"github.com/zhangbiao2009/primitive-db/pkg/storage"
)

const (
	// DefaultDataDir is the directory where table files are stored
	DefaultDataDir = "data"

	// DefaultMetaFile is the name of the catalog file
	DefaultMetaFile = "db_meta.json"

	tableExt = ".json"
)

// Storage implements storage.Store with JSON files
type Storage struct {
	dataDir  string
	metaPath string
}

var _ storage.Store = (*Storage)(nil)

// New creates a file store. The data directory is created if missing.
func New(dataDir, metaPath string) (*Storage, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir
	}
	if metaPath == "" {
		metaPath = DefaultMetaFile
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if dir := filepath.Dir(metaPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	return &Storage{dataDir: dataDir, metaPath: metaPath}, nil
}

// DataDir returns the directory holding table files
func (s *Storage) DataDir() string {
	return s.dataDir
}

// MetaPath returns the path of the catalog file
func (s *Storage) MetaPath() string {
	return s.metaPath
}

// TablePath returns the file a table's records live in
func (s *Storage) TablePath(tableName string) string {
	return filepath.Join(s.dataDir, tableName+tableExt)
}

// LoadCatalog reads the catalog file; a missing file is an empty catalog
func (s *Storage) LoadCatalog() (*catalog.Catalog, error) {
	data, err := readFile(s.metaPath)
	if err != nil {
		return nil, dberr.Storage("read", s.metaPath, err)
	}

	cat := catalog.New()
	if len(bytes.TrimSpace(data)) == 0 {
		return cat, nil
	}
	if err := json.Unmarshal(data, cat); err != nil {
		return nil, dberr.Storage("decode", s.metaPath, err)
	}
	return cat, nil
}

// SaveCatalog overwrites the catalog file
func (s *Storage) SaveCatalog(cat *catalog.Catalog) error {
	if err := writeFile(s.metaPath, cat); err != nil {
		return dberr.Storage("write", s.metaPath, err)
	}
	logging.GetLogger().Debug("catalog saved", "path", s.metaPath, "tables", cat.Len())
	return nil
}

// LoadTable reads a table file; a missing file is an empty table
func (s *Storage) LoadTable(tableName string) ([]storage.Record, error) {
	path := s.TablePath(tableName)
	data, err := readFile(path)
	if err != nil {
		return nil, dberr.Storage("read", path, err)
	}

	records, err := storage.DecodeRecords(data)
	if err != nil {
		return nil, dberr.Storage("decode", path, err)
	}
	return records, nil
}

// SaveTable overwrites a table file
func (s *Storage) SaveTable(tableName string, records []storage.Record) error {
	if records == nil {
		records = []storage.Record{}
	}

	path := s.TablePath(tableName)
	if err := writeFile(path, records); err != nil {
		return dberr.Storage("write", path, err)
	}
	logging.WithTable(tableName).Debug("table saved", "path", path, "records", len(records))
	return nil
}

// RemoveTable deletes a table file
func (s *Storage) RemoveTable(tableName string) error {
	path := s.TablePath(tableName)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return dberr.Storage("remove", path, err)
	}
	return nil
}

// readFile returns nil data, not an error, when the file does not exist.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// writeFile encodes v into a temporary file next to path and renames it
// over path, so readers see either the old or the new content.
func writeFile(path string, v any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if err := storage.Encode(tmp, v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
