// Package store keeps known functions and their invariants in a LevelDB
// database keyed by truth-table fingerprint.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vybium/vybium-vbf/internal/vybium-vbf/logger"
	"github.com/vybium/vybium-vbf/internal/vybium-vbf/metrics"
)

var l = logger.DefaultLogger.NewFacility("store", "Function database")

// ErrNotFound is returned for an unknown fingerprint.
var ErrNotFound = errors.New("function not found")

const (
	recordPrefix    = "fn/"  // fn/<fingerprint> -> JSON record
	dimensionPrefix = "dim/" // dim/<nn>/<fingerprint> -> empty
)

// Store is a function database. It is safe for concurrent use.
type Store struct {
	db       *leveldb.DB
	location string
	mut      sync.Mutex // serializes writers so the gauge sees each new key once
}

// Open opens or creates the database at path, recovering it if the
// manifest is corrupted.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if lerrors.IsCorrupted(err) {
		l.Infof("Recovering corrupted database at %s", path)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return newStore(db, path)
}

// OpenMem opens an in-memory database.
func OpenMem() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("open memory database: %w", err)
	}
	return newStore(db, ":memory:")
}

func newStore(db *leveldb.DB, location string) (*Store, error) {
	s := &Store{db: db, location: location}
	n, err := s.Len()
	if err != nil {
		db.Close()
		return nil, err
	}
	metrics.StoredFunctions.Set(float64(n))
	l.Debugf("Opened %s with %d functions", location, n)
	return s, nil
}

func recordKey(fp string) []byte {
	return []byte(recordPrefix + fp)
}

func dimensionKey(n uint, fp string) []byte {
	return []byte(fmt.Sprintf("%s%02d/%s", dimensionPrefix, n, fp))
}

// Location returns the database path.
func (s *Store) Location() string {
	return s.location
}

// Put inserts or replaces a record. It reports whether the fingerprint was
// new.
func (s *Store) Put(r *Record) (bool, error) {
	if r.Fingerprint == "" {
		return false, fmt.Errorf("record without fingerprint")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("encode record %s: %w", r.Fingerprint, err)
	}
	s.mut.Lock()
	defer s.mut.Unlock()
	existed, err := s.db.Has(recordKey(r.Fingerprint), nil)
	if err != nil {
		return false, err
	}

	batch := new(leveldb.Batch)
	batch.Put(recordKey(r.Fingerprint), data)
	batch.Put(dimensionKey(r.Dimension, r.Fingerprint), nil)
	if err := s.db.Write(batch, nil); err != nil {
		return false, fmt.Errorf("write record %s: %w", r.Fingerprint, err)
	}
	if !existed {
		metrics.StoredFunctions.Inc()
	}
	l.Debugf("Stored %s (n=%d, new=%v)", r.Fingerprint, r.Dimension, !existed)
	return !existed, nil
}

// Get returns the record for a fingerprint.
func (s *Store) Get(fp string) (*Record, error) {
	data, err := s.db.Get(recordKey(fp), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fp)
	}
	if err != nil {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", fp, err)
	}
	return &r, nil
}

// List returns the records of dimension n ordered by fingerprint, or all
// records when n is 0.
func (s *Store) List(n uint) ([]*Record, error) {
	if n == 0 {
		return s.listAll()
	}
	prefix := []byte(fmt.Sprintf("%s%02d/", dimensionPrefix, n))
	it := s.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer it.Release()

	var fps []string
	for it.Next() {
		fps = append(fps, string(it.Key()[len(prefix):]))
	}
	if err := it.Error(); err != nil {
		return nil, err
	}

	out := make([]*Record, 0, len(fps))
	for _, fp := range fps {
		r, err := s.Get(fp)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *Store) listAll() ([]*Record, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer it.Release()

	var out []*Record
	for it.Next() {
		var r Record
		if err := json.Unmarshal(it.Value(), &r); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", it.Key(), err)
		}
		out = append(out, &r)
	}
	return out, it.Error()
}

// Len returns the number of stored records.
func (s *Store) Len() (int, error) {
	it := s.db.NewIterator(util.BytesPrefix([]byte(recordPrefix)), nil)
	defer it.Release()
	n := 0
	for it.Next() {
		n++
	}
	return n, it.Error()
}

// Delete removes a record.
func (s *Store) Delete(fp string) error {
	s.mut.Lock()
	defer s.mut.Unlock()
	r, err := s.Get(fp)
	if err != nil {
		return err
	}
	batch := new(leveldb.Batch)
	batch.Delete(recordKey(fp))
	batch.Delete(dimensionKey(r.Dimension, fp))
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("delete record %s: %w", fp, err)
	}
	metrics.StoredFunctions.Dec()
	l.Debugf("Deleted %s", fp)
	return nil
}

// Reset deletes every record.
func (s *Store) Reset() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	it := s.db.NewIterator(nil, nil)
	batch := new(leveldb.Batch)
	for it.Next() {
		batch.Delete(append([]byte(nil), it.Key()...))
	}
	it.Release()
	if err := it.Error(); err != nil {
		return err
	}
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	metrics.StoredFunctions.Set(0)
	l.Infof("Removed %d keys from %s", batch.Len(), s.location)
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
