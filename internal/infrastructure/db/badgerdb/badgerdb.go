// Package badgerdb implements the record store on an embedded BadgerDB.
//
// Each collection lives under its own key prefix with JSON-encoded values.
// Badger transactions are the per-collection serialization point: concurrent
// read-modify-write cycles on the same record cannot lose updates.
package badgerdb

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
)

// Open initialises the store under dataDir. The caller owns the returned DB
// and must Close it on shutdown.
func Open(dataDir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(filepath.Join(dataDir, "records"))
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	return db, nil
}

// update runs fn in a read-write transaction, retrying when optimistic
// concurrency control aborts the commit. Read-modify-write cycles must run
// entirely inside fn so concurrent mutations of the same key cannot lose
// updates.
func update(db *badger.DB, fn func(txn *badger.Txn) error) error {
	for {
		err := db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
}
