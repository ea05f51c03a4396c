package book

import (
	"encoding/binary"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/lavantien/caroengine/internal/board"
)

// OnDiskStore is a Store backed by a BadgerDB key-value database, for
// opening books too large to hold entirely in RAM. Grounded on the
// teacher module's use of BadgerDB for the tablebase/storage layer
// (go.mod already carries github.com/dgraph-io/badger/v4), adapted
// here to the book's canonicalHash+side key instead of tablebase
// positions.
type OnDiskStore struct {
	db *badger.DB
}

// OpenOnDiskStore opens (or creates) a Badger database at dir for
// read-only book lookups.
func OpenOnDiskStore(dir string) (*OnDiskStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &OnDiskStore{db: db}, nil
}

func (s *OnDiskStore) Close() error {
	return s.db.Close()
}

func bookDBKey(canonicalHash uint64, side board.Player) []byte {
	var k [9]byte
	binary.BigEndian.PutUint64(k[:8], canonicalHash)
	k[8] = byte(side)
	return k[:]
}

func (s *OnDiskStore) Get(canonicalHash uint64, side board.Player) (BookEntry, bool) {
	var entry BookEntry
	found := false
	_ = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bookDBKey(canonicalHash, side))
		if err != nil {
			return nil // key not found: treat as a miss, not an error
		}
		return item.Value(func(val []byte) error {
			entry, found = decodeEntry(val)
			return nil
		})
	})
	return entry, found
}

func (s *OnDiskStore) Contains(canonicalHash uint64, side board.Player) bool {
	found := false
	_ = s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(bookDBKey(canonicalHash, side))
		found = err == nil
		return nil
	})
	return found
}

// Put writes an entry to the database. Not part of the Store
// interface: book construction is an offline step, never concurrent
// with a search holding the Store read-only (spec §5).
func (s *OnDiskStore) Put(canonicalHash uint64, side board.Player, entry BookEntry) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bookDBKey(canonicalHash, side), encodeEntry(entry))
	})
}
