// ABOUTME: Ephemeral artifact store for picked images and voice recordings.
// ABOUTME: Backed by badger in in-memory mode; nothing touches disk.

package blob

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harper/notepad/internal/logging"
	"github.com/rs/zerolog"
)

// Scheme prefixes every reference handed out by the store.
const Scheme = "blob:"

var ErrBlobNotFound = errors.New("artifact not found")
var ErrInvalidRef = errors.New("not an artifact reference")

var (
	dataPrefix = []byte("data/")
	mimePrefix = []byte("mime/")
)

type Blob struct {
	Ref      string
	MimeType string
	Data     []byte
}

// Store never evicts. Artifacts live as long as the process.
type Store struct {
	db *badger.DB
}

// Open starts an empty store. Badger's own chatter is kept at warn level
// or above.
func Open(logger zerolog.Logger) (*Store, error) {
	if logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(logging.Printf{L: logger.With().Str("component", "blob").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores data and returns a fresh reference to it.
func (s *Store) Put(mimeType string, data []byte) (string, error) {
	id := uuid.New().String()
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key(dataPrefix, id), data); err != nil {
			return err
		}
		return txn.Set(key(mimePrefix, id), []byte(mimeType))
	})
	if err != nil {
		return "", fmt.Errorf("store artifact: %w", err)
	}
	return Scheme + id, nil
}

func (s *Store) Get(ref string) (*Blob, error) {
	id, err := parseRef(ref)
	if err != nil {
		return nil, err
	}

	b := &Blob{Ref: ref}
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(dataPrefix, id))
		if err != nil {
			return err
		}
		if b.Data, err = item.ValueCopy(nil); err != nil {
			return err
		}
		item, err = txn.Get(key(mimePrefix, id))
		if err != nil {
			return err
		}
		mimeType, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		b.MimeType = string(mimeType)
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Count returns the number of stored artifacts.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = dataPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// IsRef reports whether s names a local artifact.
func IsRef(s string) bool {
	_, err := parseRef(s)
	return err == nil
}

func parseRef(ref string) (string, error) {
	id, ok := strings.CutPrefix(ref, Scheme)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return id, nil
}

func key(prefix []byte, id string) []byte {
	return append(append([]byte{}, prefix...), id...)
}
