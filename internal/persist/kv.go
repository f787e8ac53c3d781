package persist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/keith-kurak/i-didnt-park/internal/model"
	"go.etcd.io/bbolt"
)

const (
	kvBucket = "store" // key: StoreName -> payload, StoreName+keyFormatSuffix -> format tag

	keyFormatSuffix = ".format"

	formatJSON   = "json"
	formatSealed = "sealed"
)

// KVAdapter persists state as a single JSON document under a fixed key
// in a flat string-keyed store. It is the analogue of browser local
// storage for hosts without structured-database support. With a cipher
// the payload is sealed at rest.
type KVAdapter struct {
	db     *bbolt.DB
	cipher Cipher
}

// OpenKV opens (creating if needed) the key-value store under dir.
// cipher may be nil, in which case the payload is stored as plain JSON.
func OpenKV(dir string, cipher Cipher) (*KVAdapter, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &PersistenceError{Op: "open", Err: fmt.Errorf("creating data directory: %w", err)}
	}

	path := filepath.Join(dir, StoreName+".kv")

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(kvBucket))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, &PersistenceError{Op: "open", Err: err}
	}

	return &KVAdapter{db: db, cipher: cipher}, nil
}

func (a *KVAdapter) Close() error {
	if c, ok := a.cipher.(io.Closer); ok {
		_ = c.Close()
	}

	return a.db.Close()
}

// LoadAll reads and decodes the payload under the store key. A missing
// key means nothing was ever saved: defaults are returned.
func (a *KVAdapter) LoadAll() ([]model.Commute, model.Settings, error) {
	var (
		payload []byte
		format  string
	)

	if err := a.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket))

		if v := b.Get([]byte(StoreName)); v != nil {
			payload = append([]byte(nil), v...)
		}

		if v := b.Get([]byte(StoreName + keyFormatSuffix)); v != nil {
			format = string(v)
		}

		return nil
	}); err != nil {
		return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
	}

	if payload == nil {
		return nil, model.DefaultSettings(), nil
	}

	if format == formatSealed {
		if a.cipher == nil {
			return nil, model.Settings{}, &PersistenceError{Op: "load", Err: fmt.Errorf("payload is sealed but no cipher is available")}
		}

		plain, err := a.cipher.Open(payload)
		if err != nil {
			return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
		}

		payload = plain
	}

	doc, err := DecodeDocument(payload)
	if err != nil {
		return nil, model.Settings{}, &PersistenceError{Op: "load", Err: err}
	}

	commutes := doc.Commutes
	if len(commutes) == 0 {
		commutes = nil
	}

	return commutes, doc.Settings, nil
}

// SaveAll encodes the full state and replaces the payload under the
// store key. The write is a single bolt transaction: it either lands
// completely or leaves the previous payload intact.
func (a *KVAdapter) SaveAll(commutes []model.Commute, settings model.Settings) error {
	payload, err := NewDocument(commutes, settings).Encode()
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	format := formatJSON

	if a.cipher != nil {
		sealed, err := a.cipher.Seal(payload)
		if err != nil {
			return &PersistenceError{Op: "save", Err: err}
		}

		payload = sealed
		format = formatSealed
	}

	if err := a.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(kvBucket))

		if err := b.Put([]byte(StoreName), payload); err != nil {
			return err
		}

		return b.Put([]byte(StoreName+keyFormatSuffix), []byte(format))
	}); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	return nil
}
