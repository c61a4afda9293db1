// Package cache stores finished renders in a bolt database so repeated CLI
// invocations for the same block skip the composite.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
)

var rendersBucket = []byte("renders")

// Entry is one cached render.
type Entry struct {
	PNG        []byte          `json:"png"`
	Attributes json.RawMessage `json:"attributes"`
	Created    time.Time       `json:"created"`
}

type Cache struct {
	db *bolt.DB
}

func Open(path string) (*Cache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(rendersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key hashes the parts that identify a render. Each part is length
// prefixed so adjacent parts cannot run together.
func Key(parts ...[]byte) []byte {
	h := sha256.New()
	for _, p := range parts {
		n := len(p)
		h.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)})
		h.Write(p)
	}
	return h.Sum(nil)
}

// Get returns the entry under key, if any.
func (c *Cache) Get(key []byte) (*Entry, bool, error) {
	var raw []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(rendersBucket).Get(key); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || raw == nil {
		return nil, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, false, err
	}
	return &e, true, nil
}

func (c *Cache) Put(key []byte, e *Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(rendersBucket).Put(key, raw)
	})
}

// Len is the number of cached renders.
func (c *Cache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(rendersBucket).Stats().KeyN
		return nil
	})
	return n, err
}
