// Package boltdb provides a cache.Cache implementation using boltdb. BoltDB
// keeps everything in one file, which suits a cache that mostly holds a
// single multi-megabyte archive.
package boltdb

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
)

var (
	dataBucket    = []byte("archives")
	fetchedBucket = []byte("fetched")
)

// Cache is a cache.Cache backed by a boltdb file.
type Cache struct {
	Db *bolt.DB
}

// NewCache opens (creating if needed) a bolt file at filename and ensures
// the buckets exist.
func NewCache(filename string) (*Cache, error) {
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening db file '%v'", filename)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(dataBucket); err != nil {
			return errors.Wrap(err, "creating archives bucket")
		}
		if _, err := tx.CreateBucketIfNotExists(fetchedBucket); err != nil {
			return errors.Wrap(err, "creating fetched bucket")
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ensuring bucket existence")
	}
	return &Cache{Db: db}, nil
}

// Get implements cache.Cache.
func (c *Cache) Get(key string) (data []byte, ok bool, err error) {
	err = c.Db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(dataBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		data = make([]byte, len(v))
		copy(data, v)
		ok = true
		return nil
	})
	return data, ok, errors.Wrapf(err, "getting '%v'", key)
}

// Put implements cache.Cache.
func (c *Cache) Put(key string, data []byte) error {
	err := c.Db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(dataBucket).Put([]byte(key), data); err != nil {
			return errors.Wrap(err, "putting data")
		}
		now := time.Now().UTC().Format(time.RFC3339)
		return errors.Wrap(tx.Bucket(fetchedBucket).Put([]byte(key), []byte(now)), "putting fetch time")
	})
	return errors.Wrapf(err, "putting '%v'", key)
}

// FetchedAt implements cache.Cache.
func (c *Cache) FetchedAt(key string) (when time.Time, ok bool, err error) {
	err = c.Db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(fetchedBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		var perr error
		when, perr = time.Parse(time.RFC3339, string(v))
		if perr != nil {
			return errors.Wrap(perr, "parsing fetch time")
		}
		ok = true
		return nil
	})
	return when, ok, errors.Wrapf(err, "fetch time of '%v'", key)
}

// Close syncs and closes the underlying boltdb.
func (c *Cache) Close() error {
	if err := c.Db.Sync(); err != nil {
		return errors.Wrap(err, "syncing db")
	}
	return c.Db.Close()
}
