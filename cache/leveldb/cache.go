// Package leveldb provides a cache.Cache implementation using goleveldb,
// for users who prefer a directory store over bolt's single file.
package leveldb

import (
	"time"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Cache is a cache.Cache backed by a leveldb directory. Data and fetch
// times share one db under distinct key prefixes.
type Cache struct {
	db *leveldb.DB
}

func dataKey(key string) []byte    { return append([]byte("d:"), key...) }
func fetchedKey(key string) []byte { return append([]byte("t:"), key...) }

// NewCache opens (creating if needed) a leveldb at dirname.
func NewCache(dirname string) (*Cache, error) {
	db, err := leveldb.OpenFile(dirname, &opt.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening leveldb at %v", dirname)
	}
	return &Cache{db: db}, nil
}

// Get implements cache.Cache.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	data, err := c.db.Get(dataKey(key), nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "getting '%v'", key)
	}
	return data, true, nil
}

// Put implements cache.Cache.
func (c *Cache) Put(key string, data []byte) error {
	batch := &leveldb.Batch{}
	batch.Put(dataKey(key), data)
	batch.Put(fetchedKey(key), []byte(time.Now().UTC().Format(time.RFC3339)))
	return errors.Wrapf(c.db.Write(batch, nil), "putting '%v'", key)
}

// FetchedAt implements cache.Cache.
func (c *Cache) FetchedAt(key string) (time.Time, bool, error) {
	v, err := c.db.Get(fetchedKey(key), nil)
	if err == leveldb.ErrNotFound {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, errors.Wrapf(err, "fetch time of '%v'", key)
	}
	when, err := time.Parse(time.RFC3339, string(v))
	if err != nil {
		return time.Time{}, false, errors.Wrap(err, "parsing fetch time")
	}
	return when, true, nil
}

// Close releases the db.
func (c *Cache) Close() error {
	return errors.Wrap(c.db.Close(), "closing leveldb")
}
