package store

import (
	"errors"
	"time"

	"github.com/inovacc/trendr/internal/encoding"
	"go.etcd.io/bbolt"
)

const boltBucketKV = "kv" // key: storage key -> value text

// Bolt is a Medium backed by an embedded bbolt file.
type Bolt struct {
	storage       *bbolt.DB
	maxValueBytes int
}

// NewBolt opens (or creates) the bbolt file at path.
func NewBolt(path string, maxValueBytes int) (*Bolt, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketKV))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance, maxValueBytes: maxValueBytes}, nil
}

func (b *Bolt) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := b.storage.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucketKV))
		if bucket == nil {
			return errors.New("kv bucket missing")
		}

		if data := bucket.Get([]byte(key)); data != nil {
			// string() copies; the slice is only valid inside the transaction
			value, ok = string(data), true
		}

		return nil
	})

	return value, ok, err
}

func (b *Bolt) Set(key, value string) error {
	if err := checkQuota(b.maxValueBytes, key, value); err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketKV)).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Remove(key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketKV)).Delete([]byte(key))
	})
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}
