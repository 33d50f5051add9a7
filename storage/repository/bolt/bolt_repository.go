package boltrepo

import (
	"context"

	"go.etcd.io/bbolt"

	"github.com/batchauction/dexclient/domain"
)

// DefaultBucket is used when no bucket is configured.
const DefaultBucket = "dexclient"

type boltRepo struct {
	*bbolt.DB
	bucket []byte
}

var _ domain.KVStore = &boltRepo{}

// New opens, creating if needed, the bolt database at path.
func New(path string, bucket string) (*boltRepo, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}

	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &boltRepo{
		DB:     db,
		bucket: []byte(bucket),
	}, nil
}

// Get implements domain.KVStore.
func (r *boltRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := r.View(func(tx *bbolt.Tx) error {
		// the returned slice is only valid for the lifetime of the transaction
		raw := tx.Bucket(r.bucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		value, found = string(raw), true
		return nil
	})
	if err != nil {
		return "", false, err
	}

	return value, found, nil
}

// Set implements domain.KVStore.
func (r *boltRepo) Set(ctx context.Context, key string, value string) error {
	return r.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(r.bucket).Put([]byte(key), []byte(value))
	})
}

// Close implements domain.KVStore.
func (r *boltRepo) Close() error {
	return r.DB.Close()
}
