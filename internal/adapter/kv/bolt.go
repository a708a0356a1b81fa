package kv

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"connectong/internal/domain"
)

var portalBucket = []byte("portal")

// Bolt stores every key in a single bbolt bucket.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the database file at path and ensures the
// bucket exists.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("kv: open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(portalBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: create bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		val := tx.Bucket(portalBucket).Get([]byte(key))
		if val != nil {
			// bbolt values are only valid for the life of the transaction.
			out = append([]byte{}, val...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, out != nil, nil
}

func (b *Bolt) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(portalBucket).Put([]byte(key), value)
	})
}

func (b *Bolt) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(portalBucket).Delete([]byte(key))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

var _ domain.KV = (*Bolt)(nil)
