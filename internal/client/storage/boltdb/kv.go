package boltdb

import (
	"context"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"
	bolterrors "go.etcd.io/bbolt/errors"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
)

// Get returns the value stored under key
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}

		// Значение из bbolt валидно только внутри транзакции, копируем
		if data := bucket.Get([]byte(key)); data != nil {
			value = string(data)
			ok = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get %q: %w", key, err)
	}

	return value, ok, nil
}

// Set stores value under key
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return storage.ErrEmptyKey
	}

	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}

	return nil
}

// Remove deletes key, missing keys are ignored
func (s *Storage) Remove(ctx context.Context, key string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		return bucket.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}

	return nil
}

// ListKeys returns all keys in lexical order
func (s *Storage) ListKeys(ctx context.Context) ([]string, error) {
	keys := []string{}

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return keys, nil
}

// MultiGet reads several keys in one transaction
func (s *Storage) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	values := make(map[string]string, len(keys))

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		for _, key := range keys {
			if data := bucket.Get([]byte(key)); data != nil {
				values[key] = string(data)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	return values, nil
}

// MultiSet writes all pairs in one transaction
func (s *Storage) MultiSet(ctx context.Context, pairs map[string]string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		for key, value := range pairs {
			if key == "" {
				return storage.ErrEmptyKey
			}
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("put %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set keys: %w", err)
	}

	return nil
}

// MultiRemove deletes all keys in one transaction
func (s *Storage) MultiRemove(ctx context.Context, keys []string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketKV)
		if bucket == nil {
			return fmt.Errorf("kv bucket not found")
		}
		for _, key := range keys {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove keys: %w", err)
	}

	return nil
}

// ReplaceAll drops the kv bucket and refills it in one transaction
func (s *Storage) ReplaceAll(ctx context.Context, pairs map[string]string) error {
	err := s.update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketKV); err != nil && !errors.Is(err, bolterrors.ErrBucketNotFound) {
			return fmt.Errorf("drop kv bucket: %w", err)
		}

		bucket, err := tx.CreateBucket(bucketKV)
		if err != nil {
			return fmt.Errorf("create kv bucket: %w", err)
		}

		for key, value := range pairs {
			if key == "" {
				return storage.ErrEmptyKey
			}
			if err := bucket.Put([]byte(key), []byte(value)); err != nil {
				return fmt.Errorf("put %q: %w", key, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace contents: %w", err)
	}

	return nil
}
