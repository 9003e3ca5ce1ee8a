package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
)

// sessionKey - единственная запись bucket auth: одна учетная запись на устройство
var sessionKey = []byte("session")

func authBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketAuth)
	if b == nil {
		return nil, fmt.Errorf("auth bucket not found")
	}
	return b, nil
}

// SaveAuth replaces the device session. The record lives outside the kv
// bucket, so snapshots never carry tokens.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	if auth == nil {
		return fmt.Errorf("auth data cannot be nil")
	}
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if err := b.Put(sessionKey, raw); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return nil
	})
}

// GetAuth returns the device session or storage.ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var raw []byte
	err := s.view(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		// значение действительно только внутри транзакции
		raw = append([]byte(nil), b.Get(sessionKey)...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, storage.ErrAuthNotFound
	}

	var auth storage.AuthData
	if err := json.Unmarshal(raw, &auth); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &auth, nil
}

// DeleteAuth forgets the device session. Queued actions are kept.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if b.Get(sessionKey) == nil {
			return storage.ErrAuthNotFound
		}
		return b.Delete(sessionKey)
	})
}

// IsAuthenticated reports whether the stored session can still be refreshed.
func (s *Storage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := s.GetAuth(ctx)
	switch {
	case errors.Is(err, storage.ErrAuthNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return auth.SessionUsable(time.Now()), nil
}
