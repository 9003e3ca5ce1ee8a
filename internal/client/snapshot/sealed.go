package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/fieldkeeper/internal/crypto"
)

const sealedFormat = "fieldkeeper-sealed"

var (
	// ErrNotSealed indicates that the data is not an encrypted snapshot
	ErrNotSealed = errors.New("not a sealed snapshot")

	// ErrWrongPassphrase indicates that a sealed snapshot could not be decrypted
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted snapshot")
)

// sealParams можно ослабить в тестах
var sealParams = crypto.BackupParams

type sealedHeader struct {
	Format  string        `json:"format"`
	Salt    []byte        `json:"salt"`
	KDF     crypto.Params `json:"kdf"`
	Version int           `json:"version"`
}

type sealedFile struct {
	sealedHeader
	Ciphertext []byte `json:"ciphertext"`
}

// IsSealed reports whether raw looks like an encrypted snapshot.
func IsSealed(raw []byte) bool {
	var h sealedHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return false
	}
	return h.Format == sealedFormat
}

// Seal encrypts a document with a key derived from passphrase.
// The header (KDF params and salt) is authenticated as additional data.
func Seal(doc *Document, passphrase string) ([]byte, error) {
	plaintext, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}

	header := sealedHeader{Format: sealedFormat, Version: FormatVersion, KDF: sealParams, Salt: salt}
	key, err := crypto.DeriveBackupKey(passphrase, salt, header.KDF)
	if err != nil {
		return nil, err
	}

	aad, err := json.Marshal(header)
	if err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}

	ciphertext, err := crypto.Encrypt(plaintext, key, aad)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt snapshot: %w", err)
	}

	return json.MarshalIndent(sealedFile{sealedHeader: header, Ciphertext: ciphertext}, "", "  ")
}

// Open decrypts and validates a sealed snapshot.
func Open(raw []byte, passphrase string) (*Document, error) {
	var f sealedFile
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&f); err != nil || f.Format != sealedFormat {
		return nil, ErrNotSealed
	}
	if f.Version <= 0 || f.Version > FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidImportFormat, f.Version)
	}

	key, err := crypto.DeriveBackupKey(passphrase, f.Salt, f.KDF)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportFormat, err)
	}

	aad, err := json.Marshal(f.sealedHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}

	plaintext, err := crypto.Decrypt(f.Ciphertext, key, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrongPassphrase, err)
	}

	return Decode(plaintext)
}
