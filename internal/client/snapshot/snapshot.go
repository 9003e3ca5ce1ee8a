// Package snapshot exports and restores the whole local key/value state.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/iudanet/fieldkeeper/internal/client/storage"
)

// FormatVersion is the version written into exported documents.
const FormatVersion = 1

var (
	// ErrInvalidImportFormat indicates a document without the required fields.
	// Nothing is changed when it is returned.
	ErrInvalidImportFormat = errors.New("invalid import format")

	// ErrImportPartial indicates that the store was wiped but not fully rewritten
	ErrImportPartial = errors.New("import failed after existing data was removed")
)

// Document is the transfer format of a full local state snapshot.
type Document struct {
	ExportedAt  time.Time         `json:"exportedAt"`
	Data        map[string]string `json:"data"`
	Version     int               `json:"version"`
	DataVersion int64             `json:"dataVersion"`
}

// Validate checks the fields every importable document must carry.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidImportFormat)
	}
	if d.Version <= 0 {
		return fmt.Errorf("%w: missing version", ErrInvalidImportFormat)
	}
	if d.Version > FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidImportFormat, d.Version)
	}
	if d.Data == nil {
		return fmt.Errorf("%w: missing data", ErrInvalidImportFormat)
	}
	if _, ok := d.Data[""]; ok {
		return fmt.Errorf("%w: empty key in data", ErrInvalidImportFormat)
	}
	return nil
}

// Encode serializes a document as indented JSON.
func Encode(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses and validates a JSON document.
func Decode(raw []byte) (*Document, error) {
	// Указатели различают "поле отсутствует" и нулевое значение
	var aux struct {
		ExportedAt  time.Time          `json:"exportedAt"`
		Data        *map[string]string `json:"data"`
		Version     *int               `json:"version"`
		DataVersion int64              `json:"dataVersion"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportFormat, err)
	}
	if aux.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidImportFormat)
	}
	if aux.Data == nil || *aux.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrInvalidImportFormat)
	}

	doc := &Document{
		ExportedAt:  aux.ExportedAt,
		Data:        *aux.Data,
		Version:     *aux.Version,
		DataVersion: aux.DataVersion,
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Service reads and replaces the complete contents of a KV store.
type Service struct {
	store  storage.KVStorage
	logger *slog.Logger
	now    func() time.Time
}

// New creates a snapshot service over store.
func New(store storage.KVStorage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Export reads every key in the store, not only the offline queue.
func (s *Service) Export(ctx context.Context) (*Document, error) {
	data, err := s.readAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}

	doc := &Document{
		Version:    FormatVersion,
		ExportedAt: s.now().UTC(),
		Data:       data,
	}
	if raw, ok := data[storage.KeyDataVersion]; ok {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			doc.DataVersion = v
		}
	}

	s.logger.Info("Snapshot exported", "keys", len(data), "data_version", doc.DataVersion)
	return doc, nil
}

// Import decodes raw and replaces the store contents with it.
func (s *Service) Import(ctx context.Context, raw []byte) (*Document, error) {
	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	if err := s.ImportDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportDocument wipes every existing key and writes doc.Data.
// Validation happens before anything is removed. Stores implementing
// storage.Replacer swap the contents in one transaction; otherwise a
// failed write after the wipe returns ErrImportPartial.
func (s *Service) ImportDocument(ctx context.Context, doc *Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if r, ok := s.store.(storage.Replacer); ok {
		if err := r.ReplaceAll(ctx, doc.Data); err != nil {
			return fmt.Errorf("failed to import snapshot: %w", err)
		}
		s.logger.Info("Snapshot imported", "keys", len(doc.Data), "atomic", true)
		return nil
	}

	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	if err := s.store.MultiRemove(ctx, keys); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}

	if err := s.store.MultiSet(ctx, doc.Data); err != nil {
		s.logger.Error("Import left store partially written", "keys", len(doc.Data), "error", err)
		return fmt.Errorf("%w: %w", ErrImportPartial, err)
	}

	s.logger.Info("Snapshot imported", "keys", len(doc.Data), "atomic", false)
	return nil
}

// ApproximateSize sums the byte length of every stored value.
// It is meant for display only.
func (s *Service) ApproximateSize(ctx context.Context) (int64, error) {
	data, err := s.readAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute storage size: %w", err)
	}

	var total int64
	for _, v := range data {
		total += int64(len(v))
	}
	return total, nil
}

func (s *Service) readAll(ctx context.Context) (map[string]string, error) {
	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	return s.store.MultiGet(ctx, keys)
}
