// Package document loads and saves the single Bill Keeper document.
//
// Load never fails: a missing, unreadable, unparseable, or invalid stored
// value yields the default empty document. Everything except "nothing stored
// yet" is logged and counted, since it means the stored data is being ignored.
package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/metrics"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/storage"
)

// DefaultKey is the storage key the document lives under.
const DefaultKey = "billKeeper.v1"

// Load fallback reasons, used as metric labels.
const (
	ReasonReadError  = "read_error"
	ReasonParseError = "parse_error"
	ReasonInvalid    = "invalid"
)

// Store reads and writes the document through a storage.Store.
type Store struct {
	kv      storage.Store
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for load fallbacks and saves.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records loads and saves on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// NewStore creates a document store backed by kv.
func NewStore(kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored document, or the default document if there is
// none or it cannot be used.
func (s *Store) Load(ctx context.Context) *models.Document {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && len(raw) == 0) {
		s.logger.Debug("No stored document, starting empty", "key", s.key)
		return models.NewDocument()
	}
	if err != nil {
		return s.fallback(ReasonReadError, err)
	}

	doc, err := Decode(raw)
	if err != nil {
		return s.fallback(ReasonParseError, err)
	}
	if err := doc.Validate(); err != nil {
		return s.fallback(ReasonInvalid, err)
	}

	s.logger.Debug("Document loaded",
		"key", s.key,
		"bills_count", len(doc.Bills),
		"has_last_updated", doc.LastUpdated != nil,
	)
	return doc
}

func (s *Store) fallback(reason string, err error) *models.Document {
	s.logger.Warn("Stored document ignored, using defaults",
		"key", s.key,
		"reason", reason,
		"error", err,
	)
	s.metrics.LoadFallback(reason)
	return models.NewDocument()
}

// Save validates doc and writes it in full, replacing the stored value.
func (s *Store) Save(ctx context.Context, doc *models.Document) (err error) {
	defer func() { s.metrics.Save(err) }()

	if err := doc.Validate(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	raw, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		s.logger.Error("Document save failed", "key", s.key, "error", err)
		return fmt.Errorf("failed to save document: %w", err)
	}

	s.logger.Debug("Document saved", "key", s.key, "bytes", len(raw))
	return nil
}

// Encode serializes doc in the persisted JSON layout.
func Encode(doc *models.Document) ([]byte, error) {
	out := doc
	if doc.Bills == nil {
		out = doc.Clone()
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return raw, nil
}

// Decode parses the persisted JSON layout. A missing or null bills array
// becomes an empty slice.
func Decode(raw []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Bills == nil {
		doc.Bills = []models.Bill{}
	}
	return &doc, nil
}
