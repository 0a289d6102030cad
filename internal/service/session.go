// Package service holds the Session, the state object a front end drives.
//
// A Session owns the live document and, while the user is editing settings,
// a private draft copy of it. Registry and user-name edits go to the draft;
// Commit saves the draft and makes it live, Discard throws it away. Payments
// skip the draft and are saved against the live document immediately.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/document"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/idgen"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/ledger"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/metrics"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

// ErrNotEditing is returned by draft operations when no draft exists.
var ErrNotEditing = errors.New("not in edit mode")

// State is the draft workflow state.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Operation names used in logs and metrics.
const (
	opAddBill       = "add_bill"
	opDeleteBill    = "delete_bill"
	opRename        = "rename"
	opRecordPayment = "record_payment"
	opCommit        = "commit"
	opDiscard       = "discard"
)

// DocumentStore is the persistence the session needs.
type DocumentStore interface {
	Load(ctx context.Context) *models.Document
	Save(ctx context.Context, doc *models.Document) error
}

var _ DocumentStore = (*document.Store)(nil)

// Session is the explicit application state: the live document and the
// optional draft. It is not safe for concurrent use.
type Session struct {
	store   DocumentStore
	ids     idgen.Generator
	logger  *slog.Logger
	metrics *metrics.Metrics

	live  *models.Document
	draft *models.Document
}

// Option configures a Session.
type Option func(*Session)

// WithIDs overrides the bill ID generator (UUIDv7 by default).
func WithIDs(ids idgen.Generator) Option {
	return func(s *Session) { s.ids = ids }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records operation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// Open loads the live document from store and returns an idle session.
func Open(ctx context.Context, store DocumentStore, opts ...Option) *Session {
	s := &Session{
		store:  store,
		ids:    idgen.UUIDv7{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.live = store.Load(ctx)
	s.metrics.SetBills(len(s.live.Bills))
	s.logger.Debug("Session opened",
		"bills_count", len(s.live.Bills),
		"has_user_name", s.live.UserName != "",
	)
	return s
}

// Document returns a copy of the live document.
func (s *Session) Document() *models.Document {
	return s.live.Clone()
}

// Draft returns a copy of the draft, or nil when idle.
func (s *Session) Draft() *models.Document {
	return s.draft.Clone()
}

// State reports whether a draft is open.
func (s *Session) State() State {
	if s.draft != nil {
		return Editing
	}
	return Idle
}

// EnterEdit opens a draft copied from the live document. If a draft is
// already open it is kept as is.
func (s *Session) EnterEdit() {
	if s.draft != nil {
		s.logger.Debug("EnterEdit: keeping existing draft")
		return
	}
	s.draft = s.live.Clone()
	s.logger.Debug("EnterEdit: draft created", "bills_count", len(s.draft.Bills))
}

// AddBill adds a bill to the draft and returns a copy of it.
func (s *Session) AddBill(name string) (models.Bill, error) {
	if s.draft == nil {
		return models.Bill{}, ErrNotEditing
	}

	bill, err := ledger.AddBill(s.draft, name, s.ids)
	s.record(opAddBill, err)
	if err != nil {
		s.logger.Info("AddBill rejected", "name", strings.TrimSpace(name), "error", err)
		return models.Bill{}, err
	}

	s.logger.Info("Bill added to draft", "bill_id", bill.ID, "name", bill.Name)
	return *bill, nil
}

// DeleteBill removes a bill from the draft and returns the removed name.
// An ID that is not in the draft is reported with ledger.ErrNotFound and
// otherwise ignored; the draft stays open.
func (s *Session) DeleteBill(billID string) (string, error) {
	if s.draft == nil {
		return "", ErrNotEditing
	}

	name, err := ledger.DeleteBill(s.draft, billID)
	s.record(opDeleteBill, err)
	if err != nil {
		s.logger.Info("DeleteBill rejected", "bill_id", billID, "error", err)
		return "", err
	}

	s.logger.Info("Bill deleted from draft", "bill_id", billID, "name", name)
	return name, nil
}

// SetUserName sets the draft's user name. It is trimmed on commit.
func (s *Session) SetUserName(name string) error {
	if s.draft == nil {
		return ErrNotEditing
	}
	s.draft.UserName = name
	s.record(opRename, nil)
	return nil
}

// Discard drops the draft. The live document is unchanged.
func (s *Session) Discard() {
	if s.draft == nil {
		return
	}
	s.draft = nil
	s.record(opDiscard, nil)
	s.logger.Info("Draft discarded")
}

// Commit saves the draft and makes it the live document. If the save fails
// the live document is unchanged and the draft stays open.
func (s *Session) Commit(ctx context.Context) error {
	if s.draft == nil {
		return ErrNotEditing
	}

	next := s.draft.Clone()
	next.UserName = strings.TrimSpace(next.UserName)

	if err := s.store.Save(ctx, next); err != nil {
		s.record(opCommit, err)
		return fmt.Errorf("failed to commit settings: %w", err)
	}

	s.live = next
	s.draft = nil
	s.record(opCommit, nil)
	s.metrics.SetBills(len(s.live.Bills))
	s.logger.Info("Settings committed",
		"bills_count", len(s.live.Bills),
		"has_user_name", s.live.UserName != "",
	)
	return nil
}

// RecordPayment records a payment against a live bill and saves the
// document. today is the payment date as YYYY-MM-DD. Nothing changes if
// validation or the save fails.
func (s *Session) RecordPayment(ctx context.Context, billID, amountInput, today string) (models.Bill, error) {
	next := s.live.Clone()

	bill, err := ledger.RecordPayment(next, billID, amountInput, today)
	if err != nil {
		s.record(opRecordPayment, err)
		s.logger.Info("RecordPayment rejected", "bill_id", billID, "error", err)
		return models.Bill{}, err
	}
	paid := *bill

	if err := s.store.Save(ctx, next); err != nil {
		s.record(opRecordPayment, err)
		return models.Bill{}, fmt.Errorf("failed to record payment: %w", err)
	}

	s.live = next
	s.record(opRecordPayment, nil)
	s.logger.Info("Payment recorded",
		"bill_id", paid.ID,
		"name", paid.Name,
		"amount", *paid.LastPaidAmount,
		"date", paid.LastPaidDate,
		"draft_open", s.draft != nil,
	)
	return paid, nil
}

func (s *Session) record(op string, err error) {
	switch {
	case err == nil:
		s.metrics.Operation(op, metrics.OutcomeOK)
	case ledger.IsValidation(err):
		s.metrics.Operation(op, metrics.OutcomeInvalid)
	default:
		s.metrics.Operation(op, metrics.OutcomeError)
	}
}
