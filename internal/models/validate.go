package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrInvalidDocument is wrapped by every error returned from Validate.
var ErrInvalidDocument = errors.New("invalid document")

// Validate checks the document against its schema: field rules declared in
// struct tags first, then the rules that span several bills.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	ids := make(map[string]struct{}, len(d.Bills))
	names := make(map[string]struct{}, len(d.Bills))
	for i, b := range d.Bills {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("%w: bill %d has a blank name", ErrInvalidDocument, i)
		}
		if _, dup := ids[b.ID]; dup {
			return fmt.Errorf("%w: duplicate bill id %q", ErrInvalidDocument, b.ID)
		}
		ids[b.ID] = struct{}{}

		key := NameKey(b.Name)
		if _, dup := names[key]; dup {
			return fmt.Errorf("%w: duplicate bill name %q", ErrInvalidDocument, b.Name)
		}
		names[key] = struct{}{}

		if (b.LastPaidAmount == nil) != (b.LastPaidDate == "") {
			return fmt.Errorf("%w: bill %q must have both a paid amount and a paid date, or neither", ErrInvalidDocument, b.Name)
		}
	}

	return nil
}
