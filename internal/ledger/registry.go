// Package ledger implements the operations that change a bill document:
// adding and deleting bills and recording payments.
//
// Every operation validates its input completely before touching the
// document, so a returned error means the document is unchanged. Operations
// mutate the document they are given; callers that need isolation (drafts,
// all-or-nothing saves) pass a clone.
package ledger

import (
	"slices"
	"strings"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/idgen"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

// Messages used by the delete screen, which words the shared kinds differently.
var (
	errNoBillsToDelete  = &ValidationError{Kind: NoBills, Msg: "No bills to delete."}
	errPickBillToDelete = &ValidationError{Kind: NoBillSelected, Msg: "Pick a bill to delete."}
)

// AddBill appends a new bill named name (trimmed) to the end of the registry
// and returns a pointer to it.
func AddBill(doc *models.Document, name string, ids idgen.Generator) (*models.Bill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if doc.HasBillNamed(name) {
		return nil, ErrDuplicateName
	}

	doc.Bills = append(doc.Bills, models.Bill{
		ID:   ids.NewID(),
		Name: name,
	})
	return &doc.Bills[len(doc.Bills)-1], nil
}

// DeleteBill removes the bill with the given ID and returns its name. If the
// last-updated pointer referenced the bill, it is cleared.
func DeleteBill(doc *models.Document, billID string) (string, error) {
	if len(doc.Bills) == 0 {
		return "", errNoBillsToDelete
	}
	if billID == "" {
		return "", errPickBillToDelete
	}

	idx := slices.IndexFunc(doc.Bills, func(b models.Bill) bool { return b.ID == billID })
	if idx < 0 {
		return "", ErrNotFound
	}

	name := doc.Bills[idx].Name
	doc.Bills = slices.Delete(doc.Bills, idx, idx+1)

	if doc.LastUpdated != nil && doc.LastUpdated.BillID == billID {
		doc.LastUpdated = nil
	}
	return name, nil
}
