package models

import "strings"

// DateLayout is the layout of every date stored in a Document.
const DateLayout = "2006-01-02"

// Bill is one recurring obligation the user keeps track of.
type Bill struct {
	// ID is the opaque identifier assigned at creation. It never changes.
	ID string `json:"id" validate:"required"`

	// Name is the display name, unique among bills ignoring case.
	Name string `json:"name" validate:"required"`

	// LastPaidAmount is the most recent payment, rounded to cents.
	// Nil until the first payment is recorded.
	LastPaidAmount *float64 `json:"lastPaidAmt" validate:"omitempty,gte=0"`

	// LastPaidDate is the date of the most recent payment (YYYY-MM-DD).
	// Empty until the first payment is recorded.
	LastPaidDate string `json:"lastPaidDate" validate:"omitempty,datetime=2006-01-02"`
}

// HasPayment reports whether a payment has been recorded against the bill.
func (b *Bill) HasPayment() bool {
	return b.LastPaidAmount != nil && b.LastPaidDate != ""
}

// LastUpdated caches the most recent payment event so the home screen can
// show it without scanning the registry.
type LastUpdated struct {
	BillID string `json:"billId" validate:"required"`

	// BillName is a snapshot of the bill name at payment time.
	BillName string  `json:"billName" validate:"required"`
	Amount   float64 `json:"amount" validate:"gte=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// Document is the complete persisted state.
type Document struct {
	UserName    string       `json:"userName"`
	Bills       []Bill       `json:"bills" validate:"dive"`
	LastUpdated *LastUpdated `json:"lastUpdated"`
}

// NewDocument returns the default empty document.
func NewDocument() *Document {
	return &Document{
		UserName: "",
		Bills:    []Bill{},
	}
}

// Clone returns a deep copy of d. Mutating the copy never affects d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}

	clone := &Document{
		UserName: d.UserName,
		Bills:    make([]Bill, len(d.Bills)),
	}
	for i, b := range d.Bills {
		clone.Bills[i] = b
		if b.LastPaidAmount != nil {
			amount := *b.LastPaidAmount
			clone.Bills[i].LastPaidAmount = &amount
		}
	}
	if d.LastUpdated != nil {
		lu := *d.LastUpdated
		clone.LastUpdated = &lu
	}
	return clone
}

// FindBill returns the bill with the given ID. The pointer aliases the
// document's slice and stays valid until the slice is modified.
func (d *Document) FindBill(id string) (*Bill, bool) {
	for i := range d.Bills {
		if d.Bills[i].ID == id {
			return &d.Bills[i], true
		}
	}
	return nil, false
}

// NameKey folds a bill name for uniqueness checks. Two names collide
// when their lowercase forms are equal.
func NameKey(name string) string {
	return strings.ToLower(name)
}

// FindBillByName looks a bill up by name, ignoring case.
func (d *Document) FindBillByName(name string) (*Bill, bool) {
	key := NameKey(name)
	for i := range d.Bills {
		if NameKey(d.Bills[i].Name) == key {
			return &d.Bills[i], true
		}
	}
	return nil, false
}

// HasBillNamed reports whether a bill with the given name exists, ignoring case.
func (d *Document) HasBillNamed(name string) bool {
	_, ok := d.FindBillByName(name)
	return ok
}
