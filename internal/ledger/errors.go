package ledger

import "errors"

// Kind classifies a ValidationError.
type Kind int

const (
	EmptyName Kind = iota + 1
	DuplicateName
	NotFound
	NoBills
	NoBillSelected
	InvalidAmount
	BillNotFound
	InvalidDate
)

func (k Kind) String() string {
	switch k {
	case EmptyName:
		return "EmptyName"
	case DuplicateName:
		return "DuplicateName"
	case NotFound:
		return "NotFound"
	case NoBills:
		return "NoBills"
	case NoBillSelected:
		return "NoBillSelected"
	case InvalidAmount:
		return "InvalidAmount"
	case BillNotFound:
		return "BillNotFound"
	case InvalidDate:
		return "InvalidDate"
	default:
		return "Unknown"
	}
}

// ValidationError reports input the user can correct. Operations that return
// one have not modified the document.
type ValidationError struct {
	Kind Kind
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Is matches any ValidationError of the same kind, so callers can compare
// against the sentinels below even when the message differs.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyName      = &ValidationError{Kind: EmptyName, Msg: "Enter a bill name first."}
	ErrDuplicateName  = &ValidationError{Kind: DuplicateName, Msg: "That bill name already exists."}
	ErrNotFound       = &ValidationError{Kind: NotFound, Msg: "That bill doesn't exist."}
	ErrNoBills        = &ValidationError{Kind: NoBills, Msg: "Add bill names in Settings first."}
	ErrNoBillSelected = &ValidationError{Kind: NoBillSelected, Msg: "Pick a bill."}
	ErrInvalidAmount  = &ValidationError{Kind: InvalidAmount, Msg: "Enter a valid amount greater than 0."}
	ErrBillNotFound   = &ValidationError{Kind: BillNotFound, Msg: "That bill wasn't found."}
	ErrInvalidDate    = &ValidationError{Kind: InvalidDate, Msg: "Enter the date as YYYY-MM-DD."}
)

// KindOf returns the kind of the first ValidationError in err's chain.
func KindOf(err error) (Kind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return 0, false
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := KindOf(err)
	return ok
}
