package ledger

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

// amountPattern accepts plain decimal text with an optional sign and a short
// exponent: "12", "12.5", ".5", "5.", "1e2".
var amountPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d{1,3})?$`)

// ParseAmount parses a payment amount typed by the user and rounds it to
// cents. Rounding is half-up on the decimal value as typed, so "12.005"
// becomes 12.01 and "12.004" becomes 12.00. Empty, non-numeric, and
// non-positive input is rejected with ErrInvalidAmount.
func ParseAmount(input string) (float64, error) {
	s := strings.TrimSpace(input)
	if !amountPattern.MatchString(s) {
		return 0, ErrInvalidAmount
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok || r.Sign() <= 0 {
		return 0, ErrInvalidAmount
	}

	// FloatString rounds halves away from zero; r is positive here.
	amount, err := strconv.ParseFloat(r.FloatString(2), 64)
	if err != nil || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}

// RecordPayment sets the bill's last payment to the rounded amount and today,
// and points the document's LastUpdated at it. today must be YYYY-MM-DD.
func RecordPayment(doc *models.Document, billID, amountInput, today string) (*models.Bill, error) {
	if len(doc.Bills) == 0 {
		return nil, ErrNoBills
	}
	if billID == "" {
		return nil, ErrNoBillSelected
	}
	amount, err := ParseAmount(amountInput)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(models.DateLayout, today); err != nil {
		return nil, ErrInvalidDate
	}
	bill, ok := doc.FindBill(billID)
	if !ok {
		return nil, ErrBillNotFound
	}

	bill.LastPaidAmount = &amount
	bill.LastPaidDate = today
	doc.LastUpdated = &models.LastUpdated{
		BillID:   bill.ID,
		BillName: bill.Name,
		Amount:   amount,
		Date:     today,
	}
	return bill, nil
}
