// Package display renders document values as the text shown on the home
// and payment screens. Nothing here affects stored data.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

const zeroMoney = "$0.00"

// Money formats an amount in US dollars with thousands separators, e.g.
// "$1,234.50". A nil, NaN, or infinite amount renders as "$0.00".
func Money(amount *float64) string {
	if amount == nil {
		return zeroMoney
	}
	return MoneyValue(*amount)
}

// MoneyValue is Money for a plain float.
func MoneyValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return zeroMoney
	}
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// Today returns t's calendar date as YYYY-MM-DD in t's location.
func Today(t time.Time) string {
	return t.Format(models.DateLayout)
}

// Greeting is the home screen header.
func Greeting(userName string) string {
	name := strings.TrimSpace(userName)
	if name == "" {
		return "Hello!"
	}
	return fmt.Sprintf("Hello %s!", name)
}

// LastUpdatedSummary describes the most recent payment.
func LastUpdatedSummary(doc *models.Document) string {
	lu := doc.LastUpdated
	if lu == nil {
		return "No updates yet."
	}
	return fmt.Sprintf("Last updated: %s had %s paid on %s.", lu.BillName, MoneyValue(lu.Amount), lu.Date)
}

// BillSummary describes a bill's last payment.
func BillSummary(b models.Bill) string {
	if !b.HasPayment() {
		return "No payment recorded yet."
	}
	return fmt.Sprintf("%s was paid on %s.", Money(b.LastPaidAmount), b.LastPaidDate)
}

// NoBills is shown on the home screen when the registry is empty.
const NoBills = "No bills added yet. Hit Settings and add a few bill names."
