package display

import (
	"math"
	"testing"
	"time"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

func ptr(v float64) *float64 { return &v }

func TestMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount *float64
		want   string
	}{
		{"nil", nil, "$0.00"},
		{"NaN", ptr(math.NaN()), "$0.00"},
		{"infinity", ptr(math.Inf(1)), "$0.00"},
		{"zero", ptr(0), "$0.00"},
		{"whole dollars", ptr(12), "$12.00"},
		{"cents", ptr(150.5), "$150.50"},
		{"thousands", ptr(1234.56), "$1,234.56"},
		{"millions", ptr(1234567.8), "$1,234,567.80"},
		{"negative", ptr(-3), "-$3.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Money(tt.amount); got != tt.want {
				t.Errorf("Money() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	ts := time.Date(2024, time.March, 1, 23, 30, 0, 0, loc)
	if got := Today(ts); got != "2024-03-01" {
		t.Errorf("Today() = %q, want 2024-03-01", got)
	}
}

func TestHomeScreenText(t *testing.T) {
	if got := Greeting("  "); got != "Hello!" {
		t.Errorf("Greeting(blank) = %q", got)
	}
	if got := Greeting(" Alex "); got != "Hello Alex!" {
		t.Errorf("Greeting(Alex) = %q", got)
	}

	doc := models.NewDocument()
	if got := LastUpdatedSummary(doc); got != "No updates yet." {
		t.Errorf("LastUpdatedSummary(empty) = %q", got)
	}

	doc.LastUpdated = &models.LastUpdated{BillID: "b1", BillName: "Rent", Amount: 150.5, Date: "2024-03-01"}
	if got, want := LastUpdatedSummary(doc), "Last updated: Rent had $150.50 paid on 2024-03-01."; got != want {
		t.Errorf("LastUpdatedSummary() = %q, want %q", got, want)
	}

	if got := BillSummary(models.Bill{ID: "b2", Name: "Power"}); got != "No payment recorded yet." {
		t.Errorf("BillSummary(unpaid) = %q", got)
	}
	paid := models.Bill{ID: "b1", Name: "Rent", LastPaidAmount: ptr(1500), LastPaidDate: "2024-03-01"}
	if got, want := BillSummary(paid), "$1,500.00 was paid on 2024-03-01."; got != want {
		t.Errorf("BillSummary(paid) = %q, want %q", got, want)
	}
}
