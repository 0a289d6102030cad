package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.Operation("add_bill", OutcomeOK)
	m.Operation("add_bill", OutcomeOK)
	m.Operation("add_bill", OutcomeInvalid)
	m.LoadFallback("parse_error")
	m.Save(nil)
	m.Save(errors.New("disk full"))
	m.SetBills(3)

	if got := testutil.ToFloat64(m.operations.WithLabelValues("add_bill", OutcomeOK)); got != 2 {
		t.Errorf("add_bill ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("add_bill", OutcomeInvalid)); got != 1 {
		t.Errorf("add_bill invalid = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.loadFallbacks.WithLabelValues("parse_error")); got != 1 {
		t.Errorf("parse_error fallbacks = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.saves.WithLabelValues(OutcomeError)); got != 1 {
		t.Errorf("failed saves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.bills); got != 3 {
		t.Errorf("bills = %v, want 3", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	m.Operation("add_bill", OutcomeOK)
	m.LoadFallback("invalid")
	m.Save(nil)
	m.SetBills(1)
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("WriteTextfile on nil metrics failed: %v", err)
	}
	if m.Registry() != nil {
		t.Error("expected nil registry")
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.Operation("record_payment", OutcomeOK)
	m.SetBills(2)

	path := filepath.Join(t.TempDir(), "billkeeper.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read metrics file: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`billkeeper_operations_total{operation="record_payment",outcome="ok"} 1`,
		"billkeeper_bills 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics file missing %q:\n%s", want, text)
		}
	}
}
