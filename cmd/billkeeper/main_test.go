package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type cli struct {
	t      *testing.T
	dbPath string
	now    time.Time
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("BILLKEEPER_DB_PATH", "")
	t.Setenv("BILLKEEPER_LOG_LEVEL", "")
	t.Setenv("BILLKEEPER_METRICS_FILE", "")
	return &cli{
		t:      t,
		dbPath: filepath.Join(t.TempDir(), "billkeeper.db"),
		now:    time.Date(2024, time.March, 1, 9, 0, 0, 0, time.Local),
	}
}

// exec runs one command against the test database and returns its stdout.
func (c *cli) exec(args ...string) (string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	args = append(args, "--db", c.dbPath, "--log-level", "error")
	err := run(context.Background(), args, &stdout, &stderr, func() time.Time { return c.now })
	return stdout.String(), err
}

func (c *cli) mustExec(args ...string) string {
	c.t.Helper()
	out, err := c.exec(args...)
	if err != nil {
		c.t.Fatalf("%v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}

func TestHomeOnEmptyDatabase(t *testing.T) {
	c := newCLI(t)

	out := c.mustExec("home")
	for _, want := range []string{"Hello!", "No updates yet.", "No bills added yet."} {
		if !strings.Contains(out, want) {
			t.Errorf("home output missing %q:\n%s", want, out)
		}
	}
}

func TestSettingsAndPaymentFlow(t *testing.T) {
	c := newCLI(t)

	out := c.mustExec("settings", "--name", " Alex ", "--add", "Rent", "--add", "Power")
	if !strings.Contains(out, "Hello Alex!") {
		t.Errorf("settings output missing greeting:\n%s", out)
	}

	out = c.mustExec("pay", "--bill", "rent", "--amount", "150.5")
	if want := "Rent: $150.50 paid on 2024-03-01."; !strings.Contains(out, want) {
		t.Errorf("pay output = %q, want %q", out, want)
	}

	out = c.mustExec("home")
	for _, want := range []string{
		"Hello Alex!",
		"Last updated: Rent had $150.50 paid on 2024-03-01.",
		"$150.50 was paid on 2024-03-01.",
		"No payment recorded yet.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("home output missing %q:\n%s", want, out)
		}
	}

	out = c.mustExec("settings", "--delete", "Rent")
	if !strings.Contains(out, "Deleted: Rent") {
		t.Errorf("settings output missing delete confirmation:\n%s", out)
	}
	out = c.mustExec("home")
	if !strings.Contains(out, "No updates yet.") {
		t.Errorf("deleting the last updated bill should clear it:\n%s", out)
	}
	if strings.Contains(out, "Rent") {
		t.Errorf("Rent still listed after delete:\n%s", out)
	}
}

func TestSettingsDryRunSavesNothing(t *testing.T) {
	c := newCLI(t)
	c.mustExec("settings", "--add", "Rent")

	out := c.mustExec("settings", "--add", "Water", "--name", "Sam", "--dry-run")
	if !strings.Contains(out, "Dry run, nothing saved.") {
		t.Errorf("missing dry run notice:\n%s", out)
	}

	out = c.mustExec("bills")
	if strings.Contains(out, "Water") || !strings.Contains(out, "Rent") {
		t.Errorf("unexpected bills after dry run:\n%s", out)
	}
	if out := c.mustExec("home"); !strings.Contains(out, "Hello!") {
		t.Errorf("user name changed by dry run:\n%s", out)
	}
}

func TestSettingsReportsRejectedEdits(t *testing.T) {
	c := newCLI(t)
	c.mustExec("settings", "--add", "Rent")

	out, err := c.exec("settings", "--add", " rent ", "--add", "Gas", "--delete", "Water")
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d (err %v), want 1", exitCode(err), err)
	}
	if !strings.Contains(out, "That bill name already exists.") {
		t.Errorf("missing duplicate message:\n%s", out)
	}
	if !strings.Contains(out, "That bill doesn't exist.") {
		t.Errorf("missing not-found message:\n%s", out)
	}

	if out := c.mustExec("bills"); !strings.Contains(out, "Gas") {
		t.Errorf("accepted edits should still be committed:\n%s", out)
	}
}

func TestPayValidation(t *testing.T) {
	c := newCLI(t)

	if _, err := c.exec("pay", "--bill", "Rent", "--amount", "10"); err == nil || err.Error() != "Add bill names in Settings first." {
		t.Errorf("pay with no bills: %v", err)
	}

	c.mustExec("settings", "--add", "Rent")

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--amount", "10"}, "Pick a bill."},
		{[]string{"--bill", "Rent", "--amount", "abc"}, "Enter a valid amount greater than 0."},
		{[]string{"--bill", "Rent", "--amount", "0"}, "Enter a valid amount greater than 0."},
		{[]string{"--bill", "Water", "--amount", "10"}, "That bill wasn't found."},
		{[]string{"--bill", "Rent", "--amount", "10", "--date", "01/03/2024"}, "Enter the date as YYYY-MM-DD."},
	}
	for _, tt := range tests {
		_, err := c.exec(append([]string{"pay"}, tt.args...)...)
		if exitCode(err) != 1 || err.Error() != tt.want {
			t.Errorf("pay %v: err = %v, want %q with exit code 1", tt.args, err, tt.want)
		}
	}

	out := c.mustExec("pay", "--bill", "Rent", "--amount", "12.005", "--date", "2024-02-29")
	if !strings.Contains(out, "$12.01 paid on 2024-02-29") {
		t.Errorf("unexpected pay output: %s", out)
	}
}

func TestMetricsFile(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "billkeeper.prom")

	c.mustExec("settings", "--add", "Rent", "--metrics-file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), `billkeeper_operations_total{operation="commit",outcome="ok"} 1`) {
		t.Errorf("metrics file missing commit counter:\n%s", data)
	}
}

func TestUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	now := func() time.Time { return time.Now() }

	if err := run(context.Background(), nil, &stdout, &stderr, now); exitCode(err) != 2 {
		t.Errorf("no command: err = %v, want exit code 2", err)
	}
	if err := run(context.Background(), []string{"launch"}, &stdout, &stderr, now); exitCode(err) != 2 {
		t.Errorf("unknown command: err = %v, want exit code 2", err)
	}
	stderr.Reset()
	err := run(context.Background(), []string{"home", "--bogus"}, &stdout, &stderr, now)
	if exitCode(err) != 2 {
		t.Errorf("unknown flag: err = %v, want exit code 2", err)
	}
	if err != nil && err.Error() != "" {
		t.Errorf("unknown flag: error message %q would be printed twice", err.Error())
	}
	if n := strings.Count(stderr.String(), "unknown flag: --bogus"); n != 1 {
		t.Errorf("unknown flag reported %d times in stderr:\n%s", n, stderr.String())
	}
	if err := run(context.Background(), []string{"home", "--help"}, &stdout, &stderr, now); err != nil {
		t.Errorf("--help: err = %v, want nil", err)
	}
	if err := run(context.Background(), []string{"home", "--log-level", "loud", "--db", filepath.Join(t.TempDir(), "x.db")}, &stdout, &stderr, now); err == nil {
		t.Error("expected invalid log level to fail")
	}
}
