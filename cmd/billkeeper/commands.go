package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/TheOriginalKDC/Bill-Keeper/internal/display"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/ledger"
	"github.com/TheOriginalKDC/Bill-Keeper/internal/models"
)

func runHome(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var g globalFlags
	flagSet := newFlagSet("home", &g, stderr)
	if done, err := parseFlags(flagSet, args); done {
		return err
	}

	a, err := openApp(ctx, &g, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	doc := a.session.Document()
	fmt.Fprintln(stdout, display.Greeting(doc.UserName))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Most recent updated bill")
	fmt.Fprintln(stdout, "  "+display.LastUpdatedSummary(doc))
	fmt.Fprintln(stdout)

	if len(doc.Bills) == 0 {
		fmt.Fprintln(stdout, display.NoBills)
		return nil
	}
	for _, b := range doc.Bills {
		fmt.Fprintln(stdout, b.Name)
		fmt.Fprintln(stdout, "  "+display.BillSummary(b))
	}
	return nil
}

func runBills(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var g globalFlags
	flagSet := newFlagSet("bills", &g, stderr)
	if done, err := parseFlags(flagSet, args); done {
		return err
	}

	a, err := openApp(ctx, &g, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	doc := a.session.Document()
	if len(doc.Bills) == 0 {
		fmt.Fprintln(stdout, "(No bills yet)")
		return nil
	}
	for _, b := range doc.Bills {
		fmt.Fprintf(stdout, "%s\t%s\n", b.ID, b.Name)
	}
	return nil
}

func runPay(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	var g globalFlags
	var billRef, amount, date string

	flagSet := newFlagSet("pay", &g, stderr)
	flagSet.StringVar(&billRef, "bill", "", "bill name or id")
	flagSet.StringVar(&amount, "amount", "", "amount paid, e.g. 42.50")
	flagSet.StringVar(&date, "date", "", "payment date as YYYY-MM-DD (default today)")
	if done, err := parseFlags(flagSet, args); done {
		return err
	}

	a, err := openApp(ctx, &g, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	if date == "" {
		date = display.Today(now())
	}

	billID := resolveBill(a.session.Document(), billRef)
	bill, err := a.session.RecordPayment(ctx, billID, amount, date)
	if err != nil {
		if ledger.IsValidation(err) {
			return &exitError{code: 1, msg: err.Error()}
		}
		return err
	}

	fmt.Fprintf(stdout, "%s: %s paid on %s.\n", bill.Name, display.Money(bill.LastPaidAmount), bill.LastPaidDate)
	return nil
}

func runSettings(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var g globalFlags
	var userName string
	var adds, deletes []string
	var dryRun bool

	flagSet := newFlagSet("settings", &g, stderr)
	flagSet.StringVar(&userName, "name", "", "set the user name")
	flagSet.StringArrayVar(&adds, "add", nil, "add a bill (repeatable)")
	flagSet.StringArrayVar(&deletes, "delete", nil, "delete a bill by name or id (repeatable)")
	flagSet.BoolVar(&dryRun, "dry-run", false, "show the result without saving")
	if done, err := parseFlags(flagSet, args); done {
		return err
	}

	a, err := openApp(ctx, &g, stderr)
	if err != nil {
		return err
	}
	defer a.close()

	s := a.session
	s.EnterEdit()

	rejected := 0
	if flagSet.Changed("name") {
		if err := s.SetUserName(userName); err != nil {
			return err
		}
	}
	for _, name := range adds {
		if _, err := s.AddBill(name); err != nil {
			if !ledger.IsValidation(err) {
				return err
			}
			fmt.Fprintf(stdout, "%s (%s)\n", err, strings.TrimSpace(name))
			rejected++
		}
	}
	for _, ref := range deletes {
		name, err := s.DeleteBill(resolveBill(s.Draft(), ref))
		if err != nil {
			if !ledger.IsValidation(err) {
				return err
			}
			fmt.Fprintf(stdout, "%s (%s)\n", err, ref)
			rejected++
			continue
		}
		fmt.Fprintf(stdout, "Deleted: %s\n", name)
	}

	draft := s.Draft()
	if dryRun {
		s.Discard()
		fmt.Fprintln(stdout, "Dry run, nothing saved.")
	} else if err := s.Commit(ctx); err != nil {
		return err
	}

	fmt.Fprintln(stdout, display.Greeting(draft.UserName))
	if len(draft.Bills) == 0 {
		fmt.Fprintln(stdout, "No bills yet.")
	}
	for _, b := range draft.Bills {
		fmt.Fprintln(stdout, "  "+b.Name)
	}

	if rejected > 0 {
		return &exitError{code: 1, msg: fmt.Sprintf("%d edit(s) rejected", rejected)}
	}
	return nil
}

// resolveBill maps a bill reference to an id: an exact id wins, then a name
// ignoring case. Unknown references are returned unchanged so the operation
// reports them.
func resolveBill(doc *models.Document, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if b, ok := doc.FindBill(ref); ok {
		return b.ID
	}
	if b, ok := doc.FindBillByName(ref); ok {
		return b.ID
	}
	return ref
}
