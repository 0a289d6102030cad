// billkeeper is the command-line front end for Bill Keeper.
//
// Each invocation shows or acts on one screen of the original app:
//
//	billkeeper home                         greeting, last update, bills
//	billkeeper bills                        bill ids and names
//	billkeeper pay --bill Rent --amount 42  record a payment
//	billkeeper settings --add Rent --name Alex
//
// Settings edits go to a draft that is committed when the command finishes,
// or discarded with --dry-run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now)
	if err != nil {
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			if msg := err.Error(); msg != "" {
				fmt.Fprintln(os.Stderr, msg)
			}
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries a process exit code. Its message has already been
// shown to the user when empty.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func (e *exitError) ExitCode() int { return e.code }

const usage = `usage: billkeeper <command> [flags]

commands:
  home        show the home screen
  bills       list bill ids and names
  pay         record a payment against a bill
  settings    edit the user name and bill list

global flags:
  --config string        YAML config file
  --db string            SQLite database path
  --log-level string     debug, info, warn or error
  --metrics-file string  write Prometheus metrics to this file on exit

run "billkeeper <command> --help" for command flags
`

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return &exitError{code: 2}
	}

	command, rest := args[0], args[1:]
	switch command {
	case "home":
		return runHome(ctx, rest, stdout, stderr)
	case "bills":
		return runBills(ctx, rest, stdout, stderr)
	case "pay":
		return runPay(ctx, rest, stdout, stderr, now)
	case "settings":
		return runSettings(ctx, rest, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stderr, usage)
		return &exitError{code: 2, msg: fmt.Sprintf("unknown command %q", command)}
	}
}
