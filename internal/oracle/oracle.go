// Package oracle drives the installed iptables as the source of canonical
// ICMP numbers.
package oracle

import (
	"context"
	"fmt"
	"strings"
)

// Oracle is the filtering tool reduced to the three invocations the
// generator needs.
type Oracle interface {
	// HelpText returns the tool's help output for the ICMP match module.
	HelpText(ctx context.Context) (string, error)
	// Probe flushes the scratch chain and appends one rule matching expr.
	Probe(ctx context.Context, expr string) error
	// ListRules returns the scratch chain listed in numeric, non-resolving
	// form, one rule per line.
	ListRules(ctx context.Context) (string, error)
}

// ExecError reports the external tool missing, failing to start, or exiting
// non-zero.
type ExecError struct {
	Cmd string
	Err error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Cmd, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

func execErr(err error, argv ...string) *ExecError {
	return &ExecError{Cmd: strings.Join(argv, " "), Err: err}
}
