// Package gen runs the full pipeline: help text in, generated table out.
package gen

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"icmpgen/internal/family"
	"icmpgen/internal/help"
	"icmpgen/internal/logger"
	"icmpgen/internal/oracle"
	"icmpgen/internal/resolve"
	"icmpgen/internal/table"
)

// Format selects the serialization of the generated table.
type Format string

const (
	FormatPython Format = "python"
	FormatGo     Format = "go"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPython, FormatGo:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want python or go)", s)
}

// Options configure one generation run.
type Options struct {
	Family family.Family
	Format Format
	// Invocation is recorded in the header of Python output, conventionally
	// the name the binary was invoked under.
	Invocation string
}

// Run drives the pipeline against o and writes the serialized table to w.
// The table is staged in memory first: on any failure nothing reaches w.
func Run(ctx context.Context, o oracle.Oracle, opts Options, w io.Writer) error {
	logger.Log.Info("getting supported ICMP types and sub-types")
	buf, err := o.HelpText(ctx)
	if err != nil {
		return err
	}
	decls, err := help.Parse(buf, opts.Family.HelpMarker())
	if err != nil {
		return err
	}

	t, err := resolve.ResolveAll(ctx, o, decls)
	if err != nil {
		return err
	}
	logger.Log.Infof("resolved %d type names and %d code names", t.NumTypes(), t.NumCodes())

	eopts := table.EmitOptions{Base: opts.Family.BaseName(), Invocation: opts.Invocation}
	var out bytes.Buffer
	switch opts.Format {
	case FormatGo:
		err = table.WriteGo(&out, t, eopts)
	default:
		err = table.WritePython(&out, t, eopts)
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out.Bytes())
	return err
}
