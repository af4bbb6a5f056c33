package table

import (
	"fmt"
	"io"
	"strconv"
)

// EmitOptions name the generated artifact.
type EmitOptions struct {
	// Base is the artifact stem, e.g. the "icmp" of icmp.py or of
	// package icmp.
	Base string
	// Invocation is recorded in the header comment of Python output.
	Invocation string
}

// WritePython serializes t as Python assignment statements. Types and codes
// are interleaved by ascending type value; on a tie the type assignment comes
// first.
func WritePython(w io.Writer, t *Table, opts EmitOptions) error {
	types := t.TypeEntries()
	codes := t.CodeEntries()

	var err error
	pr := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr("# %s.py\n", opts.Base)
	pr("# generated by %s\n", opts.Invocation)
	pr("ICMP_TYPE = {}\n")
	pr("ICMP_TYPE_CODE = {}\n")

	for len(types) > 0 && len(codes) > 0 {
		if types[0].Value <= codes[0].Type {
			pr("ICMP_TYPE[%q] = %d\n", types[0].Name, types[0].Value)
			types = types[1:]
		} else {
			pr("ICMP_TYPE_CODE[%q] = (%d, %d,)\n", codes[0].Name, codes[0].Type, codes[0].Code)
			codes = codes[1:]
		}
	}
	for _, e := range types {
		pr("ICMP_TYPE[%q] = %d\n", e.Name, e.Value)
	}
	for _, e := range codes {
		pr("ICMP_TYPE_CODE[%q] = (%d, %d,)\n", e.Name, e.Type, e.Code)
	}
	return err
}

// WriteGo serializes t as a self-contained Go source file holding two map
// variables. The output is already gofmt-formatted: entries are sorted
// numerically and values aligned one space past the widest key.
func WriteGo(w io.Writer, t *Table, opts EmitOptions) error {
	types := t.TypeEntries()
	codes := t.CodeEntries()

	var err error
	pr := func(format string, args ...interface{}) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr("// Code generated by icmpgen; DO NOT EDIT.\n\n")
	pr("package %s\n\n", opts.Base)

	pr("// TypeByName maps accepted type names to their numeric ICMP type.\n")
	pr("// Aliases share the value of their canonical name.\n")
	if len(types) == 0 {
		pr("var TypeByName = map[string]uint8{}\n")
	} else {
		pr("var TypeByName = map[string]uint8{\n")
		width := 0
		keys := make([]string, len(types))
		for i, e := range types {
			keys[i] = strconv.Quote(e.Name) + ":"
			if len(keys[i]) > width {
				width = len(keys[i])
			}
		}
		for i, e := range types {
			pr("\t%-*s %d,\n", width, keys[i], e.Value)
		}
		pr("}\n")
	}

	pr("\n")
	pr("// CodeByName maps accepted code names to their numeric ICMP type and\n")
	pr("// code pair.\n")
	if len(codes) == 0 {
		pr("var CodeByName = map[string][2]uint8{}\n")
	} else {
		pr("var CodeByName = map[string][2]uint8{\n")
		width := 0
		keys := make([]string, len(codes))
		for i, e := range codes {
			keys[i] = strconv.Quote(e.Name) + ":"
			if len(keys[i]) > width {
				width = len(keys[i])
			}
		}
		for i, e := range codes {
			pr("\t%-*s {%d, %d},\n", width, keys[i], e.Type, e.Code)
		}
		pr("}\n")
	}
	return err
}
