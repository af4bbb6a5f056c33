// Package resolve recovers numeric ICMP values by probing the oracle with
// each discovered name and scanning the canonical listing it prints back.
package resolve

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"icmpgen/internal/help"
	"icmpgen/internal/logger"
	"icmpgen/internal/oracle"
	"icmpgen/internal/table"
)

// The numeric listing spells a probe rule's match as "icmptype N" or
// "icmptype N code M" ("ipv6-icmptype" for the v6 tool, which still
// contains the type marker).
const (
	typeMarker = "icmptype "
	codeMarker = "code "
)

// ProbeFormatError reports a rule listing without the expected marker or
// numeric value. It means the installed tool prints rules in a shape this
// generator does not understand, so the message carries the listing.
type ProbeFormatError struct {
	Marker  string
	Listing string
}

func (e *ProbeFormatError) Error() string {
	marker := strings.TrimSpace(e.Marker)
	listing := strings.Join(strings.Fields(e.Listing), " ")
	if len(listing) > 120 {
		listing = listing[:120] + "..."
	}
	if listing == "" {
		return fmt.Sprintf("rule listing carries no %q value (empty listing)", marker)
	}
	return fmt.Sprintf("rule listing carries no %q value: %s", marker, listing)
}

// TypeCodeMismatchError reports a code name resolving under a different type
// value than the declaration it was nested in.
type TypeCodeMismatchError struct {
	Name string
	Got  int
	Want int
}

func (e *TypeCodeMismatchError) Error() string {
	return fmt.Sprintf("invalid type %d for %s (expected %d)", e.Got, e.Name, e.Want)
}

// ResolveAll probes every declared type and code name and returns the built
// table. The first failure aborts the run with no partial result. Aliases
// are not probed; they take the value resolved for their canonical name.
func ResolveAll(ctx context.Context, o oracle.Oracle, decls []help.TypeDecl) (*table.Table, error) {
	t := table.New()
	for _, d := range decls {
		if d.Alias != "" {
			logger.Log.Debugf("found type %s (alias %s)", d.Name, d.Alias)
		} else {
			logger.Log.Debugf("found type %s", d.Name)
		}

		typeVal, err := resolveType(ctx, o, d.Name)
		if err != nil {
			return nil, err
		}
		logger.Log.Infof("resolved type %d for %s", typeVal, d.Name)
		t.PutType(d.Name, typeVal)
		if d.Alias != "" {
			t.PutType(d.Alias, typeVal)
		}

		for _, codeName := range d.Codes {
			gotType, codeVal, err := resolveCode(ctx, o, codeName)
			if err != nil {
				return nil, err
			}
			if gotType != typeVal {
				return nil, &TypeCodeMismatchError{Name: codeName, Got: gotType, Want: typeVal}
			}
			logger.Log.Infof("resolved type %d, code %d for %s", gotType, codeVal, codeName)
			t.PutCode(codeName, gotType, codeVal)
		}
	}
	return t, nil
}

func probe(ctx context.Context, o oracle.Oracle, expr string) (string, error) {
	if err := o.Probe(ctx, expr); err != nil {
		return "", err
	}
	return o.ListRules(ctx)
}

// resolveType probes with a type name. The numeric type runs from the type
// marker to the end of its line.
func resolveType(ctx context.Context, o oracle.Oracle, name string) (int, error) {
	listing, err := probe(ctx, o, name)
	if err != nil {
		return 0, err
	}
	val, _, err := scanValue(listing, typeMarker, 0, "\n")
	return val, err
}

// resolveCode probes with a code name. The listing spells the type first and
// the code after it, so the code marker is searched past the type's number.
func resolveCode(ctx context.Context, o oracle.Oracle, name string) (int, int, error) {
	listing, err := probe(ctx, o, name)
	if err != nil {
		return 0, 0, err
	}
	typeVal, pos, err := scanValue(listing, typeMarker, 0, " \n")
	if err != nil {
		return 0, 0, err
	}
	codeVal, _, err := scanValue(listing, codeMarker, pos, "\n")
	if err != nil {
		return 0, 0, err
	}
	return typeVal, codeVal, nil
}

// scanValue parses the unsigned integer following the first occurrence of
// marker at or after from. The number runs to the first byte in stops, or to
// the end of buf. It returns the value and the offset just past it.
func scanValue(buf, marker string, from int, stops string) (int, int, error) {
	p := strings.Index(buf[from:], marker)
	if p < 0 {
		return 0, 0, &ProbeFormatError{Marker: marker, Listing: buf}
	}
	start := from + p + len(marker)
	end := len(buf)
	if q := strings.IndexAny(buf[start:], stops); q >= 0 {
		end = start + q
	}
	n, err := strconv.Atoi(strings.TrimSpace(buf[start:end]))
	if err != nil || n < 0 {
		return 0, 0, &ProbeFormatError{Marker: marker, Listing: buf}
	}
	return n, end, nil
}
