// Package help extracts the ICMP type inventory from iptables help output.
//
// The inventory follows a marker line such as "Valid ICMP Types:". Every
// unindented line after it declares a type name, optionally carrying an
// alias in parentheses; indented lines name the codes of the type declared
// above them. The block runs to the end of the output.
package help

import (
	"fmt"
	"regexp"
	"strings"
)

// aliasRE matches a declaration carrying an alias, e.g. "echo-request (ping)".
var aliasRE = regexp.MustCompile(`^([\w-]+) \((.*)\)$`)

// TypeDecl is one declared type name together with its alias and the code
// names nested under it. Declarations keep their input order.
type TypeDecl struct {
	Name  string   `json:"name"`
	Alias string   `json:"alias,omitempty"`
	Codes []string `json:"codes,omitempty"`
}

// HeaderError reports help output without the expected inventory marker,
// which means the tool is not the iptables this generator understands.
type HeaderError struct {
	Marker string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("help output has no %q header", e.Marker)
}

// OrphanCodeError reports an indented code line with no type declaration
// above it.
type OrphanCodeError struct {
	Line string
}

func (e *OrphanCodeError) Error() string {
	return fmt.Sprintf("code name %q appears before any type declaration", strings.TrimSpace(e.Line))
}

// Parse returns the type declarations following marker in buf, in input
// order. Text before the marker is ignored. Blank lines inside the block are
// skipped.
func Parse(buf, marker string) ([]TypeDecl, error) {
	p := strings.Index(buf, marker)
	if p < 0 {
		return nil, &HeaderError{Marker: marker}
	}
	// Trim surrounding newlines only: a leading space on the first line is
	// significant, it would mark an orphaned code name.
	body := strings.Trim(buf[p+len(marker):], "\n")

	var decls []TypeDecl
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' {
			decl := TypeDecl{Name: line}
			if m := aliasRE.FindStringSubmatch(line); m != nil {
				decl.Name, decl.Alias = m[1], m[2]
			}
			decls = append(decls, decl)
			continue
		}
		if len(decls) == 0 {
			return nil, &OrphanCodeError{Line: line}
		}
		d := &decls[len(decls)-1]
		d.Codes = append(d.Codes, strings.TrimSpace(line))
	}
	return decls, nil
}
