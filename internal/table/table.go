// Package table collects resolved ICMP names and serializes them as lookup
// tables.
package table

import "sort"

// TypeEntry is one resolved type name.
type TypeEntry struct {
	Name  string
	Value int
}

// CodeEntry is one resolved code name with the type value it belongs to.
type CodeEntry struct {
	Name string
	Type int
	Code int
}

// Table holds the resolved names of one generator run. Insertion order does
// not matter; serialization sorts numerically.
type Table struct {
	typeByName map[string]int
	codeByName map[string][2]int
}

func New() *Table {
	return &Table{
		typeByName: make(map[string]int),
		codeByName: make(map[string][2]int),
	}
}

// PutType records a type name. Aliases are recorded as separate names with
// the same value.
func (t *Table) PutType(name string, value int) {
	t.typeByName[name] = value
}

// PutCode records a code name under its enclosing type value.
func (t *Table) PutCode(name string, typ, code int) {
	t.codeByName[name] = [2]int{typ, code}
}

func (t *Table) NumTypes() int { return len(t.typeByName) }

func (t *Table) NumCodes() int { return len(t.codeByName) }

// TypeEntries returns every type name ordered by value, then name.
func (t *Table) TypeEntries() []TypeEntry {
	out := make([]TypeEntry, 0, len(t.typeByName))
	for name, value := range t.typeByName {
		out = append(out, TypeEntry{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CodeEntries returns every code name ordered by type, code, then name.
func (t *Table) CodeEntries() []CodeEntry {
	out := make([]CodeEntry, 0, len(t.codeByName))
	for name, tc := range t.codeByName {
		out = append(out, CodeEntry{Name: name, Type: tc[0], Code: tc[1]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out
}
