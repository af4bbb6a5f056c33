// Package icmp exposes the ICMP type and code names understood by the
// iptables ICMP match as static lookup tables.
//
// The tables in table.go are generated against a stock iptables 1.8;
// regenerate them with:
//
//	icmpgen --format go --output icmp/table.go
package icmp

// TypeCode is a numeric ICMP type together with one of its codes.
type TypeCode struct {
	Type uint8
	Code uint8
}

// LookupType returns the numeric ICMP type for a name iptables accepts,
// canonical or alias.
func LookupType(name string) (uint8, bool) {
	v, ok := TypeByName[name]
	return v, ok
}

// LookupCode returns the numeric type and code for a code name.
func LookupCode(name string) (TypeCode, bool) {
	v, ok := CodeByName[name]
	if !ok {
		return TypeCode{}, false
	}
	return TypeCode{Type: v[0], Code: v[1]}, true
}
