// Package family selects between the IPv4 and IPv6 flavours of the ICMP
// protocol and the iptables tooling that inspects them.
package family

import (
	"fmt"

	"github.com/coreos/go-iptables/iptables"
	"golang.org/x/sys/unix"
)

// Family is an address family the generator can run against.
type Family int

const (
	IPv4 Family = iota
	IPv6
)

// protocolNames maps IP protocol numbers to the argument iptables expects
// after -p.
var protocolNames = map[uint8]string{
	unix.IPPROTO_ICMP:   "icmp",
	unix.IPPROTO_ICMPV6: "icmpv6",
}

// Parse accepts the spellings used on the command line.
func Parse(s string) (Family, error) {
	switch s {
	case "inet", "ipv4":
		return IPv4, nil
	case "inet6", "ipv6":
		return IPv6, nil
	}
	return 0, fmt.Errorf("unknown address family %q (want inet or inet6)", s)
}

func (f Family) String() string {
	if f == IPv6 {
		return "inet6"
	}
	return "inet"
}

// Command returns the name of the filtering tool for this family.
func (f Family) Command() string {
	if f == IPv6 {
		return "ip6tables"
	}
	return "iptables"
}

// Protocol returns the go-iptables protocol selector.
func (f Family) Protocol() iptables.Protocol {
	if f == IPv6 {
		return iptables.ProtocolIPv6
	}
	return iptables.ProtocolIPv4
}

// ProtoNumber returns the IP protocol number carried by ICMP packets of this
// family.
func (f Family) ProtoNumber() uint8 {
	if f == IPv6 {
		return unix.IPPROTO_ICMPV6
	}
	return unix.IPPROTO_ICMP
}

// MatchProtocol returns the -p argument selecting the ICMP match module.
func (f Family) MatchProtocol() string {
	return protocolNames[f.ProtoNumber()]
}

// MatchFlag returns the match option that names an ICMP type.
func (f Family) MatchFlag() string {
	if f == IPv6 {
		return "--icmpv6-type"
	}
	return "--icmp-type"
}

// HelpMarker returns the header line that introduces the type inventory in
// the tool's help output.
func (f Family) HelpMarker() string {
	if f == IPv6 {
		return "Valid ICMPv6 Types:"
	}
	return "Valid ICMP Types:"
}

// BaseName returns the stem used to name generated artifacts, e.g. the
// "icmp" of icmp.py.
func (f Family) BaseName() string {
	if f == IPv6 {
		return "icmp6"
	}
	return "icmp"
}
