package family

import (
	"testing"

	"github.com/coreos/go-iptables/iptables"
	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Family
		ok   bool
	}{
		{"inet", IPv4, true},
		{"ipv4", IPv4, true},
		{"inet6", IPv6, true},
		{"ipv6", IPv6, true},
		{"", 0, false},
		{"inet5", 0, false},
		{"INET", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIPv4Values(t *testing.T) {
	assert.Equal(t, "inet", IPv4.String())
	assert.Equal(t, "iptables", IPv4.Command())
	assert.Equal(t, iptables.ProtocolIPv4, IPv4.Protocol())
	assert.Equal(t, uint8(unix.IPPROTO_ICMP), IPv4.ProtoNumber())
	assert.Equal(t, "icmp", IPv4.MatchProtocol())
	assert.Equal(t, "--icmp-type", IPv4.MatchFlag())
	assert.Equal(t, "Valid ICMP Types:", IPv4.HelpMarker())
	assert.Equal(t, "icmp", IPv4.BaseName())
}

func TestIPv6Values(t *testing.T) {
	assert.Equal(t, "inet6", IPv6.String())
	assert.Equal(t, "ip6tables", IPv6.Command())
	assert.Equal(t, iptables.ProtocolIPv6, IPv6.Protocol())
	assert.Equal(t, uint8(unix.IPPROTO_ICMPV6), IPv6.ProtoNumber())
	assert.Equal(t, "icmpv6", IPv6.MatchProtocol())
	assert.Equal(t, "--icmpv6-type", IPv6.MatchFlag())
	assert.Equal(t, "Valid ICMPv6 Types:", IPv6.HelpMarker())
	assert.Equal(t, "icmp6", IPv6.BaseName())
}
