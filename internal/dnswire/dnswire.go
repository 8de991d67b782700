// Package dnswire builds and parses the RFC 1035 wire-format DNS
// messages a DoH request exchanges, using github.com/miekg/dns for the
// actual packing rather than hand-rolled byte layout.
package dnswire

import (
	"fmt"
	"net"

	"github.com/miekg/dns"
)

// QueryID is fixed to 0 for every DoH request, per RFC 8484 §4.1: the
// ID field is meaningless over HTTP, where the request/response pairing
// is implicit in the transport, not the message content.
const QueryID = 0

// BuildQuery returns the wire-format bytes of a single-question query
// for hostname, of the given record type (dns.TypeA or dns.TypeAAAA).
func BuildQuery(hostname string, qtype uint16) ([]byte, error) {
	msg := new(dns.Msg)
	msg.Id = QueryID
	msg.RecursionDesired = true
	msg.SetQuestion(dns.Fqdn(hostname), qtype)
	return msg.Pack()
}

// ParseAddrs extracts every A/AAAA record's IP address from a wire-format
// DNS response.
func ParseAddrs(wire []byte) ([]net.IP, error) {
	msg := new(dns.Msg)
	if err := msg.Unpack(wire); err != nil {
		return nil, fmt.Errorf("dnswire: unpack response: %w", err)
	}
	if msg.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("dnswire: response rcode %s", dns.RcodeToString[msg.Rcode])
	}

	var addrs []net.IP
	for _, rr := range msg.Answer {
		switch record := rr.(type) {
		case *dns.A:
			addrs = append(addrs, record.A)
		case *dns.AAAA:
			addrs = append(addrs, record.AAAA)
		}
	}
	return addrs, nil
}
