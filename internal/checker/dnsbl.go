// Package checker performs the actual DNSBL lookups. A listing query prepends
// the reversed IP to the blacklist zone and asks for A records; an answer
// means the IP is listed and the returned addresses encode the listing reason.
package checker

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"

	"bytemomo/dnsblwatch/internal/domain"
)

const DefaultNameserver = "208.67.222.222:53"

// Checker resolves DNSBL listing queries against a fixed nameserver. Safe for
// concurrent use; every Check is an independent exchange.
type Checker struct {
	nameserver string
	client     *dns.Client
}

func New(nameserver string, timeout time.Duration) *Checker {
	if nameserver == "" {
		nameserver = DefaultNameserver
	}
	if _, _, err := net.SplitHostPort(nameserver); err != nil {
		nameserver = net.JoinHostPort(nameserver, "53")
	}
	return &Checker{
		nameserver: nameserver,
		client:     &dns.Client{Timeout: timeout},
	}
}

// Check queries zone for the given IP. NXDOMAIN and empty answers mean the IP
// is not listed; transport errors and other failure rcodes are returned as
// errors so the caller can log them without treating the IP as clean.
func (c *Checker) Check(ctx context.Context, ip, zone string) (domain.Outcome, error) {
	rev, err := reverseAddr(ip)
	if err != nil {
		return domain.Outcome{}, err
	}

	query := rev + "." + dns.Fqdn(zone)
	msg := new(dns.Msg)
	msg.SetQuestion(query, dns.TypeA)

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.nameserver)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("query %s: %w", query, err)
	}

	switch resp.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return domain.Outcome{IP: ip, Zone: zone}, nil
	default:
		return domain.Outcome{}, fmt.Errorf("query %s: unexpected rcode %s", query, dns.RcodeToString[resp.Rcode])
	}

	var addrs []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}
	if len(addrs) == 0 {
		return domain.Outcome{IP: ip, Zone: zone}, nil
	}

	return domain.Outcome{
		IP:     ip,
		Zone:   zone,
		Listed: true,
		Detail: strings.Join(addrs, " "),
	}, nil
}

// reverseAddr returns the reversed-label form of ip used in DNSBL queries:
// octets reversed for IPv4 (IPv4-mapped IPv6 included), nibbles reversed for
// IPv6, without the .arpa suffix.
func reverseAddr(ip string) (string, error) {
	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		return "", fmt.Errorf("invalid IP %q: %w", ip, err)
	}
	arpa = strings.TrimSuffix(arpa, ".")
	if rev, ok := strings.CutSuffix(arpa, ".in-addr.arpa"); ok {
		return rev, nil
	}
	if rev, ok := strings.CutSuffix(arpa, ".ip6.arpa"); ok {
		return rev, nil
	}
	return arpa, nil
}
