package runner

import "bytemomo/dnsblwatch/internal/domain"

// ListedIndex maps an IP to the zones that flagged it during one run. Zones
// are kept in observation order with no duplicates per IP. The index is
// mutated only inside the orchestrator's aggregation critical section and so
// carries no lock of its own.
type ListedIndex struct {
	order []string
	byIP  map[string][]string
}

func NewListedIndex() *ListedIndex {
	return &ListedIndex{byIP: make(map[string][]string)}
}

func (x *ListedIndex) record(ip, zone string) {
	zones, seen := x.byIP[ip]
	if !seen {
		x.order = append(x.order, ip)
	}
	for _, z := range zones {
		if z == zone {
			return
		}
	}
	x.byIP[ip] = append(zones, zone)
}

// Len returns the number of distinct listed IPs.
func (x *ListedIndex) Len() int {
	return len(x.byIP)
}

// Snapshot returns a deep copy of the index, safe to hand off once the run's
// concurrent phase has ended.
func (x *ListedIndex) Snapshot() map[string][]string {
	out := make(map[string][]string, len(x.byIP))
	for ip, zones := range x.byIP {
		out[ip] = append([]string(nil), zones...)
	}
	return out
}

// Items returns the listings in first-listed order, for the alert mail.
func (x *ListedIndex) Items() []domain.Listing {
	items := make([]domain.Listing, 0, len(x.order))
	for _, ip := range x.order {
		items = append(items, domain.Listing{
			IP:    ip,
			Zones: append([]string(nil), x.byIP[ip]...),
		})
	}
	return items
}
