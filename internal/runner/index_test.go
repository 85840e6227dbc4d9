package runner

import (
	"testing"
)

func TestListedIndexDeduplicatesZones(t *testing.T) {
	t.Parallel()

	idx := NewListedIndex()
	idx.record("1.2.3.4", "a.example.com")
	idx.record("1.2.3.4", "a.example.com")
	idx.record("1.2.3.4", "b.example.com")

	if idx.Len() != 1 {
		t.Fatalf("expected 1 listed IP, got %d", idx.Len())
	}
	items := idx.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if got := items[0].Zones; len(got) != 2 || got[0] != "a.example.com" || got[1] != "b.example.com" {
		t.Errorf("unexpected zones: %v", got)
	}
}

func TestListedIndexKeepsFirstListedOrder(t *testing.T) {
	t.Parallel()

	idx := NewListedIndex()
	idx.record("9.9.9.9", "bl.example.com")
	idx.record("1.1.1.1", "bl.example.com")
	idx.record("9.9.9.9", "other.example.com")
	idx.record("5.5.5.5", "bl.example.com")

	items := idx.Items()
	want := []string{"9.9.9.9", "1.1.1.1", "5.5.5.5"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, ip := range want {
		if items[i].IP != ip {
			t.Errorf("item %d: expected %s, got %s", i, ip, items[i].IP)
		}
	}
}

func TestListedIndexSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	idx := NewListedIndex()
	idx.record("1.2.3.4", "a.example.com")

	snap := idx.Snapshot()
	snap["1.2.3.4"][0] = "mutated"
	snap["5.6.7.8"] = []string{"injected"}

	if idx.Len() != 1 {
		t.Errorf("snapshot mutation leaked a new IP into the index")
	}
	if idx.Items()[0].Zones[0] != "a.example.com" {
		t.Errorf("snapshot mutation leaked into the index zones")
	}
}
