package csvlists

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}
	return path
}

func TestLoadFirstColumnOnly(t *testing.T) {
	t.Parallel()

	path := writeList(t, "bl.example.com,some comment\nxbl.example.com\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	want := []string{"bl.example.com", "xbl.example.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestLoadSkipsCommentsAndBlanks(t *testing.T) {
	t.Parallel()

	path := writeList(t, "# zones under test\n\nbl.example.com\n   \n# trailing\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "bl.example.com" {
		t.Errorf("expected only the one zone, got %v", got)
	}
}

func TestLoadTrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := writeList(t, "  1.2.3.4  \n5.6.7.8\n")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(got) != 2 || got[0] != "1.2.3.4" || got[1] != "5.6.7.8" {
		t.Errorf("unexpected values: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
