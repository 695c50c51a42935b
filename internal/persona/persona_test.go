package persona

import (
	"testing"
)

func TestLookup(t *testing.T) {
	t.Run("KnownPersonas", func(t *testing.T) {
		for _, id := range []string{"chef-auguste", "nonna-rosa", "flash", "alex"} {
			d := Lookup(id)
			if d.ID != id {
				t.Errorf("Lookup(%q) returned ID %q", id, d.ID)
			}
			if d.Text == "" {
				t.Errorf("Lookup(%q) returned empty directive text", id)
			}
			if d.TipCount <= 0 {
				t.Errorf("Lookup(%q) returned non-positive tip count %d", id, d.TipCount)
			}
		}
	})

	t.Run("UnknownResolvesToDefault", func(t *testing.T) {
		d := Lookup("gordon")
		if d.ID != DefaultID {
			t.Errorf("Expected default persona %q for unknown ID, got %q", DefaultID, d.ID)
		}
	})

	t.Run("EmptyResolvesToDefault", func(t *testing.T) {
		d := Lookup("")
		if d.ID != DefaultID {
			t.Errorf("Expected default persona %q for empty ID, got %q", DefaultID, d.ID)
		}
	})

	t.Run("Stable", func(t *testing.T) {
		first := Lookup("flash")
		second := Lookup("flash")
		if first.Text != second.Text {
			t.Error("Expected lookup to return the same directive text on every call")
		}
	})
}

func TestIDs(t *testing.T) {
	ids := IDs()
	if len(ids) != 4 {
		t.Fatalf("Expected 4 personas, got %d", len(ids))
	}
}
