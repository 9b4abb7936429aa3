package physics

import "testing"

func TestMaterialTableLookup(t *testing.T) {
	table := NewMaterialTable(ContactParams{Friction: 0.3, Restitution: 0.3})
	table.Set("model", "ground", ContactParams{Friction: 0.2, Restitution: 0.5})

	// Lookup is order-independent.
	ab := table.Lookup("model", "ground")
	ba := table.Lookup("ground", "model")
	if ab != ba {
		t.Errorf("asymmetric lookup: %+v vs %+v", ab, ba)
	}
	if ab.Restitution != 0.5 {
		t.Errorf("restitution = %v, want 0.5", ab.Restitution)
	}

	// Unknown pairs fall back.
	fb := table.Lookup("model", "wall")
	if fb.Friction != 0.3 || fb.Restitution != 0.3 {
		t.Errorf("fallback = %+v, want the table default", fb)
	}
}

func TestMaterialTableClampsOnSet(t *testing.T) {
	table := NewMaterialTable(ContactParams{})
	table.Set("a", "b", ContactParams{Friction: 3, Restitution: -1})

	got := table.Lookup("a", "b")
	if got.Friction != 1 || got.Restitution != 0 {
		t.Errorf("stored params = %+v, want clamped to friction 1 restitution 0", got)
	}
}
