package physics

import "log/slog"

// ContactParams is the impulse response of a material pairing.
type ContactParams struct {
	Friction    float64 // [0,1]
	Restitution float64 // 0 = fully inelastic, 1 = perfectly elastic
}

// MaterialTable maps unordered pairs of material tags to contact parameters.
type MaterialTable struct {
	pairs    map[[2]string]ContactParams
	fallback ContactParams
}

// NewMaterialTable creates a table with the given fallback for unknown pairs.
// Friction and restitution are clamped into [0,1]; out-of-range registrations
// are logged, not rejected.
func NewMaterialTable(fallback ContactParams) *MaterialTable {
	return &MaterialTable{
		pairs:    make(map[[2]string]ContactParams),
		fallback: clampParams(fallback),
	}
}

// Set registers contact parameters for a pair of material tags.
// Lookup is symmetric: Set("a", "b", p) also answers ("b", "a").
func (t *MaterialTable) Set(a, b string, p ContactParams) {
	clamped := clampParams(p)
	if clamped != p {
		slog.Warn("contact material out of range, clamped",
			"a", a, "b", b,
			"friction", p.Friction, "restitution", p.Restitution)
	}
	t.pairs[pairKey(a, b)] = clamped
}

// Lookup returns the parameters for a pair of material tags, falling back to
// the table default for unregistered pairs.
func (t *MaterialTable) Lookup(a, b string) ContactParams {
	if p, ok := t.pairs[pairKey(a, b)]; ok {
		return p
	}
	return t.fallback
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func clampParams(p ContactParams) ContactParams {
	p.Friction = clamp01(p.Friction)
	p.Restitution = clamp01(p.Restitution)
	return p
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
