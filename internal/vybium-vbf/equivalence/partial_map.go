package equivalence

// partialMap is a GF(2)-linear map known on a subspace of its domain. The
// known domain points always form a subspace and fwd restricted to them is
// linear, so fwd/inv stay consistent with closure under XOR.
type partialMap struct {
	fwd   []uint32 // 0 means unassigned, except fwd[0] = 0
	inv   []uint32
	known []uint32 // assigned domain points, starting with 0
}

type pair struct {
	from, to uint32
}

func newPartialMap(size uint32) partialMap {
	known := make([]uint32, 1, size)
	return partialMap{
		fwd:   make([]uint32, size),
		inv:   make([]uint32, size),
		known: known,
	}
}

// clone returns an independent deep copy.
func (m partialMap) clone() partialMap {
	known := make([]uint32, len(m.known), cap(m.known))
	copy(known, m.known)
	return partialMap{
		fwd:   append([]uint32(nil), m.fwd...),
		inv:   append([]uint32(nil), m.inv...),
		known: known,
	}
}

// has reports whether u has an assigned image.
func (m *partialMap) has(u uint32) bool {
	return u == 0 || m.fwd[u] != 0
}

// hasPreimage reports whether v is in the image of the known subspace.
func (m *partialMap) hasPreimage(v uint32) bool {
	return v == 0 || m.inv[v] != 0
}

// complete reports whether every domain point is assigned.
func (m *partialMap) complete() bool {
	return len(m.known) == len(m.fwd)
}

// extend adds u -> v and closes under XOR, appending every newly forced
// pair to out. It returns false on a contradiction: u already mapped
// elsewhere, or a new u mapped to 0 or to a point already in the image.
func (m *partialMap) extend(u, v uint32, out []pair) ([]pair, bool) {
	if m.has(u) {
		return out, m.fwd[u] == v
	}
	if v == 0 || m.inv[v] != 0 {
		return out, false
	}
	// S + u is disjoint from S, so the known set doubles.
	base := len(m.known)
	for i := 0; i < base; i++ {
		p := m.known[i]
		a, b := p^u, m.fwd[p]^v
		m.fwd[a] = b
		m.inv[b] = a
		m.known = append(m.known, a)
		out = append(out, pair{from: a, to: b})
	}
	return out, true
}

// fill extends the map to a bijection by pairing the smallest unassigned
// domain point with the smallest point outside the image.
func (m *partialMap) fill() {
	size := uint32(len(m.fwd))
	var w uint32 = 1
	for u := uint32(1); u < size && !m.complete(); u++ {
		if m.has(u) {
			continue
		}
		for m.hasPreimage(w) {
			w++
		}
		m.extend(u, w, nil)
	}
}
