package dat

// Alphabet maps input bytes (0..255) to dense alphabet IDs (uint16).
// Dense IDs are 1-based and assigned in ascending byte order, so only bytes
// which occur in some key take up room in the transition table.
//
// Lookup is O(1) with one array read.
type Alphabet struct {
	dense [256]uint16 // 0 means "not part of the alphabet"
	sigma uint16
}

// Dense returns the dense alphabet ID for a byte.
// Returns 0 if absent.
func (a *Alphabet) Dense(b byte) uint16 { return a.dense[b] }

// Sigma returns the size of the alphabet (maximum dense ID).
func (a *Alphabet) Sigma() uint16 { return a.sigma }

// Bytes returns the alphabet members in ascending order.
func (a *Alphabet) Bytes() []byte {
	bb := make([]byte, 0, a.sigma)
	for b := range 256 {
		if a.dense[b] != 0 {
			bb = append(bb, byte(b))
		}
	}
	return bb
}

// newAlphabet assigns dense IDs to the bytes flagged in used.
func newAlphabet(used *[256]bool) Alphabet {
	var a Alphabet
	for b := range 256 {
		if used[b] {
			a.sigma++
			a.dense[b] = a.sigma
		}
	}
	return a
}
