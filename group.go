package opencc

// DictGroup combines dictionaries into one. Of all member matches at a
// position, the longest key wins; on equal length the member listed first
// wins.
type DictGroup struct {
	dicts        []Dictionary
	maxKeyLength int
}

var _ Dictionary = (*DictGroup)(nil)

// NewDictGroup creates a group of dictionaries. Members are queried in the
// order given.
func NewDictGroup(dicts ...Dictionary) *DictGroup {
	g := &DictGroup{dicts: dicts}
	for _, d := range dicts {
		g.maxKeyLength = max(g.maxKeyLength, d.MaxKeyLength())
	}
	return g
}

// MatchPrefix returns the longest match among all members.
func (g *DictGroup) MatchPrefix(word string) (key string, values []string, ok bool) {
	for _, d := range g.dicts {
		k, v, found := d.MatchPrefix(word)
		if found && (!ok || len(k) > len(key)) {
			key, values, ok = k, v, true
		}
	}
	return
}

// MaxKeyLength is the maximum over all members.
func (g *DictGroup) MaxKeyLength() int {
	return g.maxKeyLength
}

// Len returns the number of member dictionaries.
func (g *DictGroup) Len() int {
	return len(g.dicts)
}
