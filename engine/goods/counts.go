package goods

// Counts is a multiset of cards indexed by Good.
type Counts [Count]int

// CountOf tallies a card list.
func CountOf(cards []Good) Counts {
	var c Counts
	for _, g := range cards {
		if g.Valid() {
			c[g]++
		}
	}
	return c
}

// Total is the number of cards in the multiset.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Contains reports whether every card in other is also in c.
func (c Counts) Contains(other Counts) bool {
	for i := range c {
		if other[i] > c[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether some good appears in both multisets.
func (c Counts) Overlaps(other Counts) bool {
	for i := range c {
		if c[i] > 0 && other[i] > 0 {
			return true
		}
	}
	return false
}

// Cards expands the multiset into a sorted card list.
func (c Counts) Cards() []Good {
	out := make([]Good, 0, c.Total())
	for i, n := range c {
		for j := 0; j < n; j++ {
			out = append(out, Good(i))
		}
	}
	return out
}
