package expand

// CrossProduct iterates the cartesian product of the source slices like
// an odometer: the last slice ticks fastest, and when a slice cycles
// the one before it ticks once. Any empty source empties the whole
// product.
type CrossProduct[T any] struct {
	sources [][]T
	idx     []int
	done    bool
}

// NewCrossProduct builds an iterator over sources. A zero-length
// sources slice yields nothing.
func NewCrossProduct[T any](sources [][]T) *CrossProduct[T] {
	cp := &CrossProduct[T]{sources: sources, idx: make([]int, len(sources))}
	if len(sources) == 0 {
		cp.done = true
	}
	for _, s := range sources {
		if len(s) == 0 {
			cp.done = true
		}
	}
	return cp
}

// Total returns the number of combinations the product yields overall.
func (c *CrossProduct[T]) Total() int {
	if len(c.sources) == 0 {
		return 0
	}
	total := 1
	for _, s := range c.sources {
		total *= len(s)
	}
	return total
}

// Next returns the next combination, or false when exhausted.
func (c *CrossProduct[T]) Next() ([]T, bool) {
	if c.done {
		return nil, false
	}
	out := make([]T, len(c.sources))
	for i, s := range c.sources {
		out[i] = s[c.idx[i]]
	}
	for i := len(c.idx) - 1; ; i-- {
		c.idx[i]++
		if c.idx[i] < len(c.sources[i]) {
			break
		}
		c.idx[i] = 0
		if i == 0 {
			c.done = true
			break
		}
	}
	return out, true
}
