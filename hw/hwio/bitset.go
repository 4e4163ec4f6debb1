package hwio

import "fmt"

const (
	NumBits  = Size
	wordSize = 64
	numWords = NumBits / wordSize
)

// Bitset holds one bit per address of the address space. The zero value is an
// empty set.
type Bitset struct {
	words [numWords]uint64
}

func (b *Bitset) Test(i uint) bool {
	return (b.words[i/wordSize] & (1 << (i % wordSize))) != 0
}

// SetRange sets all bits in [start, end).
// It panics if start >= end or end > NumBits.
func (b *Bitset) SetRange(start, end uint) {
	if start >= end || end > NumBits {
		panic(fmt.Sprintf("invalid range [%d, %d)", start, end))
	}

	first, last := start/wordSize, (end-1)/wordSize
	lo, hi := start%wordSize, (end-1)%wordSize
	if first == last {
		b.words[first] |= ((uint64(1) << (hi - lo + 1)) - 1) << lo
		return
	}

	b.words[first] |= ^uint64(0) << lo
	for w := first + 1; w < last; w++ {
		b.words[w] = ^uint64(0)
	}
	b.words[last] |= (uint64(1) << (hi + 1)) - 1
}
