package twister

// FoldSeed reduces a 64-bit seed to the 32-bit state initialiser used by
// the reference renderer: the seed is first rounded to the nearest float64
// (as a hex prefix parsed into a double would be) and then taken modulo 2^32.
//
// Seeds at or above 2^53 therefore lose their low bits before folding.
func FoldSeed(seed uint64) uint32 {
	f := float64(seed)
	if f >= 1<<64 {
		// 2^64 mod 2^32
		return 0
	}
	return uint32(uint64(f))
}

// NewFromSeed is New(FoldSeed(seed)).
func NewFromSeed(seed uint64) *Twister {
	return New(FoldSeed(seed))
}
