// Package twister implements the 32-bit Mersenne Twister (MT19937) as a
// seeded, reproducible stream of floats in [0,1).
//
// The generator is the reference algorithm from Matsumoto and Nishimura
// (init_genrand / genrand_int32), so any conforming implementation seeded
// with the same value produces the same sequence bit for bit.
package twister

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff
)

// Source is anything that yields floats in [0,1).
type Source interface {
	Float64() float64
}

// Twister is a single MT19937 state. It is not safe for concurrent use;
// every render owns its own instance.
type Twister struct {
	mt  [n]uint32
	mti int
}

func New(seed uint32) *Twister {
	t := &Twister{}
	t.Seed(seed)
	return t
}

// Seed resets the generator, discarding all previous state.
func (t *Twister) Seed(seed uint32) {
	t.mt[0] = seed
	for i := 1; i < n; i++ {
		prev := t.mt[i-1]
		t.mt[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	t.mti = n
}

func (t *Twister) twist() {
	var kk int
	for kk = 0; kk < n-m; kk++ {
		y := (t.mt[kk] & upperMask) | (t.mt[kk+1] & lowerMask)
		t.mt[kk] = t.mt[kk+m] ^ (y >> 1) ^ mag01(y)
	}
	for ; kk < n-1; kk++ {
		y := (t.mt[kk] & upperMask) | (t.mt[kk+1] & lowerMask)
		t.mt[kk] = t.mt[kk+(m-n)] ^ (y >> 1) ^ mag01(y)
	}
	y := (t.mt[n-1] & upperMask) | (t.mt[0] & lowerMask)
	t.mt[n-1] = t.mt[m-1] ^ (y >> 1) ^ mag01(y)
	t.mti = 0
}

func mag01(y uint32) uint32 {
	if y&1 == 1 {
		return matrixA
	}
	return 0
}

// Uint32 returns the next tempered 32-bit output.
func (t *Twister) Uint32() uint32 {
	if t.mti >= n {
		t.twist()
	}
	y := t.mt[t.mti]
	t.mti++

	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	return y
}

// Float64 returns the next value in [0,1) with 32 bits of resolution.
func (t *Twister) Float64() float64 {
	return float64(t.Uint32()) * (1.0 / 4294967296.0)
}
