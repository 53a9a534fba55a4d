// Package blockhash implements the 32-bit block hash used to group identical
// tiles.
//
// The hash is Bob Jenkins' lookup2 construction: three 32-bit accumulators
// absorb the input twelve little-endian bytes at a time, each block followed
// by a subtract/xor/shift mix, and the tail plus the total length is folded
// in before a final mix. It is fast and well distributed but not
// cryptographic; it only needs to separate tiles within one image.
package blockhash

// golden is the accumulator seed, the golden ratio as a 32-bit fraction.
const golden = 0x9e3779b9

// BlockSize is the number of bytes absorbed per mixing round.
const BlockSize = 12

// Sum32 returns the block hash of data.
func Sum32(data []byte) uint32 {
	var h Hasher
	h.Reset()
	_, _ = h.Write(data)
	return h.Sum32()
}

// Hasher computes the block hash incrementally. Feeding the input in any
// number of Write calls yields the same value as Sum32 over the
// concatenation. The zero value is not ready for use; call Reset first or
// use New.
type Hasher struct {
	a, b, c uint32
	n       uint32 // total bytes written
	buf     [BlockSize]byte
	nbuf    int
}

// New returns a ready Hasher.
func New() *Hasher {
	h := &Hasher{}
	h.Reset()
	return h
}

// Reset restores the initial state.
func (h *Hasher) Reset() {
	h.a, h.b, h.c = golden, golden, 0
	h.n = 0
	h.nbuf = 0
}

// Write absorbs p. It never fails.
func (h *Hasher) Write(p []byte) (int, error) {
	written := len(p)
	h.n += uint32(written)

	if h.nbuf > 0 {
		k := copy(h.buf[h.nbuf:], p)
		h.nbuf += k
		p = p[k:]
		if h.nbuf < BlockSize {
			return written, nil
		}
		h.block(h.buf[:])
		h.nbuf = 0
	}

	for len(p) >= BlockSize {
		h.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	h.nbuf = copy(h.buf[:], p)
	return written, nil
}

// Sum32 returns the hash of everything written so far without changing the
// state, so more data may still be written.
func (h *Hasher) Sum32() uint32 {
	a, b, c := h.a, h.b, h.c
	c += h.n

	t := h.buf[:h.nbuf]
	// The low byte of c is reserved for the length.
	switch len(t) {
	case 11:
		c += uint32(t[10]) << 24
		fallthrough
	case 10:
		c += uint32(t[9]) << 16
		fallthrough
	case 9:
		c += uint32(t[8]) << 8
		fallthrough
	case 8:
		b += uint32(t[7]) << 24
		fallthrough
	case 7:
		b += uint32(t[6]) << 16
		fallthrough
	case 6:
		b += uint32(t[5]) << 8
		fallthrough
	case 5:
		b += uint32(t[4])
		fallthrough
	case 4:
		a += uint32(t[3]) << 24
		fallthrough
	case 3:
		a += uint32(t[2]) << 16
		fallthrough
	case 2:
		a += uint32(t[1]) << 8
		fallthrough
	case 1:
		a += uint32(t[0])
	}

	_, _, c = mix(a, b, c)
	return c
}

func (h *Hasher) block(p []byte) {
	h.a += le32(p[0:4])
	h.b += le32(p[4:8])
	h.c += le32(p[8:12])
	h.a, h.b, h.c = mix(h.a, h.b, h.c)
}

func le32(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24
}

func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= b
	a -= c
	a ^= c >> 13
	b -= c
	b -= a
	b ^= a << 8
	c -= a
	c -= b
	c ^= b >> 13
	a -= b
	a -= c
	a ^= c >> 12
	b -= c
	b -= a
	b ^= a << 16
	c -= a
	c -= b
	c ^= b >> 5
	a -= b
	a -= c
	a ^= c >> 3
	b -= c
	b -= a
	b ^= a << 10
	c -= a
	c -= b
	c ^= b >> 15
	return a, b, c
}
