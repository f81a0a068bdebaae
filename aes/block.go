package aes

import "encoding/binary"

// ProcessAndXorBlock computes Encrypt(in) XOR xorIn (if xorIn is non-nil)
// when c's direction is Encrypt, or the symmetric Decrypt(in) XOR xorIn
// otherwise, writing the 16-byte result into out. in and out (and xorIn)
// may alias the same underlying array (spec.md §4.3's "in == out must be
// supported"), since the whole block is read into local words before any
// byte of out is written.
func (c *Cipher) ProcessAndXorBlock(in []byte, xorIn []byte, out []byte) {
	if len(in) != 16 || len(out) != 16 {
		panic("aes: block must be 16 bytes")
	}
	if xorIn != nil && len(xorIn) != 16 {
		panic("aes: xor block must be 16 bytes")
	}
	if c.direction == Encrypt {
		c.encryptBlock(in, xorIn, out)
	} else {
		c.decryptBlock(in, xorIn, out)
	}
}

func (c *Cipher) encryptBlock(in, xorIn, out []byte) {
	rk := c.keys

	s0 := binary.BigEndian.Uint32(in[0:4]) ^ rk[0]
	s1 := binary.BigEndian.Uint32(in[4:8]) ^ rk[1]
	s2 := binary.BigEndian.Uint32(in[8:12]) ^ rk[2]
	s3 := binary.BigEndian.Uint32(in[12:16]) ^ rk[3]

	// cache-line preload countermeasure, spec.md §4.6: force every line of
	// Te resident before the first keyed lookup, so a cache miss during
	// round 1 can't leak which index was touched.
	u := preloadCacheLines(&te0, cacheLineSize)
	s0, s1, s2, s3 = s0|u, s1|u, s2|u, s3|u

	rk = rk[4:]
	for r := 1; r < c.rounds; r++ {
		t0 := te0[byte(s0>>24)] ^ te1[byte(s1>>16)] ^ te2[byte(s2>>8)] ^ te3[byte(s3)] ^ rk[0]
		t1 := te0[byte(s1>>24)] ^ te1[byte(s2>>16)] ^ te2[byte(s3>>8)] ^ te3[byte(s0)] ^ rk[1]
		t2 := te0[byte(s2>>24)] ^ te1[byte(s3>>16)] ^ te2[byte(s0>>8)] ^ te3[byte(s1)] ^ rk[2]
		t3 := te0[byte(s3>>24)] ^ te1[byte(s0>>16)] ^ te2[byte(s1>>8)] ^ te3[byte(s2)] ^ rk[3]
		s0, s1, s2, s3 = t0, t1, t2, t3
		rk = rk[4:]
	}

	// final round: raw S-box lookups via te4 instead of the MixColumn
	// tables (spec.md §4.3), masked per output byte lane.
	o0 := ((te4[byte(s0>>24)] & 0xff000000) | (te4[byte(s1>>16)] & 0x00ff0000) | (te4[byte(s2>>8)] & 0x0000ff00) | (te4[byte(s3)] & 0x000000ff)) ^ rk[0]
	o1 := ((te4[byte(s1>>24)] & 0xff000000) | (te4[byte(s2>>16)] & 0x00ff0000) | (te4[byte(s3>>8)] & 0x0000ff00) | (te4[byte(s0)] & 0x000000ff)) ^ rk[1]
	o2 := ((te4[byte(s2>>24)] & 0xff000000) | (te4[byte(s3>>16)] & 0x00ff0000) | (te4[byte(s0>>8)] & 0x0000ff00) | (te4[byte(s1)] & 0x000000ff)) ^ rk[2]
	o3 := ((te4[byte(s3>>24)] & 0xff000000) | (te4[byte(s0>>16)] & 0x00ff0000) | (te4[byte(s1>>8)] & 0x0000ff00) | (te4[byte(s2)] & 0x000000ff)) ^ rk[3]

	writeXorBlock(out, o0, o1, o2, o3, xorIn)
}

func (c *Cipher) decryptBlock(in, xorIn, out []byte) {
	rk := c.keys

	s0 := binary.BigEndian.Uint32(in[0:4]) ^ rk[0]
	s1 := binary.BigEndian.Uint32(in[4:8]) ^ rk[1]
	s2 := binary.BigEndian.Uint32(in[8:12]) ^ rk[2]
	s3 := binary.BigEndian.Uint32(in[12:16]) ^ rk[3]

	// cache-line preload countermeasure, spec.md §4.6, for Td this time.
	u := preloadCacheLines(&td0, cacheLineSize)
	s0, s1, s2, s3 = s0|u, s1|u, s2|u, s3|u

	rk = rk[4:]
	for r := 1; r < c.rounds; r++ {
		t0 := td0[byte(s0>>24)] ^ td1[byte(s3>>16)] ^ td2[byte(s2>>8)] ^ td3[byte(s1)] ^ rk[0]
		t1 := td0[byte(s1>>24)] ^ td1[byte(s0>>16)] ^ td2[byte(s3>>8)] ^ td3[byte(s2)] ^ rk[1]
		t2 := td0[byte(s2>>24)] ^ td1[byte(s1>>16)] ^ td2[byte(s0>>8)] ^ td3[byte(s3)] ^ rk[2]
		t3 := td0[byte(s3>>24)] ^ td1[byte(s2>>16)] ^ td2[byte(s1>>8)] ^ td3[byte(s0)] ^ rk[3]
		s0, s1, s2, s3 = t0, t1, t2, t3
		rk = rk[4:]
	}

	// second preload pass before the Sd-only final round, per spec.md
	// §4.6 ("the same pattern is applied before the Sd step in decrypt").
	u = preloadCacheLinesBytes(&sd, cacheLineSize)
	s0, s1, s2, s3 = s0|u, s1|u, s2|u, s3|u

	o0 := ((td4[byte(s0>>24)] & 0xff000000) | (td4[byte(s3>>16)] & 0x00ff0000) | (td4[byte(s2>>8)] & 0x0000ff00) | (td4[byte(s1)] & 0x000000ff)) ^ rk[0]
	o1 := ((td4[byte(s1>>24)] & 0xff000000) | (td4[byte(s0>>16)] & 0x00ff0000) | (td4[byte(s3>>8)] & 0x0000ff00) | (td4[byte(s2)] & 0x000000ff)) ^ rk[1]
	o2 := ((td4[byte(s2>>24)] & 0xff000000) | (td4[byte(s1>>16)] & 0x00ff0000) | (td4[byte(s0>>8)] & 0x0000ff00) | (td4[byte(s3)] & 0x000000ff)) ^ rk[2]
	o3 := ((td4[byte(s3>>24)] & 0xff000000) | (td4[byte(s2>>16)] & 0x00ff0000) | (td4[byte(s1>>8)] & 0x0000ff00) | (td4[byte(s0)] & 0x000000ff)) ^ rk[3]

	writeXorBlock(out, o0, o1, o2, o3, xorIn)
}

func writeXorBlock(out []byte, o0, o1, o2, o3 uint32, xorIn []byte) {
	var buf [16]byte
	binary.BigEndian.PutUint32(buf[0:4], o0)
	binary.BigEndian.PutUint32(buf[4:8], o1)
	binary.BigEndian.PutUint32(buf[8:12], o2)
	binary.BigEndian.PutUint32(buf[12:16], o3)
	if xorIn != nil {
		for i := 0; i < 16; i++ {
			buf[i] ^= xorIn[i]
		}
	}
	copy(out, buf[:])
}
