// Package aes implements the Rijndael/AES block cipher core: key schedule,
// single-block encryption/decryption, and a bulk-block path, with the
// cache-timing countermeasures described by Wei Dai's Crypto++ rijndael.cpp
// (see _examples/original_source/c5/rijndael.cpp in the retrieval pack this
// module was built against).
package aes

import "sync"

// se is the forward AES S-box, sd the inverse. Both are compile-time
// constants per the AES standard (FIPS-197).
var se = [256]byte{
	0x63, 0x7c, 0x77, 0x7b, 0xf2, 0x6b, 0x6f, 0xc5, 0x30, 0x01, 0x67, 0x2b, 0xfe, 0xd7, 0xab, 0x76,
	0xca, 0x82, 0xc9, 0x7d, 0xfa, 0x59, 0x47, 0xf0, 0xad, 0xd4, 0xa2, 0xaf, 0x9c, 0xa4, 0x72, 0xc0,
	0xb7, 0xfd, 0x93, 0x26, 0x36, 0x3f, 0xf7, 0xcc, 0x34, 0xa5, 0xe5, 0xf1, 0x71, 0xd8, 0x31, 0x15,
	0x04, 0xc7, 0x23, 0xc3, 0x18, 0x96, 0x05, 0x9a, 0x07, 0x12, 0x80, 0xe2, 0xeb, 0x27, 0xb2, 0x75,
	0x09, 0x83, 0x2c, 0x1a, 0x1b, 0x6e, 0x5a, 0xa0, 0x52, 0x3b, 0xd6, 0xb3, 0x29, 0xe3, 0x2f, 0x84,
	0x53, 0xd1, 0x00, 0xed, 0x20, 0xfc, 0xb1, 0x5b, 0x6a, 0xcb, 0xbe, 0x39, 0x4a, 0x4c, 0x58, 0xcf,
	0xd0, 0xef, 0xaa, 0xfb, 0x43, 0x4d, 0x33, 0x85, 0x45, 0xf9, 0x02, 0x7f, 0x50, 0x3c, 0x9f, 0xa8,
	0x51, 0xa3, 0x40, 0x8f, 0x92, 0x9d, 0x38, 0xf5, 0xbc, 0xb6, 0xda, 0x21, 0x10, 0xff, 0xf3, 0xd2,
	0xcd, 0x0c, 0x13, 0xec, 0x5f, 0x97, 0x44, 0x17, 0xc4, 0xa7, 0x7e, 0x3d, 0x64, 0x5d, 0x19, 0x73,
	0x60, 0x81, 0x4f, 0xdc, 0x22, 0x2a, 0x90, 0x88, 0x46, 0xee, 0xb8, 0x14, 0xde, 0x5e, 0x0b, 0xdb,
	0xe0, 0x32, 0x3a, 0x0a, 0x49, 0x06, 0x24, 0x5c, 0xc2, 0xd3, 0xac, 0x62, 0x91, 0x95, 0xe4, 0x79,
	0xe7, 0xc8, 0x37, 0x6d, 0x8d, 0xd5, 0x4e, 0xa9, 0x6c, 0x56, 0xf4, 0xea, 0x65, 0x7a, 0xae, 0x08,
	0xba, 0x78, 0x25, 0x2e, 0x1c, 0xa6, 0xb4, 0xc6, 0xe8, 0xdd, 0x74, 0x1f, 0x4b, 0xbd, 0x8b, 0x8a,
	0x70, 0x3e, 0xb5, 0x66, 0x48, 0x03, 0xf6, 0x0e, 0x61, 0x35, 0x57, 0xb9, 0x86, 0xc1, 0x1d, 0x9e,
	0xe1, 0xf8, 0x98, 0x11, 0x69, 0xd9, 0x8e, 0x94, 0x9b, 0x1e, 0x87, 0xe9, 0xce, 0x55, 0x28, 0xdf,
	0x8c, 0xa1, 0x89, 0x0d, 0xbf, 0xe6, 0x42, 0x68, 0x41, 0x99, 0x2d, 0x0f, 0xb0, 0x54, 0xbb, 0x16,
}

var sd = [256]byte{
	0x52, 0x09, 0x6a, 0xd5, 0x30, 0x36, 0xa5, 0x38, 0xbf, 0x40, 0xa3, 0x9e, 0x81, 0xf3, 0xd7, 0xfb,
	0x7c, 0xe3, 0x39, 0x82, 0x9b, 0x2f, 0xff, 0x87, 0x34, 0x8e, 0x43, 0x44, 0xc4, 0xde, 0xe9, 0xcb,
	0x54, 0x7b, 0x94, 0x32, 0xa6, 0xc2, 0x23, 0x3d, 0xee, 0x4c, 0x95, 0x0b, 0x42, 0xfa, 0xc3, 0x4e,
	0x08, 0x2e, 0xa1, 0x66, 0x28, 0xd9, 0x24, 0xb2, 0x76, 0x5b, 0xa2, 0x49, 0x6d, 0x8b, 0xd1, 0x25,
	0x72, 0xf8, 0xf6, 0x64, 0x86, 0x68, 0x98, 0x16, 0xd4, 0xa4, 0x5c, 0xcc, 0x5d, 0x65, 0xb6, 0x92,
	0x6c, 0x70, 0x48, 0x50, 0xfd, 0xed, 0xb9, 0xda, 0x5e, 0x15, 0x46, 0x57, 0xa7, 0x8d, 0x9d, 0x84,
	0x90, 0xd8, 0xab, 0x00, 0x8c, 0xbc, 0xd3, 0x0a, 0xf7, 0xe4, 0x58, 0x05, 0xb8, 0xb3, 0x45, 0x06,
	0xd0, 0x2c, 0x1e, 0x8f, 0xca, 0x3f, 0x0f, 0x02, 0xc1, 0xaf, 0xbd, 0x03, 0x01, 0x13, 0x8a, 0x6b,
	0x3a, 0x91, 0x11, 0x41, 0x4f, 0x67, 0xdc, 0xea, 0x97, 0xf2, 0xcf, 0xce, 0xf0, 0xb4, 0xe6, 0x73,
	0x96, 0xac, 0x74, 0x22, 0xe7, 0xad, 0x35, 0x85, 0xe2, 0xf9, 0x37, 0xe8, 0x1c, 0x75, 0xdf, 0x6e,
	0x47, 0xf1, 0x1a, 0x71, 0x1d, 0x29, 0xc5, 0x89, 0x6f, 0xb7, 0x62, 0x0e, 0xaa, 0x18, 0xbe, 0x1b,
	0xfc, 0x56, 0x3e, 0x4b, 0xc6, 0xd2, 0x79, 0x20, 0x9a, 0xdb, 0xc0, 0xfe, 0x78, 0xcd, 0x5a, 0xf4,
	0x1f, 0xdd, 0xa8, 0x33, 0x88, 0x07, 0xc7, 0x31, 0xb1, 0x12, 0x10, 0x59, 0x27, 0x80, 0xec, 0x5f,
	0x60, 0x51, 0x7f, 0xa9, 0x19, 0xb5, 0x4a, 0x0d, 0x2d, 0xe5, 0x7a, 0x9f, 0x93, 0xc9, 0x9c, 0xef,
	0xa0, 0xe0, 0x3b, 0x4d, 0xae, 0x2a, 0xf5, 0xb0, 0xc8, 0xeb, 0xbb, 0x3c, 0x83, 0x53, 0x99, 0x61,
	0x17, 0x2b, 0x04, 0x7e, 0xba, 0x77, 0xd6, 0x26, 0xe1, 0x69, 0x14, 0x63, 0x55, 0x21, 0x0c, 0x7d,
}

// rcon holds the round constants used by the key schedule, left-justified
// into the top byte of the word the way they're consumed by SubWord(RotWord(.))^Rcon.
var rcon = [...]uint32{
	0x01000000, 0x02000000, 0x04000000, 0x08000000,
	0x10000000, 0x20000000, 0x40000000, 0x80000000,
	0x1b000000, 0x36000000, 0x6c000000, 0xd8000000,
	0xab000000, 0x4d000000,
}

// gfMulPoly is the AES reducing polynomial x^8+x^4+x^3+x+1.
const gfMulPoly = 0x11B

// xtime is multiplication by x (f2 in rijndael.cpp) in GF(2^8) mod gfMulPoly.
func xtime(x byte) byte {
	hi := x >> 7
	return (x << 1) ^ (hi * 0x1b)
}

// gfMul multiplies two bytes in GF(2^8) mod gfMulPoly, the same
// shift-and-reduce construction as monero/cryptonight/aes_const.go's mul,
// specialized to byte width.
func gfMul(a, b byte) byte {
	var p byte
	for b != 0 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}

// te0..te3 fold SubBytes+ShiftRows+MixColumn into one lookup per input byte
// position; te4 is the broadcast S-box used, masked per lane, by the final
// round (spec.md §4.3's "replace MixColumn terms by raw S-box lookups").
// td0..td3/td4 are the analogous inverse tables. All are the 4x256
// fully-materialized layout (spec.md §3's no-rotate option).
var (
	te0, te1, te2, te3, te4 [256]uint32
	td0, td1, td2, td3, td4 [256]uint32
)

var fillTables = sync.OnceFunc(func() {
	for i := 0; i < 256; i++ {
		x := se[i]
		y := uint32(gfMul(x, 2))<<24 | uint32(x)<<16 | uint32(x)<<8 | uint32(gfMul(x, 3))
		te0[i] = y
		te1[i] = rotl32(y, 24)
		te2[i] = rotl32(y, 16)
		te3[i] = rotl32(y, 8)
		te4[i] = uint32(x) * 0x01010101
	}
	for i := 0; i < 256; i++ {
		x := sd[i]
		y := uint32(gfMul(x, 0x0e))<<24 | uint32(gfMul(x, 0x09))<<16 | uint32(gfMul(x, 0x0d))<<8 | uint32(gfMul(x, 0x0b))
		td0[i] = y
		td1[i] = rotl32(y, 24)
		td2[i] = rotl32(y, 16)
		td3[i] = rotl32(y, 8)
		td4[i] = uint32(x) * 0x01010101
	}
})

func rotl32(x uint32, n uint) uint32 {
	return x<<n | x>>(32-n)
}

// ensureTables triggers the one-shot, publish-once table fill. Safe under
// concurrent first access: sync.OnceFunc gives acquire/release semantics on
// the completion flag, exactly what spec.md §4.1 requires and what a plain
// unsynchronized bool would not.
func ensureTables() {
	fillTables()
}

// preloadCacheLines touches every cache line of a 256*4-byte table at least
// once before first use in a round, per spec.md §4.6. cacheLineSize is
// treated as a stride in bytes over the table's uint32 backing array.
func preloadCacheLines(table *[256]uint32, cacheLineSize int) uint32 {
	if cacheLineSize <= 0 {
		cacheLineSize = 64
	}
	stride := cacheLineSize / 4
	if stride == 0 {
		stride = 1
	}
	var u uint32
	for i := 0; i < 256; i += stride {
		u &= table[i]
	}
	u &= table[255]
	return u
}

// preloadCacheLinesBytes is the byte-table analogue of preloadCacheLines,
// used to preload Sd ahead of the decrypt final round (spec.md §4.6).
func preloadCacheLinesBytes(table *[256]byte, cacheLineSize int) uint32 {
	if cacheLineSize <= 0 {
		cacheLineSize = 64
	}
	var u uint32
	for i := 0; i < 256; i += cacheLineSize {
		u &= uint32(table[i])
	}
	u &= uint32(table[252])
	return u
}
