package aes

import "encoding/binary"

// SetKey expands key (16, 24, or 32 bytes) into the instance's round key
// schedule and sets rounds accordingly (10/12/14). Grounded on rijndael.cpp's
// UncheckedSetKey: FIPS-197 word-at-a-time expansion, with the Nk==8
// mid-word SubWord step for 256-bit keys, and — for Decrypt — reversal of
// the round-key chunks plus inverse-MixColumn of the interior chunks
// (spec.md §4.2).
func (c *Cipher) SetKey(key []byte, direction Direction) error {
	if err := validateKeyLength(len(key)); err != nil {
		return err
	}
	ensureTables()

	nk := len(key) / 4
	rounds := nk + 6
	total := 4 * (rounds + 1)

	keys := make([]uint32, total)
	for i := 0; i < nk; i++ {
		keys[i] = binary.BigEndian.Uint32(key[4*i : 4*i+4])
	}

	for i := nk; i < total; i++ {
		temp := keys[i-1]
		switch {
		case i%nk == 0:
			temp = subWord(rotWord(temp)) ^ rcon[i/nk-1]
		case nk == 8 && i%nk == 4:
			temp = subWord(temp)
		}
		keys[i] = keys[i-nk] ^ temp
	}

	if direction == Decrypt {
		// reverse the round-key chunks (4 words each)
		for i, j := 0, rounds; i < j; i, j = i+1, j-1 {
			baseI, baseJ := 4*i, 4*j
			for k := 0; k < 4; k++ {
				keys[baseI+k], keys[baseJ+k] = keys[baseJ+k], keys[baseI+k]
			}
		}
		// apply inverse MixColumn to every interior chunk
		for r := 1; r < rounds; r++ {
			base := 4 * r
			for k := 0; k < 4; k++ {
				keys[base+k] = invMixColumnWord(keys[base+k])
			}
		}
	}

	c.keys = keys
	c.rounds = rounds
	c.direction = direction
	return nil
}

// rotWord rotates a big-endian-packed word left by one byte: [b0,b1,b2,b3] -> [b1,b2,b3,b0].
func rotWord(w uint32) uint32 {
	return (w << 8) | (w >> 24)
}

// subWord applies the forward S-box to each byte of w independently.
func subWord(w uint32) uint32 {
	return uint32(se[byte(w>>24)])<<24 |
		uint32(se[byte(w>>16)])<<16 |
		uint32(se[byte(w>>8)])<<8 |
		uint32(se[byte(w)])
}

// invMixColumnWord applies inverse MixColumn to a raw (non-SubBytes'd)
// round-key word, using the Se-then-Td composition trick from
// rijndael.cpp's UncheckedSetKey: running a byte through Se before indexing
// Td cancels Td's own embedded Sd lookup, leaving only the GF(2^8) matrix
// multiply, which is exactly InvMixColumn.
func invMixColumnWord(w uint32) uint32 {
	b0 := se[byte(w)]
	b1 := se[byte(w>>8)]
	b2 := se[byte(w>>16)]
	b3 := se[byte(w>>24)]
	return td0[b3] ^ td1[b2] ^ td2[b1] ^ td3[b0]
}
