package aes

import (
	"errors"
	"fmt"
	"sync"

	"aesbasen/internal/corelog"
)

var logHardwareOnce sync.Once

func logHardwareAvailability() {
	logHardwareOnce.Do(func() {
		if hasHardwareAES() {
			corelog.Debugf("aes", "hardware AES instructions available; portable table-based engine remains in use")
		} else {
			corelog.Debugf("aes", "no hardware AES instructions detected; using portable table-based engine")
		}
	})
}

// Direction selects which round function and key layout a Cipher uses.
// rijndael.cpp splits this into Base/Enc/Dec types; per spec.md §9's design
// note we fold that hierarchy into one type with a direction discriminant.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	if d == Decrypt {
		return "decrypt"
	}
	return "encrypt"
}

// ErrInvalidKeyLength is returned by SetKey when the key is not 16, 24, or
// 32 bytes (spec.md §4.2).
var ErrInvalidKeyLength = errors.New("aes: invalid key length")

// Cipher holds one Rijndael instance: its expanded round key schedule,
// round count, and direction. A Cipher is single-owner — concurrent calls
// on the same instance are a data race (spec.md §5); distinct instances on
// distinct goroutines are independent.
type Cipher struct {
	keys      []uint32
	rounds    int
	direction Direction
}

// NewCipher allocates a Cipher and calls SetKey.
func NewCipher(key []byte, direction Direction) (*Cipher, error) {
	logHardwareAvailability()
	c := &Cipher{}
	if err := c.SetKey(key, direction); err != nil {
		return nil, err
	}
	return c, nil
}

// BlockSize is always 16 bytes for Rijndael-128 (the AES block size).
func (c *Cipher) BlockSize() int { return 16 }

// KeyScheduleLength returns 4*(rounds+1), the number of uint32 round-key
// words held by the instance (spec.md §6).
func (c *Cipher) KeyScheduleLength() int { return 4 * (c.rounds + 1) }

// Rounds returns 10, 12, or 14 depending on the key size used in SetKey.
func (c *Cipher) Rounds() int { return c.rounds }

// Direction reports whether this instance encrypts or decrypts.
func (c *Cipher) Direction() Direction { return c.direction }

// Reset overwrites the round key schedule with zeros. spec.md §5 requires
// drop/reset to zeroize keys before release; unlike Go's garbage collector,
// this is synchronous and caller-visible.
func (c *Cipher) Reset() {
	for i := range c.keys {
		c.keys[i] = 0
	}
}

func validateKeyLength(n int) error {
	switch n {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: got %d bytes, want 16, 24, or 32", ErrInvalidKeyLength, n)
	}
}
