package aes

import (
	"testing"

	hex "github.com/tmthrgd/go-hex"
	"github.com/stretchr/testify/require"
)

// Known-answer vectors from spec.md §8, scenarios 1-2 (FIPS-197 Appendix C
// test vectors), in the style of monero/cryptonight's table-driven state
// tests.
func TestKnownAnswer(t *testing.T) {
	cases := []struct {
		name       string
		key        string
		plaintext  string
		ciphertext string
	}{
		{
			name:       "AES-128",
			key:        "2b7e151628aed2a6abf7158809cf4f3c",
			plaintext:  "6bc1bee22e409f96e93d7e1173931722",
			ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
		},
		{
			name:       "AES-256",
			key:        "603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4",
			plaintext:  "6bc1bee22e409f96e93d7e1173931722",
			ciphertext: "f3eed1bdb5d2a03c064b5a7e3db181f8",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := mustHexDecode(t, tc.key)
			plaintext := mustHexDecode(t, tc.plaintext)
			ciphertext := mustHexDecode(t, tc.ciphertext)

			enc, err := NewCipher(key, Encrypt)
			require.NoError(t, err)
			got := make([]byte, 16)
			enc.ProcessAndXorBlock(plaintext, nil, got)
			require.Equal(t, ciphertext, got)

			dec, err := NewCipher(key, Decrypt)
			require.NoError(t, err)
			back := make([]byte, 16)
			dec.ProcessAndXorBlock(ciphertext, nil, back)
			require.Equal(t, plaintext, back)
		})
	}
}

func TestRoundTripAllKeySizes(t *testing.T) {
	plaintext := mustHexDecode(t, "00112233445566778899aabbccddeeff")

	for _, keyLen := range []int{16, 24, 32} {
		key := make([]byte, keyLen)
		for i := range key {
			key[i] = byte(i * 7)
		}

		enc, err := NewCipher(key, Encrypt)
		require.NoError(t, err)
		dec, err := NewCipher(key, Decrypt)
		require.NoError(t, err)

		ct := make([]byte, 16)
		enc.ProcessAndXorBlock(plaintext, nil, ct)
		pt := make([]byte, 16)
		dec.ProcessAndXorBlock(ct, nil, pt)

		require.Equal(t, plaintext, pt)
		require.NotEqual(t, plaintext, ct)
	}
}

func TestProcessAndXorBlockAliasedInOut(t *testing.T) {
	key := mustHexDecode(t, "2b7e151628aed2a6abf7158809cf4f3c")
	plaintext := mustHexDecode(t, "6bc1bee22e409f96e93d7e1173931722")

	enc, err := NewCipher(key, Encrypt)
	require.NoError(t, err)

	buf := make([]byte, 16)
	copy(buf, plaintext)
	enc.ProcessAndXorBlock(buf, nil, buf)

	want := mustHexDecode(t, "3ad77bb40d7a3660a89ecaf32466ef97")
	require.Equal(t, want, buf)
}

func TestProcessAndXorBlockWithXorIn(t *testing.T) {
	key := mustHexDecode(t, "2b7e151628aed2a6abf7158809cf4f3c")
	plaintext := mustHexDecode(t, "6bc1bee22e409f96e93d7e1173931722")
	xorIn := make([]byte, 16)
	for i := range xorIn {
		xorIn[i] = 0xff
	}

	enc, err := NewCipher(key, Encrypt)
	require.NoError(t, err)

	plain := make([]byte, 16)
	enc.ProcessAndXorBlock(plaintext, nil, plain)

	withXor := make([]byte, 16)
	enc.ProcessAndXorBlock(plaintext, xorIn, withXor)

	for i := range plain {
		require.Equal(t, plain[i]^0xff, withXor[i])
	}
}

func TestSetKeyRejectsInvalidLength(t *testing.T) {
	_, err := NewCipher(make([]byte, 20), Encrypt)
	require.ErrorIs(t, err, ErrInvalidKeyLength)
}

func TestKeyScheduleLengthAndRounds(t *testing.T) {
	cases := []struct {
		keyLen int
		rounds int
	}{
		{16, 10},
		{24, 12},
		{32, 14},
	}
	for _, tc := range cases {
		c, err := NewCipher(make([]byte, tc.keyLen), Encrypt)
		require.NoError(t, err)
		require.Equal(t, tc.rounds, c.Rounds())
		require.Equal(t, 4*(tc.rounds+1), c.KeyScheduleLength())
		require.Equal(t, 16, c.BlockSize())
	}
}

func TestResetZeroizesKeys(t *testing.T) {
	key := mustHexDecode(t, "2b7e151628aed2a6abf7158809cf4f3c")
	c, err := NewCipher(key, Encrypt)
	require.NoError(t, err)

	nonZero := false
	for _, w := range c.keys {
		if w != 0 {
			nonZero = true
			break
		}
	}
	require.True(t, nonZero)

	c.Reset()
	for _, w := range c.keys {
		require.Zero(t, w)
	}
}

func mustHexDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
