package basen

import (
	"fmt"
	"unicode"

	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
)

// lookupCacheSize bounds how many distinct (alphabet, caseInsensitive)
// lookup tables NewDecodingLookup keeps warm. Alphabets are non-secret
// (spec.md §5's security model only requires zeroizing AES round keys, not
// codec tables), so caching the derived [256]int16 array across repeated
// Decoder construction with a well-known alphabet (Base16, Base32, Base64,
// ...) is safe and avoids redoing the duplicate-detection pass every time.
const lookupCacheSize = 64

var lookupCache = lru.New[string, [256]int16](lookupCacheSize)

// NewDecodingLookup builds a [256]int16 lookup table mapping input bytes to
// symbol values (or -1 for "ignore"), per basecode.cpp's
// InitializeDecodingLookupArray (spec.md §4.7). It is an error for the
// alphabet to contain a byte (or, under case-insensitive folding, an
// upper/lower pair) that would overwrite an already-registered mapping.
func NewDecodingLookup(alphabet []byte, caseInsensitive bool) ([256]int16, error) {
	cacheKey := lookupCacheKey(alphabet, caseInsensitive)
	if cached := lookupCache.Get(cacheKey); cached != nil {
		return *cached, nil
	}

	var lookup [256]int16
	for i := range lookup {
		lookup[i] = -1
	}

	seen := swiss.NewMap[byte, struct{}](uint32(len(alphabet)))
	register := func(b byte, value int) error {
		if seen.Has(b) {
			return fmt.Errorf("%w: duplicate alphabet byte %q", ErrInvalidArgument, b)
		}
		seen.Put(b, struct{}{})
		lookup[b] = int16(value)
		return nil
	}

	for i, b := range alphabet {
		if caseInsensitive && unicode.IsLetter(rune(b)) {
			upper := byte(unicode.ToUpper(rune(b)))
			lower := byte(unicode.ToLower(rune(b)))
			if err := register(upper, i); err != nil {
				return [256]int16{}, err
			}
			if err := register(lower, i); err != nil {
				return [256]int16{}, err
			}
		} else if err := register(b, i); err != nil {
			return [256]int16{}, err
		}
	}

	lookupCache.Set(cacheKey, lookup)
	return lookup, nil
}

func lookupCacheKey(alphabet []byte, caseInsensitive bool) string {
	if caseInsensitive {
		return "ci:" + string(alphabet)
	}
	return "cs:" + string(alphabet)
}
