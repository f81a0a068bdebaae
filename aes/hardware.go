package aes

import "golang.org/x/sys/cpu"

// cacheLineSize is consulted by the side-channel preload discipline in
// block.go. It isn't read back from the OS (spec.md §1 scopes platform CPU
// feature detection out as an external collaborator whose contract we only
// consume); 64 bytes covers every AES-capable desktop/server/mobile part in
// practice, matching rijndael.cpp's GetCacheLineSize() default.
const cacheLineSize = 64

// hasHardwareAES reports whether the running CPU exposes a hardware AES
// instruction set, mirroring monero/cryptonight/aes_amd64.go and
// aes_arm64.go's cpu.X86.HasAES / cpu.ARM64.HasAES checks. The portable
// table-based engine in block.go and bulk.go is always used: spec.md §1
// scopes architecture-specific assembly out, describing the hardware fast
// path only as a contract (§9's design note). This query exists so that
// contract is at least consulted, and so a future hardware-accelerated
// path has a single place to hook in.
func hasHardwareAES() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES
}
