// Package corelog is a trimmed leveled logger, adapted from the teacher's
// utils/logger.go: the same sync.Pool-buffered, level-gated print style,
// with the file/caller-name options (LogFile/LogFunc) dropped since neither
// core needs them — this package exists so both the AES and base-N cores
// can report parameter-resolution and fallback-path decisions (e.g. "no
// hardware AES available, using the portable table-based engine") without
// pulling in a third-party logging framework the teacher itself doesn't
// use (SPEC_FULL.md's ambient-stack section).
package corelog

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"
)

type Level int

const (
	LevelError = Level(1 << iota)
	LevelInfo
	LevelDebug
)

var GlobalLevel = LevelError | LevelInfo

var bufPool = sync.Pool{
	New: func() any { return make([]byte, 0, 256) },
}

func getBuf() []byte {
	//nolint:forcetypeassert
	return bufPool.Get().([]byte)[:0]
}

func putBuf(buf []byte) {
	bufPool.Put(buf) //nolint:staticcheck
}

func Errorf(prefix, format string, v ...any) {
	if GlobalLevel&LevelError == 0 {
		return
	}
	buf := getBuf()
	defer putBuf(buf)
	_println(fmt.Appendf(header(buf, prefix, "ERROR"), format, v...))
}

func Infof(prefix, format string, v ...any) {
	if GlobalLevel&LevelInfo == 0 {
		return
	}
	buf := getBuf()
	defer putBuf(buf)
	_println(fmt.Appendf(header(buf, prefix, "INFO"), format, v...))
}

func IsDebug() bool { return GlobalLevel&LevelDebug > 0 }

func Debugf(prefix, format string, v ...any) {
	if GlobalLevel&LevelDebug == 0 {
		return
	}
	buf := getBuf()
	defer putBuf(buf)
	_println(fmt.Appendf(header(buf, prefix, "DEBUG"), format, v...))
}

func _println(buf []byte) {
	buf = bytes.TrimSpace(buf)
	buf = append(buf, '\n')
	_, _ = os.Stdout.Write(buf)
}

func header(buf []byte, prefix, class string) []byte {
	buf = time.Now().UTC().AppendFormat(buf, "2006-01-02 15:04:05.000")
	return fmt.Appendf(buf, " [%s] %s ", prefix, class)
}
