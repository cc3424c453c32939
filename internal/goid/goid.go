// Package goid extracts the current goroutine's id from its stack header.
//
// The runtime does not expose goroutine identity on purpose, and ordinary
// code should not depend on it. txlin needs it for exactly one thing: the
// capability check that distinguishes the owning goroutine of the native
// window from registered worker goroutines at a primitive call boundary.
package goid

import (
	"bytes"
	"runtime"
	"strconv"
)

var prefix = []byte("goroutine ")

// ID returns the current goroutine's id.
func ID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// First line: "goroutine 123 [running]:".
	b := bytes.TrimPrefix(buf[:n], prefix)
	i := bytes.IndexByte(b, ' ')
	if i < 0 {
		return -1
	}
	id, err := strconv.ParseInt(string(b[:i]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
