// Package memzero wipes secret buffers once they are no longer needed.
package memzero

import (
	"crypto/subtle"
	"runtime"
)

// Zero overwrites b with zeros in a constant-time friendly way.
func Zero(b []byte) {
	if len(b) == 0 {
		return
	}
	zero := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zero)
	// Keep b live until the copy has happened.
	runtime.KeepAlive(b)
}
