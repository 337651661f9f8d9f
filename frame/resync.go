// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

// ShiftWindow discards window[0], slides window[1:] down by one
// position and places next in the vacated last slot, returning the
// same backing array. It is the byte-level resynchronisation step run
// by the session's read loop whenever CheckCRC4 rejects the current
// window: the loop asks the transport for one fresh byte and calls
// ShiftWindow before retrying CheckCRC4.
func ShiftWindow(window []byte, next byte) []byte {
	copy(window, window[1:])
	window[len(window)-1] = next
	return window
}
