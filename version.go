// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

// versionHeader is the fixed prefix the device's version banner
// always starts with, once any leading junk on the line has been
// skipped by the resync below.
const versionHeader = "ScientISST"

// versionParser is a one-byte-at-a-time streaming matcher for the
// device's version banner: arbitrary leading junk, then the fixed
// header, then free-form version text terminated by a single 0x00
// byte (newlines within the text are dropped).
//
// The header bytes are kept as part of the returned string: matching
// accumulates every header byte into the result buffer as it goes, so
// a mismatch mid-prefix can cheaply restart by truncating rather than
// re-scanning.
type versionParser struct {
	matched int
	buf     []byte
	done    bool
}

// feed processes one byte and reports whether the banner is now
// complete (the terminating 0x00 was just consumed).
func (p *versionParser) feed(b byte) bool {
	if p.done {
		return true
	}

	if p.matched < len(versionHeader) {
		if b == versionHeader[p.matched] {
			p.buf = append(p.buf, b)
			p.matched++
			return false
		}
		// Mismatch mid-prefix: restart the match. The current byte
		// is counted if it equals the header's first character.
		if b == versionHeader[0] {
			p.buf = []byte{b}
			p.matched = 1
		} else {
			p.buf = p.buf[:0]
			p.matched = 0
		}
		return false
	}

	if b == 0x00 {
		p.done = true
		return true
	}
	if b != 0x0A {
		p.buf = append(p.buf, b)
	}
	return false
}

func (p *versionParser) result() string { return string(p.buf) }
