// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import "github.com/scientisst/sense-go/frame"

// littleEndianMinimal encodes v as a little-endian unsigned integer
// using the minimum number of bytes needed to represent it; zero
// encodes as a single 0x00 byte. Every _send-style command argument
// (sample rate, in particular) is encoded this way.
func littleEndianMinimal(v uint64) []byte {
	if v == 0 {
		return []byte{0x00}
	}
	var buf []byte
	for v > 0 {
		buf = append(buf, byte(v&0xFF))
		v >>= 8
	}
	return buf
}

func cmdStop() []byte {
	return []byte{0x00}
}

func cmdStart(mask byte, simulated bool) []byte {
	op := byte(0x01)
	if simulated {
		op = 0x02
	}
	return []byte{op, mask}
}

func cmdSetAPI(api frame.ApiMode) []byte {
	return []byte{0x03 | byte(api)<<4}
}

func cmdSetRate(rateHz int) []byte {
	cmd := []byte{0x43}
	return append(cmd, littleEndianMinimal(uint64(rateHz))...)
}

func cmdVersion() []byte {
	return []byte{0x07}
}

// cmdOutputs builds the set-digital-outputs / trigger command word:
// bit 2 is O1, bit 3 is O2, the rest of the byte is the fixed
// 0b1011xx11 pattern.
func cmdOutputs(o1, o2 bool) []byte {
	b := byte(0xB3)
	if o1 {
		b |= 0x04
	}
	if o2 {
		b |= 0x08
	}
	return []byte{b}
}

func cmdDAC(level byte) []byte {
	return []byte{0xA3, level}
}

func cmdBattery(value byte) []byte {
	return []byte{value << 2}
}
