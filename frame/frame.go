// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/xerrors"
)

// Frame is a single decoded sample point.
type Frame struct {
	Seq     uint8        // 4-bit sequence counter, 0..15, wraps.
	Analog  [8]Sample    // slots 0..5: AI1..AI6 (12-bit); 6..7: AX1/AX2 (24-bit).
	Digital [4]bool      // I1, I2, O1, O2 at sample time.
}

// Sample is the decoded value of one analog channel slot. A slot
// whose channel was not requested has Set == false and is
// distinguishable from a requested channel that happened to read 0.
type Sample struct {
	Value uint32
	Set   bool
}

// Decode parses a single packet produced under SCIENTISST API mode.
// packet must have exactly the length returned by PacketSize for api
// and chs; its CRC-4 is not checked here (callers run the
// resynchronisation loop around CheckCRC4 before calling Decode).
//
// chs is the session's active channel list, in the order the caller
// originally requested them; Decode walks it in reverse, matching the
// on-wire ordering the device produces.
func Decode(api ApiMode, chs []Channel, packet []byte) (Frame, error) {
	if api != SCIENTISST {
		return Frame{}, xerrors.Errorf("frame: decode not supported for API mode %v", api)
	}

	size, err := PacketSize(api, chs)
	if err != nil {
		return Frame{}, xerrors.Errorf("frame: could not compute packet size: %w", err)
	}
	if len(packet) != size {
		return Frame{}, fmt.Errorf(
			"frame: packet has wrong length (got=%d, want=%d)",
			len(packet), size,
		)
	}

	var fr Frame

	last := packet[size-1]
	fr.Seq = last >> 4

	io := packet[size-2]
	for i := 0; i < 4; i++ {
		fr.Digital[i] = io&(0x80>>uint(i)) != 0
	}

	byteIt := 0
	midFrame := false
	for i := len(chs) - 1; i >= 0; i-- {
		ch := chs[i]
		switch {
		case ch.External24Bit():
			v := binary.LittleEndian.Uint32(pad4(packet[byteIt : byteIt+3]))
			v &= 0xFFFFFF
			fr.Analog[ch-1] = Sample{Value: v, Set: true}
			byteIt += 3

		case ch.Internal12Bit():
			v := binary.LittleEndian.Uint16(packet[byteIt : byteIt+2])
			var val uint32
			if !midFrame {
				val = uint32(v) & 0xFFF
				byteIt++
				midFrame = true
			} else {
				val = uint32(v) >> 4
				byteIt += 2
				midFrame = false
			}
			fr.Analog[ch-1] = Sample{Value: val, Set: true}

		default:
			return Frame{}, fmt.Errorf("frame: invalid channel %d", ch)
		}
	}

	return fr, nil
}

// pad4 returns a 4-byte slice with p copied into the low 3 bytes and
// the 4th byte zeroed, so a 3-byte external-channel field can be read
// with binary.LittleEndian.Uint32.
func pad4(p []byte) []byte {
	var b [4]byte
	copy(b[:3], p)
	return b[:]
}
