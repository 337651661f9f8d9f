// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import (
	"encoding/binary"
	"fmt"
)

// Encode builds a valid on-wire SCIENTISST packet for fr, restricted
// to the channels in chs (in the same order Decode expects them).
// It is the mirror of Decode and exists chiefly so tests can build
// fixtures and so a simulated/mock transport can manufacture frames;
// the device itself is the only real encoder on the wire.
func Encode(chs []Channel, fr Frame) ([]byte, error) {
	size, err := PacketSize(SCIENTISST, chs)
	if err != nil {
		return nil, fmt.Errorf("frame: could not compute packet size: %w", err)
	}

	packet := make([]byte, size)

	byteIt := 0
	midFrame := false
	for i := len(chs) - 1; i >= 0; i-- {
		ch := chs[i]
		sample := fr.Analog[ch-1]
		switch {
		case ch.External24Bit():
			var buf [4]byte
			binary.LittleEndian.PutUint32(buf[:], sample.Value&0xFFFFFF)
			copy(packet[byteIt:byteIt+3], buf[:3])
			byteIt += 3

		case ch.Internal12Bit():
			if !midFrame {
				v := sample.Value & 0xFFF
				var buf [2]byte
				binary.LittleEndian.PutUint16(buf[:], uint16(v))
				packet[byteIt] = buf[0]
				packet[byteIt+1] |= buf[1] & 0x0F
				byteIt++
				midFrame = true
			} else {
				v := (sample.Value & 0xFFF) << 4
				var buf [2]byte
				binary.LittleEndian.PutUint16(buf[:], uint16(v))
				packet[byteIt] |= buf[0]
				packet[byteIt+1] = buf[1]
				byteIt += 2
				midFrame = false
			}

		default:
			return nil, fmt.Errorf("frame: invalid channel %d", ch)
		}
	}

	var io byte
	for i := 0; i < 4; i++ {
		if fr.Digital[i] {
			io |= 0x80 >> uint(i)
		}
	}
	// An odd internal-channel count leaves its last channel's high
	// nibble already written into this byte (see Decode); OR in the
	// digital bits rather than clobbering it.
	packet[size-2] |= io

	packet[size-1] = fr.Seq << 4
	packet[size-1] |= crc4(packet)

	return packet, nil
}
