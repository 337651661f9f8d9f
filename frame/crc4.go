// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

// crc4Table is the 16-entry CRC-4 lookup table used by the device's
// wire protocol. Indexing is always crc4Table[i] with i in 0..15.
var crc4Table = [16]byte{0, 3, 6, 5, 12, 15, 10, 9, 11, 8, 13, 14, 7, 4, 1, 2}

// crc4 computes the CRC-4 of packet, folding only the high nibble of
// the final byte (its low nibble carries the received CRC and is not
// part of the checksum computation).
func crc4(packet []byte) byte {
	var crc byte
	n := len(packet)
	for _, b := range packet[:n-1] {
		crc = crc4Table[crc] ^ (b >> 4)
		crc = crc4Table[crc] ^ (b & 0x0F)
	}
	last := packet[n-1]
	crc = crc4Table[crc] ^ (last >> 4)
	return crc
}

// CheckCRC4 reports whether packet's trailing nibble matches the
// CRC-4 computed over the rest of the packet. packet must have at
// least 2 bytes; a shorter slice is never valid.
func CheckCRC4(packet []byte) bool {
	if len(packet) < 2 {
		return false
	}
	want := packet[len(packet)-1] & 0x0F
	return crc4(packet) == want
}
