// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frame

import "fmt"

// PacketSize computes the on-wire size, in bytes, of a packet carrying
// the given active channels under the given API mode. Only
// SCIENTISST is supported; any other mode returns an error.
//
// size = 3*nExtern + intern-bytes(nIntern) + 2
//
// where intern-bytes rounds nIntern 12-bit samples down to whole bytes,
// with the 4 odd bits piggy-backing into the I/O byte (see Decode).
func PacketSize(api ApiMode, chs []Channel) (int, error) {
	if api != SCIENTISST {
		return 0, fmt.Errorf("frame: packet size not supported for API mode %v", api)
	}

	nIntern, nExtern := Counts(chs)

	var internBytes int
	if nIntern%2 == 0 {
		internBytes = (nIntern * 12) / 8
	} else {
		internBytes = (nIntern*12 - 4) / 8
	}

	return 3*nExtern + internBytes + 2, nil
}
