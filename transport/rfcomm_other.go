// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package transport

import (
	"context"
	"fmt"
)

// DefaultChannel is the RFCOMM channel the device listens on once
// bonded; it is fixed by the firmware, not negotiated via SDP.
const DefaultChannel = 1

// DialRFCOMM is unavailable outside Linux: RFCOMM sockets are a
// BlueZ/Linux-specific extension to AF_BLUETOOTH with no portable
// equivalent.
func DialRFCOMM(address string, channel uint8, onDisc OnDisconnect) (*RFCOMM, error) {
	return nil, fmt.Errorf("transport: RFCOMM is only supported on linux")
}

// RFCOMM is declared here so code referencing the *transport.RFCOMM
// type still compiles on non-Linux platforms; DialRFCOMM always fails
// before one is ever constructed, so these methods are never reached.
type RFCOMM struct{}

func (*RFCOMM) Write(context.Context, []byte) error { return errUnsupported }
func (*RFCOMM) RxPending() int                       { return 0 }
func (*RFCOMM) AwaitBytes(context.Context, int) error { return errUnsupported }
func (*RFCOMM) Consume(int) []byte                    { return nil }
func (*RFCOMM) Close() error                          { return errUnsupported }

var errUnsupported = fmt.Errorf("transport: RFCOMM is only supported on linux")
