// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport abstracts the duplex byte pipe a Session drives a
// ScientISST Sense device over. The only concrete implementation that
// talks to real hardware is RFCOMM, built on a Bluetooth RFCOMM
// socket; Loopback exists for tests and for the simulated-mode
// fixtures used by package sense's own test suite.
//
// Every Transport drives an internal ingest loop that appends
// incoming bytes to an unbounded buffer and marks the transport
// closed (with an error) when the remote end hangs up, so that a
// caller blocked in AwaitBytes is woken with an error rather than
// left hanging forever.
package transport // import "github.com/scientisst/sense-go/transport"
