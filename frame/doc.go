// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame decodes the on-wire sample packets produced by a
// ScientISST Sense device in SCIENTISST API mode.
//
// Everything in this package is a pure function over byte slices: no
// I/O, no goroutines, no clocks. The caller (package sense) is
// responsible for pulling packet-sized windows of bytes off the
// transport and handing them to Decode, and for driving the
// byte-shift resynchronisation loop when CRC validation fails.
package frame // import "github.com/scientisst/sense-go/frame"
