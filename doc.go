// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sense is a host-side client for the ScientISST Sense
// biosignal acquisition device. It drives the device's command
// protocol over a transport.Transport (in practice a Bluetooth RFCOMM
// link) and decodes the resulting sample stream with package frame.
//
// A Session is created around a device address, connected, started
// with a channel set and sample rate, read from in a loop, and
// eventually stopped and disconnected:
//
//	s, err := sense.NewSession("98:D3:51:FE:12:34")
//	if err != nil { ... }
//	if err := s.Connect(nil); err != nil { ... }
//	defer s.Disconnect()
//	if err := s.Start(1000, []frame.Channel{frame.AI1, frame.AI3}, false, frame.SCIENTISST); err != nil { ... }
//	frames, err := s.Read(100)
//	s.Stop()
package sense // import "github.com/scientisst/sense-go"

import (
	"fmt"
	"runtime/debug"
)

// Version returns the version of this module and its checksum. The
// returned values are only valid in binaries built with module
// support.
func Version() (version, sum string) {
	b, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	return versionOf(b)
}

func versionOf(b *debug.BuildInfo) (version, sum string) {
	if b == nil {
		return "", ""
	}

	const root = "github.com/scientisst/sense-go"
	for _, m := range b.Deps {
		if m.Path != root {
			continue
		}
		if m.Replace != nil {
			switch {
			case m.Replace.Version != "" && m.Replace.Path != "":
				return fmt.Sprintf("%s %s", m.Replace.Path, m.Replace.Version), m.Replace.Sum
			case m.Replace.Version != "":
				return m.Replace.Version, m.Replace.Sum
			case m.Replace.Path != "":
				return m.Replace.Path, m.Replace.Sum
			default:
				return m.Version + "*", ""
			}
		}
		return m.Version, m.Sum
	}
	return "", ""
}
