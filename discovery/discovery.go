// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package discovery enumerates bonded Bluetooth devices and probes
// which of them are actually reachable right now. It is the external
// collaborator the core session type defers to for device discovery;
// it never speaks the device's own command protocol.
package discovery // import "github.com/scientisst/sense-go/discovery"

import (
	"context"
	"fmt"

	"github.com/scientisst/sense-go/transport"
	"golang.org/x/sync/errgroup"
)

// Device is a bonded Bluetooth device as reported by the platform's
// pairing database.
type Device struct {
	Address string
	Name    string
}

// Scanner enumerates bonded devices. The concrete implementation is
// platform-specific; see bluez_linux.go.
type Scanner interface {
	Bonded(ctx context.Context) ([]Device, error)
}

// Scan lists bonded devices via s and fans out a concurrent RFCOMM
// reachability probe against each one, returning only the devices
// that actually answer. A device that is bonded but powered off or
// out of range is dropped rather than reported as an error.
func Scan(ctx context.Context, s Scanner) ([]Device, error) {
	bonded, err := s.Bonded(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovery: could not list bonded devices: %w", err)
	}

	reachable := make([]bool, len(bonded))
	var grp errgroup.Group
	for i, dev := range bonded {
		i, dev := i, dev
		grp.Go(func() error {
			reachable[i] = probe(dev.Address)
			return nil
		})
	}
	_ = grp.Wait() // probe never returns an error; only ctx cancellation would, and it isn't wired in.

	out := make([]Device, 0, len(bonded))
	for i, dev := range bonded {
		if reachable[i] {
			out = append(out, dev)
		}
	}
	return out, nil
}

func probe(address string) bool {
	t, err := transport.DialRFCOMM(address, transport.DefaultChannel, nil)
	if err != nil {
		return false
	}
	_ = t.Close()
	return true
}
