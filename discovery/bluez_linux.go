// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package discovery

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// BlueZ lists bonded devices by shelling out to bluetoothctl rather
// than linking against a D-Bus client library.
type BlueZ struct{}

// Bonded runs "bluetoothctl devices Paired" and parses its
// "Device <MAC> <name>" output lines.
func (BlueZ) Bonded(ctx context.Context) ([]Device, error) {
	cmd := exec.CommandContext(ctx, "bluetoothctl", "devices", "Paired")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("discovery: could not list paired devices: %w", err)
	}
	return parseBluetoothctlDevices(out), nil
}

func parseBluetoothctlDevices(out []byte) []Device {
	var devs []Device
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 3 || fields[0] != "Device" {
			continue
		}
		devs = append(devs, Device{
			Address: fields[1],
			Name:    strings.Join(fields[2:], " "),
		})
	}
	return devs
}
