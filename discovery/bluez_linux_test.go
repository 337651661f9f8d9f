// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package discovery

import "testing"

func TestParseBluetoothctlDevices(t *testing.T) {
	out := []byte("Device 00:11:22:33:44:55 ScientISST-01\nnoise\nDevice AA:BB:CC:DD:EE:FF Some Other Device\n")
	got := parseBluetoothctlDevices(out)
	want := []Device{
		{Address: "00:11:22:33:44:55", Name: "ScientISST-01"},
		{Address: "AA:BB:CC:DD:EE:FF", Name: "Some Other Device"},
	}
	if len(got) != len(want) {
		t.Fatalf("parseBluetoothctlDevices() = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("parseBluetoothctlDevices()[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}
}
