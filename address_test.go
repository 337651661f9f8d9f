// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import "testing"

func TestValidAddress(t *testing.T) {
	for _, tc := range []struct {
		addr string
		want bool
	}{
		{"00:11:22:33:44:55", true},
		{"00-11-22-33-44-55", true},
		{"001122334455", true},
		{"AA:BB:CC:DD:EE:FF", true},
		{"aa:bb:cc:dd:ee:ff", true},
		{"00:11:22:33:44", false},
		{"00:11:22:33:44:55:66", false},
		{"00:11:22-33-44-55", false},
		{"0011223344gg", false},
		{"", false},
		{"not-a-mac-address", false},
	} {
		got := validAddress(tc.addr)
		if got != tc.want {
			t.Errorf("validAddress(%q) = %v, want %v", tc.addr, got, tc.want)
		}
	}
}
