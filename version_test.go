// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import "testing"

func TestVersionParser_bannerFixture(t *testing.T) {
	input := []byte("ZZScientISST v1.2\nextra\n\x00")

	var vp versionParser
	for i, b := range input {
		done := vp.feed(b)
		if done {
			if i != len(input)-1 {
				t.Fatalf("feed reported done at byte %d, want %d", i, len(input)-1)
			}
			break
		}
	}

	got := vp.result()
	want := "ScientISST v1.2extra"
	if got != want {
		t.Errorf("vp.result() = %q, want %q", got, want)
	}
}

func TestVersionParser_noLeadingJunk(t *testing.T) {
	input := []byte("ScientISST v2.0\x00")

	var vp versionParser
	var got string
	for _, b := range input {
		if vp.feed(b) {
			got = vp.result()
			break
		}
	}

	want := "ScientISST v2.0"
	if got != want {
		t.Errorf("vp.result() = %q, want %q", got, want)
	}
}

func TestVersionParser_mismatchRestart(t *testing.T) {
	// "Scie" then a mismatch, then the real header.
	input := []byte("ScieXScientISSTvX\x00")

	var vp versionParser
	var got string
	for _, b := range input {
		if vp.feed(b) {
			got = vp.result()
			break
		}
	}

	want := "ScientISSTvX"
	if got != want {
		t.Errorf("vp.result() = %q, want %q", got, want)
	}
}
