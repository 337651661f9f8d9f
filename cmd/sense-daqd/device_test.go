// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/binary"
	"testing"

	"github.com/scientisst/sense-go/frame"
)

func TestEncodeFrame(t *testing.T) {
	fr := frame.Frame{Seq: 7}
	fr.Analog[0] = frame.Sample{Value: 42, Set: true}
	fr.Digital[1] = true

	got := encodeFrame(fr)

	wantLen := 1 + 8*5 + 4
	if len(got) != wantLen {
		t.Fatalf("encodeFrame() length = %d, want %d", len(got), wantLen)
	}
	if got[0] != 7 {
		t.Errorf("seq byte = %d, want 7", got[0])
	}
	if v := binary.LittleEndian.Uint32(got[1:5]); v != 42 {
		t.Errorf("analog[0] value = %d, want 42", v)
	}
	if got[5] != 1 {
		t.Errorf("analog[0] set flag = %d, want 1", got[5])
	}
	if got[1+8*5+1] != 1 {
		t.Errorf("digital[1] = %d, want 1", got[1+8*5+1])
	}
}

func TestChannelList(t *testing.T) {
	tests := []struct {
		chans []frame.Channel
		want  string
	}{
		{nil, ""},
		{[]frame.Channel{frame.AI1}, "1"},
		{[]frame.Channel{frame.AI3, frame.AI1, frame.AI6}, "3,1,6"},
	}
	for _, tt := range tests {
		if got := channelList(tt.chans); got != tt.want {
			t.Errorf("channelList(%v) = %q, want %q", tt.chans, got, tt.want)
		}
	}
}
