// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopback_WriteAndFeed(t *testing.T) {
	lb := NewLoopback(nil)

	ctx := context.Background()
	if err := lb.Write(ctx, []byte{0x07}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	written := lb.Written()
	if len(written) != 1 || len(written[0]) != 1 || written[0][0] != 0x07 {
		t.Fatalf("Written = %v, want [[0x07]]", written)
	}

	lb.Feed([]byte("ScientISST v1\x00"))

	ctx2, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := lb.AwaitBytes(ctx2, 14); err != nil {
		t.Fatalf("AwaitBytes: %v", err)
	}

	got := lb.Consume(14)
	if string(got) != "ScientISST v1\x00" {
		t.Errorf("Consume = %q, want %q", got, "ScientISST v1\x00")
	}
}

func TestLoopback_AwaitBytes_timeout(t *testing.T) {
	lb := NewLoopback(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := lb.AwaitBytes(ctx, 1)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("AwaitBytes = %v, want context.DeadlineExceeded", err)
	}
}

func TestLoopback_CloseRemote_wakesAwait(t *testing.T) {
	lb := NewLoopback(nil)

	wantErr := errors.New("boom")
	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- lb.AwaitBytes(ctx, 1)
	}()

	lb.CloseRemote(wantErr)

	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Errorf("AwaitBytes = %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("AwaitBytes did not wake up after CloseRemote")
	}
}

func TestLoopback_Responder(t *testing.T) {
	lb := NewLoopback(nil).WithResponder(func(written []byte) []byte {
		if len(written) == 1 && written[0] == 0x07 {
			return []byte("ScientISST\x00")
		}
		return nil
	})

	if err := lb.Write(context.Background(), []byte{0x07}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := lb.RxPending(), len("ScientISST\x00"); got != want {
		t.Fatalf("RxPending = %d, want %d", got, want)
	}
}

func TestLoopback_onDisconnectFiresOnce(t *testing.T) {
	var calls int
	lb := NewLoopback(func(error) { calls++ })

	lb.CloseRemote(errors.New("gone"))
	lb.CloseRemote(errors.New("gone-again"))

	if calls != 1 {
		t.Errorf("onDisconnect called %d times, want 1", calls)
	}
}
