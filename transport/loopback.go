// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"sync"
)

// Loopback is an in-memory Transport for tests and for exercising a
// Session without a real device. Writes are recorded verbatim for
// inspection; bytes queued for the Session to receive are supplied by
// the test via Feed, or produced by a Responder installed with
// WithResponder that reacts to each write.
type Loopback struct {
	*ingest

	mu      sync.Mutex
	written [][]byte
	closed  bool

	responder func(written []byte) []byte
}

// NewLoopback creates a Loopback transport. onDisc, if non-nil, fires
// when CloseRemote is called.
func NewLoopback(onDisc OnDisconnect) *Loopback {
	return &Loopback{ingest: newIngest(onDisc)}
}

// WithResponder installs a function invoked synchronously after each
// Write with the bytes just written; its return value, if non-empty,
// is queued onto the receive buffer as if the device had replied.
func (l *Loopback) WithResponder(fn func(written []byte) []byte) *Loopback {
	l.mu.Lock()
	l.responder = fn
	l.mu.Unlock()
	return l
}

// Feed queues p onto the transport's receive buffer, as if it had
// just arrived from the device.
func (l *Loopback) Feed(p []byte) {
	l.push(p)
}

// Written returns every byte slice passed to Write so far, in order.
func (l *Loopback) Written() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.written))
	copy(out, l.written)
	return out
}

// CloseRemote simulates the far end hanging up: subsequent AwaitBytes
// calls fail with err instead of blocking out their deadline.
func (l *Loopback) CloseRemote(err error) {
	l.markClosed(err)
}

func (l *Loopback) Write(ctx context.Context, p []byte) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	l.written = append(l.written, cp)
	responder := l.responder
	l.mu.Unlock()

	if responder != nil {
		if resp := responder(cp); len(resp) > 0 {
			l.push(resp)
		}
	}
	return nil
}

func (l *Loopback) RxPending() int { return l.pending() }

func (l *Loopback) AwaitBytes(ctx context.Context, n int) error { return l.await(ctx, n) }

func (l *Loopback) Consume(n int) []byte { return l.consume(n) }

func (l *Loopback) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}
