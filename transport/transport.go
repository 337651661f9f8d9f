// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned by Loopback's Write once Close has run. After
// a remote hang-up, AwaitBytes reports the error the hang-up was
// recorded with instead; RFCOMM reports its socket's own errors.
var ErrClosed = errors.New("transport: closed")

// Transport is the minimal duplex byte pipe a Session needs. Sessions
// never see anything below this surface: not sockets, not file
// descriptors, not D-Bus handles.
type Transport interface {
	// Write enqueues p for transmission and blocks until it has been
	// flushed to the remote end or ctx is done.
	Write(ctx context.Context, p []byte) error

	// RxPending reports the number of bytes currently buffered and
	// not yet consumed.
	RxPending() int

	// AwaitBytes blocks until RxPending() >= n or ctx is done,
	// whichever happens first.
	AwaitBytes(ctx context.Context, n int) error

	// Consume removes and returns the first n buffered bytes. It
	// panics if n > RxPending(); callers must AwaitBytes first.
	Consume(n int) []byte

	// Close releases the underlying resources. Close is idempotent.
	Close() error
}

// OnDisconnect is invoked, at most once, when the ingest loop detects
// that the remote end has closed the pipe. It receives the error the
// underlying read returned (never nil).
type OnDisconnect func(error)
