// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"sync"
	"time"
)

// pollInterval is the granularity at which AwaitBytes re-checks
// rxPending. The source this core is modelled on busy-waits in
// 150 ms slices against a fixed 3 s deadline (20 polls); a deadline
// is now supplied by the caller via ctx, but the poll granularity is
// kept the same so behaviour under a real device is unchanged.
const pollInterval = 150 * time.Millisecond

// ingest is the shared receive-buffer plumbing embedded by every
// concrete Transport. Producers call push as bytes arrive off the
// wire; markClosed records the terminal error once the remote end
// hangs up, waking any AwaitBytes callers without making them wait
// out their deadline.
type ingest struct {
	mu       sync.Mutex
	buf      []byte
	closed   bool
	closeErr error
	onDisc   OnDisconnect
	discOnce sync.Once
}

func newIngest(onDisc OnDisconnect) *ingest {
	return &ingest{onDisc: onDisc}
}

func (in *ingest) push(p []byte) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.closed {
		return
	}
	in.buf = append(in.buf, p...)
}

// markClosed records err as the reason the ingest loop stopped and
// fires the onDisconnect callback exactly once.
func (in *ingest) markClosed(err error) {
	in.mu.Lock()
	in.closed = true
	in.closeErr = err
	in.mu.Unlock()

	if in.onDisc != nil {
		in.discOnce.Do(func() { in.onDisc(err) })
	}
}

func (in *ingest) pending() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.buf)
}

func (in *ingest) consume(n int) []byte {
	in.mu.Lock()
	defer in.mu.Unlock()
	if n > len(in.buf) {
		panic("transport: Consume called with n > RxPending()")
	}
	out := make([]byte, n)
	copy(out, in.buf[:n])
	in.buf = in.buf[n:]
	return out
}

// await blocks, polling every pollInterval, until at least n bytes
// are buffered, the ingest loop has closed, or ctx is done.
func (in *ingest) await(ctx context.Context, n int) error {
	if in.pending() >= n {
		return nil
	}

	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			in.mu.Lock()
			ready := len(in.buf) >= n
			closed := in.closed
			closeErr := in.closeErr
			in.mu.Unlock()

			if ready {
				return nil
			}
			if closed {
				return closeErr
			}
		}
	}
}
