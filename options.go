// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import (
	"log"
	"os"
	"time"

	"github.com/scientisst/sense-go/transport"
)

// Option configures a Session at construction time, following the
// same WithXxx(...)(target) shape used throughout this module's
// ancestry for optional, order-independent configuration.
type Option func(*Session)

// WithLogger installs l as the Session's diagnostic logger. The
// default logs to os.Stderr with no timestamp prefix, matching this
// module's command-line tools.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.msg = l }
}

// WithDeadline overrides the 3 s write-flush/read deadline every
// command and read operation is held to.
func WithDeadline(d time.Duration) Option {
	return func(s *Session) { s.deadline = d }
}

// WithRFCOMMChannel overrides the RFCOMM channel Connect dials when
// no transport has been injected with WithTransport. The device's
// firmware listens on transport.DefaultChannel.
func WithRFCOMMChannel(ch uint8) Option {
	return func(s *Session) { s.rfcommChannel = ch }
}

// WithTransport injects an already-open Transport, bypassing RFCOMM
// dialing entirely; Connect then only marks the Session connected.
// Intended for tests and for simulated sessions built on
// transport.Loopback.
func WithTransport(t transport.Transport) Option {
	return func(s *Session) { s.transport = t }
}

func defaultLogger() *log.Logger {
	return log.New(os.Stderr, "sense: ", 0)
}
