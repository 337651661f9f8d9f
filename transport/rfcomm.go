// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package transport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// RFCOMM is a Transport backed by a Bluetooth RFCOMM socket
// (AF_BLUETOOTH / BTPROTO_RFCOMM), the link a ScientISST Sense device
// actually speaks over. It is Linux-only: RFCOMM sockets are a Linux
// BlueZ extension with no portable equivalent.
type RFCOMM struct {
	*ingest

	conn *os.File
	fd   int
}

// DefaultChannel is the RFCOMM channel the device listens on once
// bonded; it is fixed by the firmware, not negotiated via SDP.
const DefaultChannel = 1

// DialRFCOMM opens an RFCOMM connection to the device at address
// (any of the three MAC forms package sense accepts) on channel.
// onDisc, if non-nil, is invoked once the connection drops.
func DialRFCOMM(address string, channel uint8, onDisc OnDisconnect) (*RFCOMM, error) {
	mac, err := parseMAC(address)
	if err != nil {
		return nil, fmt.Errorf("transport: invalid address %q: %w", address, err)
	}

	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_STREAM, unix.BTPROTO_RFCOMM)
	if err != nil {
		return nil, fmt.Errorf("transport: could not open RFCOMM socket: %w", err)
	}

	addr := &unix.SockaddrRFCOMM{Addr: mac, Channel: channel}
	if err := unix.Connect(fd, addr); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: could not connect to %s: %w", address, err)
	}

	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: could not set non-blocking mode: %w", err)
	}

	conn := os.NewFile(uintptr(fd), "rfcomm:"+address)

	rf := &RFCOMM{
		ingest: newIngest(onDisc),
		conn:   conn,
		fd:     fd,
	}
	go rf.readLoop()

	return rf, nil
}

func (rf *RFCOMM) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := rf.conn.Read(buf)
		if n > 0 {
			rf.push(buf[:n])
		}
		if err != nil {
			if errors.Is(err, os.ErrClosed) {
				// Closed locally by Close: not a remote hang-up.
				return
			}
			rf.markClosed(fmt.Errorf("transport: RFCOMM read loop stopped: %w", err))
			return
		}
	}
}

func (rf *RFCOMM) Write(ctx context.Context, p []byte) error {
	if dl, ok := ctx.Deadline(); ok {
		_ = rf.conn.SetWriteDeadline(dl)
	} else {
		_ = rf.conn.SetWriteDeadline(time.Time{})
	}

	_, err := rf.conn.Write(p)
	if err != nil {
		return fmt.Errorf("transport: could not write to RFCOMM link: %w", err)
	}
	return nil
}

func (rf *RFCOMM) RxPending() int { return rf.pending() }

func (rf *RFCOMM) AwaitBytes(ctx context.Context, n int) error { return rf.await(ctx, n) }

func (rf *RFCOMM) Consume(n int) []byte { return rf.consume(n) }

func (rf *RFCOMM) Close() error {
	return rf.conn.Close()
}

// parseMAC accepts the same three MAC forms package sense validates
// (colon-separated, dash-separated, bare hex) and returns the 6
// address bytes in the order BlueZ's SockaddrRFCOMM expects them
// (reversed relative to the human-readable, network-order string).
func parseMAC(address string) ([6]byte, error) {
	var out [6]byte

	hex := address
	switch {
	case strings.Contains(address, ":"):
		hex = strings.ReplaceAll(address, ":", "")
	case strings.Contains(address, "-"):
		hex = strings.ReplaceAll(address, "-", "")
	}
	if len(hex) != 12 {
		return out, fmt.Errorf("address %q does not have 12 hex digits", address)
	}

	for i := 0; i < 6; i++ {
		v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return out, fmt.Errorf("address %q: %w", address, err)
		}
		out[5-i] = byte(v)
	}
	return out, nil
}
