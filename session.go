// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/scientisst/sense-go/frame"
	"github.com/scientisst/sense-go/transport"
)

// Session is a state machine owning one device connection: the
// transport, the live acquisition configuration, and the legality of
// the command a caller is about to issue. A Session is not safe for
// concurrent use; see §5 of the design notes — command emission and
// response consumption are strictly serial.
type Session struct {
	address       string
	rfcommChannel uint8
	deadline      time.Duration
	msg           *log.Logger

	transport    transport.Transport
	onDisconnect func(error)

	connected bool
	acquiring bool

	apiMode        frame.ApiMode
	activeChannels []frame.Channel
	numChs         int
	sampleRate     int
	packetSize     int
}

// NewSession validates address against the three accepted MAC forms
// and constructs an idle, disconnected Session around it.
func NewSession(address string, opts ...Option) (*Session, error) {
	if !validAddress(address) {
		return nil, newError(InvalidAddress, "%q is not a valid MAC address", address)
	}

	s := &Session{
		address:       address,
		rfcommChannel: transport.DefaultChannel,
		deadline:      3 * time.Second,
		msg:           defaultLogger(),
		apiMode:       frame.BITALINO, // the device's power-on default
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Address returns the MAC address this Session was constructed with.
func (s *Session) Address() string { return s.address }

// Connected reports whether Connect has succeeded and Disconnect has
// not since been called.
func (s *Session) Connected() bool { return s.connected }

// Acquiring reports whether the device is currently streaming
// samples (between a successful Start and the matching Stop).
func (s *Session) Acquiring() bool { return s.acquiring }

// Connect opens the transport (dialing RFCOMM unless one was injected
// with WithTransport) and arms onDisconnect, which fires at most once
// if the link drops. onDisconnect may be nil. An injected transport is
// used as is: onDisconnect is not wired to it, and only the callback
// that transport was constructed with fires.
func (s *Session) Connect(onDisconnect func(error)) error {
	if s.connected {
		return newError(DeviceNotIdle, "session is already connected")
	}

	s.onDisconnect = onDisconnect

	if s.transport == nil {
		t, err := transport.DialRFCOMM(s.address, s.rfcommChannel, onDisconnect)
		if err != nil {
			s.msg.Printf("could not connect to %s: %+v", s.address, err)
			return wrapError(DeviceNotFound, err, "could not open transport to %s", s.address)
		}
		s.transport = t
	}

	s.connected = true
	s.msg.Printf("connected to %s", s.address)
	return nil
}

// Disconnect stops any in-progress acquisition and tears down the
// transport. It is safe to call on an already-disconnected Session.
func (s *Session) Disconnect() error {
	if !s.connected {
		return nil
	}

	if s.acquiring {
		_ = s.Stop() // best effort; disconnect proceeds regardless
	}

	err := s.transport.Close()
	s.transport = nil
	s.connected = false

	if err != nil {
		s.msg.Printf("could not cleanly close transport to %s: %+v", s.address, err)
		return wrapError(ContactingDeviceError, err, "could not close transport to %s", s.address)
	}
	s.msg.Printf("disconnected from %s", s.address)
	return nil
}

// send writes p to the transport, failing with ContactingDeviceError
// if it does not flush within the Session's deadline.
func (s *Session) send(p []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
	defer cancel()

	if err := s.transport.Write(ctx, p); err != nil {
		s.msg.Printf("could not write %d byte(s) to %s: %+v", len(p), s.address, err)
		return wrapError(ContactingDeviceError, err, "could not write %d byte(s) to device", len(p))
	}
	return nil
}

// recv blocks until n bytes are available and returns them, failing
// if they do not arrive within the Session's deadline or the
// transport closes first.
func (s *Session) recv(n int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.deadline)
	defer cancel()

	if err := s.transport.AwaitBytes(ctx, n); err != nil {
		return nil, err
	}
	return s.transport.Consume(n), nil
}

func (s *Session) clearRxBuffer() {
	if n := s.transport.RxPending(); n > 0 {
		s.transport.Consume(n)
	}
}

// Version sends the version-query command and parses the device's
// banner one byte at a time, per the streaming matcher in version.go.
func (s *Session) Version() (string, error) {
	if err := s.send(cmdVersion()); err != nil {
		return "", err
	}

	var vp versionParser
	for {
		b, err := s.recv(1)
		if err != nil {
			return "", wrapError(ContactingDeviceError, err, "could not read version banner")
		}
		if vp.feed(b[0]) {
			return vp.result(), nil
		}
	}
}

// Start transitions the Session from idle to acquiring: it switches
// the device's API mode, sets the sample rate, clears any stale RX
// bytes, and issues the live- or simulated-start command with the
// requested channel mask.
func (s *Session) Start(sampleRate int, channels []frame.Channel, simulated bool, api frame.ApiMode) error {
	if s.numChs != 0 {
		return newError(DeviceNotIdle, "start called while already acquiring")
	}
	if api != frame.SCIENTISST && api != frame.JSON {
		return newError(InvalidParameter, "unsupported API mode %v for start", api)
	}

	seen := make(map[frame.Channel]bool, len(channels))
	for _, ch := range channels {
		if !ch.Valid() {
			return newError(InvalidParameter, "channel %d is out of range [1,8]", ch)
		}
		if seen[ch] {
			return newError(InvalidParameter, "duplicate channel %d", ch)
		}
		seen[ch] = true
	}

	mask := frame.Mask(channels)

	if err := s.send(cmdSetAPI(api)); err != nil {
		return err
	}
	if err := s.send(cmdSetRate(sampleRate)); err != nil {
		return err
	}
	s.clearRxBuffer()
	if err := s.send(cmdStart(mask, simulated)); err != nil {
		return err
	}

	resolved := frame.ResolveChannels(channels)

	var packetSize int
	if api == frame.SCIENTISST {
		var err error
		packetSize, err = frame.PacketSize(frame.SCIENTISST, resolved)
		if err != nil {
			return wrapError(InvalidParameter, err, "could not compute packet size")
		}
	}

	s.apiMode = api
	s.activeChannels = resolved
	s.numChs = len(resolved)
	s.sampleRate = sampleRate
	s.packetSize = packetSize
	s.acquiring = true

	s.msg.Printf("started acquisition on %s: rate=%d channels=%v api=%v", s.address, sampleRate, resolved, api)
	return nil
}

// Read pulls up to n frames off the acquisition stream. Fewer than n
// may come back without error: a transport timeout or disconnect
// mid-stream yields the frames decoded so far, never a partial frame.
// It is only an error if the stream ends before a single frame is
// decoded.
func (s *Session) Read(n int) ([]frame.Frame, error) {
	if s.numChs == 0 {
		return nil, newError(DeviceNotInAcquisition, "read called while idle")
	}
	if s.apiMode != frame.SCIENTISST {
		return nil, newError(NotSupported, "decode not supported for API mode %v", s.apiMode)
	}

	frames := make([]frame.Frame, 0, n)
	for len(frames) < n {
		fr, err := s.readOneFrame()
		if err != nil {
			if len(frames) == 0 {
				if errors.Is(err, context.DeadlineExceeded) {
					return nil, wrapError(ContactingDeviceError, err, "no frame arrived within the deadline")
				}
				return nil, wrapError(UnknownError, err, "acquisition stream ended before any frame was read")
			}
			break
		}
		frames = append(frames, fr)
	}
	return frames, nil
}

// readOneFrame runs the byte-shift resynchronisation loop: pull a
// packetSize window, and while its CRC-4 doesn't check out, discard
// the oldest byte and pull one fresh byte, until it does.
func (s *Session) readOneFrame() (frame.Frame, error) {
	window, err := s.recv(s.packetSize)
	if err != nil {
		return frame.Frame{}, err
	}

	for !frame.CheckCRC4(window) {
		b, err := s.recv(1)
		if err != nil {
			return frame.Frame{}, err
		}
		window = frame.ShiftWindow(window, b[0])
	}

	return frame.Decode(frame.SCIENTISST, s.activeChannels, window)
}

// Stop transitions the Session from acquiring back to idle.
func (s *Session) Stop() error {
	if s.numChs == 0 {
		return newError(DeviceNotInAcquisition, "stop called while idle")
	}

	if err := s.send(cmdStop()); err != nil {
		return err
	}

	s.clearRxBuffer()
	s.numChs = 0
	s.sampleRate = 0
	s.acquiring = false
	s.activeChannels = nil
	s.packetSize = 0

	s.msg.Printf("stopped acquisition on %s", s.address)
	return nil
}

// Trigger drives the two digital outputs. outputs must have exactly
// two elements: O1, then O2.
func (s *Session) Trigger(outputs []bool) error {
	if len(outputs) != 2 {
		return newError(InvalidParameter, "trigger requires exactly 2 outputs, got %d", len(outputs))
	}
	return s.send(cmdOutputs(outputs[0], outputs[1]))
}

// Dac sets the analog output PWM level, 0..255.
func (s *Session) Dac(level int) error {
	if level < 0 || level > 255 {
		return newError(InvalidParameter, "dac level %d out of range [0,255]", level)
	}
	return s.send(cmdDAC(byte(level)))
}

// Battery sets the low-battery LED threshold, 0..63. Idle-only.
func (s *Session) Battery(value int) error {
	if s.numChs != 0 {
		return newError(DeviceNotIdle, "battery threshold requires idle state")
	}
	if value < 0 || value > 63 {
		return newError(InvalidParameter, "battery threshold %d out of range [0,63]", value)
	}
	return s.send(cmdBattery(byte(value)))
}
