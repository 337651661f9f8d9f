// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind tags the taxonomy of errors a Session can raise. Every
// operation that can fail returns an *Error whose Kind a caller can
// switch on without parsing message text.
type Kind int

const (
	// UnknownError covers failures that don't fit any other Kind,
	// notably the acquisition stream dying before delivering a
	// single frame.
	UnknownError Kind = iota
	// InvalidAddress is raised by NewSession when the address does
	// not match any of the three accepted MAC forms.
	InvalidAddress
	// DeviceNotFound is raised when opening the transport fails or
	// times out.
	DeviceNotFound
	// ContactingDeviceError is raised when a write-flush or a read
	// does not complete within its deadline.
	ContactingDeviceError
	// DeviceNotIdle is raised when a command that requires the idle
	// state is issued during an acquisition.
	DeviceNotIdle
	// DeviceNotInAcquisition is raised when Read or Stop is called
	// while idle.
	DeviceNotInAcquisition
	// InvalidParameter is raised for out-of-range or malformed
	// command arguments (channels, API mode, DAC level, battery
	// threshold, trigger outputs).
	InvalidParameter
	// NotSupported is raised when decoding is attempted under an API
	// mode other than SCIENTISST.
	NotSupported
)

func (k Kind) String() string {
	switch k {
	case InvalidAddress:
		return "INVALID_ADDRESS"
	case DeviceNotFound:
		return "DEVICE_NOT_FOUND"
	case ContactingDeviceError:
		return "CONTACTING_DEVICE_ERROR"
	case DeviceNotIdle:
		return "DEVICE_NOT_IDLE"
	case DeviceNotInAcquisition:
		return "DEVICE_NOT_IN_ACQUISITION"
	case InvalidParameter:
		return "INVALID_PARAMETER"
	case NotSupported:
		return "NOT_SUPPORTED"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Error is the error type every exported Session operation returns.
// It carries a Kind so callers can branch on the taxonomy from §7 of
// the protocol design rather than matching message text, and wraps
// the underlying cause (a transport error, a context deadline, ...)
// when there is one.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "sense: " + e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return "sense: " + e.Kind.String() + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Err:  err,
	}
}

// IsKind reports whether err is, or wraps, a *sense.Error of the
// given Kind.
func IsKind(err error, kind Kind) bool {
	var serr *Error
	if !xerrors.As(err, &serr) {
		return false
	}
	return serr.Kind == kind
}
