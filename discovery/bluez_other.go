// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux

package discovery

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("discovery: bonded-device enumeration is only supported on linux")

// BlueZ is unavailable outside Linux; bluetoothctl and BlueZ itself
// are Linux-only.
type BlueZ struct{}

func (BlueZ) Bonded(ctx context.Context) ([]Device, error) {
	return nil, errUnsupported
}
