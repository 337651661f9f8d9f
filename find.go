// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import (
	"context"
	"strings"

	"github.com/scientisst/sense-go/discovery"
)

// Find defers to the discovery collaborator and returns the
// addresses of bonded, currently reachable devices whose advertised
// name contains "scientisst", case-insensitively.
func Find(ctx context.Context) ([]string, error) {
	devs, err := discovery.Scan(ctx, discovery.BlueZ{})
	if err != nil {
		return nil, wrapError(DeviceNotFound, err, "could not enumerate bonded devices")
	}

	var out []string
	for _, d := range devs {
		if strings.Contains(strings.ToLower(d.Name), "scientisst") {
			out = append(out, d.Address)
		}
	}
	return out, nil
}
