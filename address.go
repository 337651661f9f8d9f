// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sense

import "regexp"

// The device address is validated against one of three MAC forms
// before any transport is ever opened: colon-separated, dash-
// separated, or bare hex.
var (
	reMACColon = regexp.MustCompile(`^([0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)
	reMACDash  = regexp.MustCompile(`^([0-9A-Fa-f]{2}-){5}[0-9A-Fa-f]{2}$`)
	reMACBare  = regexp.MustCompile(`^[0-9A-Fa-f]{12}$`)
)

// validAddress reports whether address matches one of the three
// accepted MAC forms.
func validAddress(address string) bool {
	return reMACColon.MatchString(address) ||
		reMACDash.MatchString(address) ||
		reMACBare.MatchString(address)
}
