// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sense "github.com/scientisst/sense-go"
	"github.com/scientisst/sense-go/frame"
)

var errQuit = errors.New("sense-shell: quit")

// dispatch runs one parsed command line against sess, returning the
// (possibly newly-connected) session and any error. errQuit signals
// that the shell loop should exit.
func dispatch(sess *sense.Session, fields []string) (*sense.Session, error) {
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return sess, errQuit

	case "find":
		addrs, err := sense.Find(context.Background())
		if err != nil {
			return sess, err
		}
		for _, a := range addrs {
			fmt.Println(a)
		}
		return sess, nil

	case "connect":
		if len(args) != 1 {
			return sess, fmt.Errorf("usage: connect <address>")
		}
		s, err := sense.NewSession(args[0])
		if err != nil {
			return sess, err
		}
		if err := s.Connect(nil); err != nil {
			return sess, err
		}
		return s, nil

	case "disconnect":
		if sess == nil {
			return sess, errNotConnected
		}
		return nil, sess.Disconnect()

	case "version":
		if sess == nil {
			return sess, errNotConnected
		}
		v, err := sess.Version()
		if err != nil {
			return sess, err
		}
		fmt.Println(v)
		return sess, nil

	case "start":
		if sess == nil {
			return sess, errNotConnected
		}
		return sess, startCmd(sess, args)

	case "read":
		if sess == nil {
			return sess, errNotConnected
		}
		n := 1
		if len(args) == 1 {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return sess, fmt.Errorf("usage: read [count]")
			}
			n = v
		}
		frames, err := sess.Read(n)
		if err != nil {
			return sess, err
		}
		for _, fr := range frames {
			fmt.Printf("%+v\n", fr)
		}
		return sess, nil

	case "stop":
		if sess == nil {
			return sess, errNotConnected
		}
		return sess, sess.Stop()

	case "trigger":
		if sess == nil {
			return sess, errNotConnected
		}
		if len(args) != 2 {
			return sess, fmt.Errorf("usage: trigger <o1:0|1> <o2:0|1>")
		}
		o1, o2 := args[0] == "1", args[1] == "1"
		return sess, sess.Trigger([]bool{o1, o2})

	case "dac":
		if sess == nil {
			return sess, errNotConnected
		}
		if len(args) != 1 {
			return sess, fmt.Errorf("usage: dac <level 0..255>")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return sess, fmt.Errorf("usage: dac <level 0..255>")
		}
		return sess, sess.Dac(v)

	case "battery":
		if sess == nil {
			return sess, errNotConnected
		}
		if len(args) != 1 {
			return sess, fmt.Errorf("usage: battery <threshold 0..63>")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return sess, fmt.Errorf("usage: battery <threshold 0..63>")
		}
		return sess, sess.Battery(v)

	default:
		return sess, fmt.Errorf("unknown command %q", cmd)
	}
}

var errNotConnected = errors.New("sense-shell: not connected; run connect <address> first")

// startCmd parses "start <rate> [channels, e.g. 1,3] [simulated]".
func startCmd(sess *sense.Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: start <rate> [channels] [simulated]")
	}
	rate, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("usage: start <rate> [channels] [simulated]")
	}

	var channels []frame.Channel
	simulated := false
	for _, arg := range args[1:] {
		if arg == "simulated" {
			simulated = true
			continue
		}
		for _, tok := range strings.Split(arg, ",") {
			v, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("invalid channel %q", tok)
			}
			channels = append(channels, frame.Channel(v))
		}
	}

	return sess.Start(rate, channels, simulated, frame.SCIENTISST)
}
