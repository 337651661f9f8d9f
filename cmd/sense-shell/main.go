// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sense-shell is an interactive console for driving a single
// ScientISST Sense device: connect, start/stop acquisition, read a
// handful of frames, and issue the one-shot commands (trigger, dac,
// battery) by hand.
package main // import "github.com/scientisst/sense-go/cmd/sense-shell"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/peterh/liner"

	sense "github.com/scientisst/sense-go"
)

func main() {
	addr := flag.String("addr", "", "MAC address of the device to connect to")
	flag.Parse()

	log.SetPrefix("sense-shell: ")
	log.SetFlags(0)

	if err := run(*addr); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(addr string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var sess *sense.Session
	if addr != "" {
		s, err := sense.NewSession(addr)
		if err != nil {
			return fmt.Errorf("could not create session: %w", err)
		}
		if err := s.Connect(nil); err != nil {
			return fmt.Errorf("could not connect to %s: %w", addr, err)
		}
		sess = s
	}

	for {
		input, err := line.Prompt("sense> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not read input: %w", err)
		}
		line.AppendHistory(input)

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		var cmdErr error
		sess, cmdErr = dispatch(sess, fields)
		if cmdErr == errQuit {
			return nil
		}
		if cmdErr != nil {
			fmt.Fprintln(os.Stderr, cmdErr)
		}
	}
}
