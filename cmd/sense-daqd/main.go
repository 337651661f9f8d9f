// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sense-daqd runs a TDAQ server driving a single ScientISST
// Sense device: /config connects, /init allocates the frame buffer, /start and
// /stop bracket an acquisition, decoded frames are streamed out over
// the /frames output, and /quit tears the link down.
package main // import "github.com/scientisst/sense-go/cmd/sense-daqd"

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/go-daq/tdaq"
	"github.com/go-daq/tdaq/flags"
	"github.com/sbinet/pmon"

	"github.com/scientisst/sense-go/devicedb"
)

func main() {
	cmd := flags.New()

	if len(cmd.Args) == 0 {
		log.Fatalf("missing device address argument")
	}

	dev := &device{
		address: cmd.Args[0],
		rate:    1000,
	}

	if dbname := os.Getenv("SENSE_DAQD_DB"); dbname != "" {
		db, err := devicedb.Open(dbname)
		if err != nil {
			log.Fatalf("could not open devicedb %q: %+v", dbname, err)
		}
		defer db.Close()
		dev.db = db
	}

	srv := tdaq.New(cmd, os.Stdout)
	srv.CmdHandle("/config", dev.OnConfig)
	srv.CmdHandle("/init", dev.OnInit)
	srv.CmdHandle("/reset", dev.OnReset)
	srv.CmdHandle("/start", dev.OnStart)
	srv.CmdHandle("/stop", dev.OnStop)
	srv.CmdHandle("/quit", dev.OnQuit)

	srv.OutputHandle("/frames", dev.frames)
	srv.RunHandle(dev.run)

	stop := selfMonitor(os.Getpid(), 1*time.Second)
	defer stop()

	if err := srv.Run(context.Background()); err != nil {
		log.Panicf("error: %+v", err)
	}
}

// selfMonitor starts pmon against the daemon's own pid, logging
// resource usage to sense-daqd-pmon.log, and returns a function that
// stops it. Failure to start monitoring is logged, not fatal: it must
// never keep the daemon from acquiring data.
func selfMonitor(pid int, freq time.Duration) func() {
	p, err := pmon.Monitor(pid)
	if err != nil {
		log.Printf("could not start self-monitoring (pid=%d): %+v", pid, err)
		return func() {}
	}

	f, err := os.Create("sense-daqd-pmon.log")
	if err != nil {
		log.Printf("could not create pmon log file: %+v", err)
		return func() {}
	}
	p.W = f
	p.Freq = freq

	go func() {
		if err := p.Run(); err != nil {
			log.Printf("self-monitoring stopped: %+v", err)
		}
	}()

	return func() {
		if err := p.Kill(); err != nil {
			log.Printf("could not stop self-monitoring: %+v", err)
		}
		f.Close()
	}
}
