// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command sense-scan lists bonded ScientISST Sense devices that are
// currently reachable.
package main // import "github.com/scientisst/sense-go/cmd/sense-scan"

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/scientisst/sense-go/devicedb"
	"github.com/scientisst/sense-go/discovery"
)

func main() {
	timeout := flag.Duration("timeout", 10*time.Second, "scan timeout")
	dbname := flag.String("db", "", "devicedb database to record sightings into (skipped if empty)")
	flag.Parse()

	log.SetPrefix("sense-scan: ")
	log.SetFlags(0)

	if err := run(*timeout, *dbname); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(timeout time.Duration, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	devs, err := discovery.Scan(ctx, discovery.BlueZ{})
	if err != nil {
		return fmt.Errorf("could not scan for devices: %w", err)
	}

	var found []discovery.Device
	for _, d := range devs {
		if strings.Contains(strings.ToLower(d.Name), "scientisst") {
			found = append(found, d)
		}
	}

	if len(found) == 0 {
		fmt.Println("no ScientISST Sense devices found")
		return nil
	}

	var db *devicedb.DB
	if dbname != "" {
		db, err = devicedb.Open(dbname)
		if err != nil {
			return fmt.Errorf("could not open devicedb %q: %w", dbname, err)
		}
		defer db.Close()
	}

	for _, d := range found {
		fmt.Println(d.Address)
		if db == nil {
			continue
		}
		if err := db.Touch(ctx, d.Address, d.Name); err != nil {
			log.Printf("could not record sighting of %s: %+v", d.Address, err)
		}
	}
	return nil
}
