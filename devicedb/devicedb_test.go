// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package devicedb

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/scientisst/sense-go/internal/fakedb"
)

func init() {
	drvName = "fakedb"
}

var nowStub = time.Date(2026, 8, 6, 12, 0, 0, 0, time.UTC)

func TestOpen(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open devicedb: %+v", err)
	}
	defer db.Close()
}

func TestDevices(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open devicedb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.Run(context.Background(), fakedb.Rows{
		Names: []string{"address", "name", "first_seen", "last_seen"},
		Values: [][]driver.Value{
			{"00:11:22:33:44:55", "sense-01", nowStub, nowStub},
		},
	}, func(ctx context.Context) error {
		devs, err := db.Devices(ctx)
		if err != nil {
			t.Fatalf("could not list devices: %+v", err)
		}
		if len(devs) != 1 {
			t.Fatalf("got %d devices, want 1", len(devs))
		}
		if devs[0].Address != "00:11:22:33:44:55" || devs[0].Name != "sense-01" {
			t.Fatalf("unexpected device: %#v", devs[0])
		}
		return nil
	})
}

func TestTouch(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open devicedb: %+v", err)
	}
	defer db.Close()

	_ = fakedb.RunExec(context.Background(), fakedb.Result{Affected: 1}, func(ctx context.Context) error {
		if err := db.Touch(ctx, "00:11:22:33:44:55", "sense-01"); err != nil {
			t.Fatalf("could not touch device: %+v", err)
		}
		return nil
	})
}

func TestBeginAndEndSession(t *testing.T) {
	db, err := Open("fakedb")
	if err != nil {
		t.Fatalf("could not open devicedb: %+v", err)
	}
	defer db.Close()

	var id int64
	_ = fakedb.RunExec(context.Background(), fakedb.Result{LastID: 42}, func(ctx context.Context) error {
		var err error
		id, err = db.BeginSession(ctx, "00:11:22:33:44:55", 1000, "1,3", "SCIENTISST")
		if err != nil {
			t.Fatalf("could not begin session: %+v", err)
		}
		if id != 42 {
			t.Fatalf("got session id %d, want 42", id)
		}
		return nil
	})

	_ = fakedb.RunExec(context.Background(), fakedb.Result{Affected: 1}, func(ctx context.Context) error {
		if err := db.EndSession(ctx, id); err != nil {
			t.Fatalf("could not end session: %+v", err)
		}
		return nil
	})
}
