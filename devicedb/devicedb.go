// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package devicedb holds types to record device and session metadata
// for devices driven through this module. It never stores raw
// samples: only the bookkeeping needed to answer "which devices have
// we seen" and "what did session N look like".
package devicedb // import "github.com/scientisst/sense-go/devicedb"

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	host = envOr("SENSE_DB_HOST", "localhost")
	usr  = os.Getenv("SENSE_DB_USERNAME")
	pwd  = os.Getenv("SENSE_DB_PASSWORD")

	drvName = "mysql"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DB exposes convenience methods to record and retrieve device and
// acquisition-session metadata.
type DB struct {
	db   *sql.DB
	name string
}

// Open opens a connection to the named metadata database.
func Open(dbname string) (*DB, error) {
	db, err := sql.Open(drvName, dsn(dbname))
	if err != nil {
		return nil, fmt.Errorf("devicedb: could not open %q db: %w", dbname, err)
	}

	if err := ping(db, dbname); err != nil {
		return nil, fmt.Errorf("devicedb: could not ping %q db: %w", dbname, err)
	}

	return &DB{db: db, name: dbname}, nil
}

func dsn(db string) string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", usr, pwd, host, db)
}

func ping(db *sql.DB, dbname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("devicedb: could not ping %q db: %w", dbname, err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.db.Close()
}

// Device is a single bonded/seen device, keyed by MAC address.
type Device struct {
	Address   string
	Name      string
	FirstSeen time.Time
	LastSeen  time.Time
}

// Touch records that address (with the given advertised name) was
// just seen, inserting a new row on first sight or bumping LastSeen
// on subsequent ones.
func (db *DB) Touch(ctx context.Context, address, name string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := db.db.ExecContext(ctx, `
INSERT INTO devices (address, name, first_seen, last_seen)
VALUES (?, ?, NOW(), NOW())
ON DUPLICATE KEY UPDATE name=VALUES(name), last_seen=NOW()
`, address, name)
	if err != nil {
		return fmt.Errorf("devicedb: could not record device %q: %w", address, err)
	}
	return nil
}

// Devices returns every device this database has ever seen, most
// recently seen first.
func (db *DB) Devices(ctx context.Context) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := db.db.QueryContext(ctx,
		"SELECT address, name, first_seen, last_seen FROM devices ORDER BY last_seen DESC")
	if err != nil {
		return nil, fmt.Errorf("devicedb: could not query devices: %w", err)
	}
	defer rows.Close()

	var out []Device
	for rows.Next() {
		var d Device
		if err := rows.Scan(&d.Address, &d.Name, &d.FirstSeen, &d.LastSeen); err != nil {
			return out, fmt.Errorf("devicedb: could not scan device row: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("devicedb: could not scan devices: %w", err)
	}
	return out, nil
}

// SessionRecord is the metadata of one acquisition session: what was
// started, when, and how it ended. Raw samples are never part of
// this record.
type SessionRecord struct {
	ID         int64
	Address    string
	SampleRate int
	Channels   string // comma-separated channel numbers, caller order
	APIMode    string
	StartedAt  time.Time
	StoppedAt  sql.NullTime
}

// BeginSession records the start of an acquisition and returns its
// assigned ID, to be passed to EndSession once it stops.
func (db *DB) BeginSession(ctx context.Context, address string, sampleRate int, channels, apiMode string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := db.db.ExecContext(ctx, `
INSERT INTO sessions (address, sample_rate, channels, api_mode, started_at)
VALUES (?, ?, ?, ?, NOW())
`, address, sampleRate, channels, apiMode)
	if err != nil {
		return 0, fmt.Errorf("devicedb: could not begin session for %q: %w", address, err)
	}
	return res.LastInsertId()
}

// EndSession marks session id as stopped.
func (db *DB) EndSession(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := db.db.ExecContext(ctx,
		"UPDATE sessions SET stopped_at=NOW() WHERE id=?", id)
	if err != nil {
		return fmt.Errorf("devicedb: could not end session %d: %w", id, err)
	}
	return nil
}

// Sessions returns the most recent sessions recorded for address,
// newest first, capped at limit rows.
func (db *DB) Sessions(ctx context.Context, address string, limit int) ([]SessionRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := db.db.QueryContext(ctx, `
SELECT id, address, sample_rate, channels, api_mode, started_at, stopped_at
FROM sessions WHERE address=? ORDER BY started_at DESC LIMIT ?
`, address, limit)
	if err != nil {
		return nil, fmt.Errorf("devicedb: could not query sessions for %q: %w", address, err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var s SessionRecord
		err = rows.Scan(&s.ID, &s.Address, &s.SampleRate, &s.Channels, &s.APIMode, &s.StartedAt, &s.StoppedAt)
		if err != nil {
			return out, fmt.Errorf("devicedb: could not scan session row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("devicedb: could not scan sessions: %w", err)
	}
	return out, nil
}
