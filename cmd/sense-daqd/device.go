// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-daq/tdaq"
	"golang.org/x/sync/errgroup"

	sense "github.com/scientisst/sense-go"
	"github.com/scientisst/sense-go/alert"
	"github.com/scientisst/sense-go/devicedb"
	"github.com/scientisst/sense-go/frame"
)

// device drives a single Sense session and relays its decoded frames
// out through the TDAQ /frames output.
type device struct {
	address string
	rate    int
	chans   []frame.Channel

	sess     *sense.Session
	notifier alert.Notifier

	// db records session bookkeeping; nil disables it entirely, so
	// running without SENSE_DAQD_DB set costs nothing.
	db        *devicedb.DB
	sessionID int64

	data chan frame.Frame
}

func (dev *device) OnConfig(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /config command...")

	s, err := sense.NewSession(dev.address)
	if err != nil {
		return fmt.Errorf("could not create session for %s: %w", dev.address, err)
	}
	if err := s.Connect(func(cause error) {
		ctx.Msg.Errorf("device %s disconnected: %+v", dev.address, cause)
		if err := dev.notifier.Disconnected(dev.address, cause); err != nil {
			ctx.Msg.Errorf("could not send disconnect alert: %+v", err)
		}
	}); err != nil {
		return fmt.Errorf("could not connect to %s: %w", dev.address, err)
	}
	dev.sess = s
	return nil
}

func (dev *device) OnInit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /init command...")
	dev.data = make(chan frame.Frame, 1024)
	return nil
}

func (dev *device) OnReset(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /reset command...")
	dev.data = make(chan frame.Frame, 1024)
	return nil
}

func (dev *device) OnStart(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /start command...")
	if dev.sess == nil {
		return fmt.Errorf("device %s is not connected", dev.address)
	}
	if err := dev.sess.Start(dev.rate, dev.chans, false, frame.SCIENTISST); err != nil {
		return err
	}

	if dev.db != nil {
		id, err := dev.db.BeginSession(ctx.Ctx, dev.address, dev.rate, channelList(dev.chans), "scientisst")
		if err != nil {
			ctx.Msg.Errorf("could not record session start for %s: %+v", dev.address, err)
		} else {
			dev.sessionID = id
		}
	}
	return nil
}

func (dev *device) OnStop(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /stop command...")
	if dev.sess == nil {
		return nil
	}
	err := dev.sess.Stop()

	if dev.db != nil && dev.sessionID != 0 {
		if e := dev.db.EndSession(ctx.Ctx, dev.sessionID); e != nil {
			ctx.Msg.Errorf("could not record session end for %s: %+v", dev.address, e)
		}
		dev.sessionID = 0
	}
	return err
}

// channelList renders chans as the caller-order, comma-separated
// string devicedb stores alongside a session record.
func channelList(chans []frame.Channel) string {
	parts := make([]string, len(chans))
	for i, c := range chans {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, ",")
}

func (dev *device) OnQuit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /quit command...")
	if dev.sess == nil {
		return nil
	}
	return dev.sess.Disconnect()
}

// frames is the TDAQ output handler for "/frames": it blocks for the
// next decoded Frame and encodes it as a tdaq frame body.
func (dev *device) frames(ctx tdaq.Context, dst *tdaq.Frame) error {
	select {
	case <-ctx.Ctx.Done():
		dst.Body = nil
		return nil
	case fr := <-dev.data:
		dst.Body = encodeFrame(fr)
	}
	return nil
}

// run is the TDAQ run-handler: while the device is acquiring, it
// pulls decoded frames off the session in one goroutine and, in a
// second, logs a heartbeat with the session's connected and acquiring
// state every 5 seconds. Both stop as soon as ctx is done.
func (dev *device) run(ctx tdaq.Context) error {
	grp, _ := errgroup.WithContext(ctx.Ctx)

	grp.Go(func() error {
		for {
			select {
			case <-ctx.Ctx.Done():
				return nil
			default:
			}
			if dev.sess == nil || !dev.sess.Acquiring() {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			frames, err := dev.sess.Read(1)
			if err != nil {
				ctx.Msg.Errorf("could not read frame from %s: %+v", dev.address, err)
				time.Sleep(100 * time.Millisecond)
				continue
			}
			for _, fr := range frames {
				select {
				case dev.data <- fr:
				case <-ctx.Ctx.Done():
					return nil
				}
			}
		}
	})

	grp.Go(func() error {
		tick := time.NewTicker(5 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Ctx.Done():
				return nil
			case <-tick.C:
				if dev.sess == nil {
					continue
				}
				ctx.Msg.Debugf("heartbeat: device=%s connected=%v acquiring=%v",
					dev.address, dev.sess.Connected(), dev.sess.Acquiring(),
				)
			}
		}
	})

	return grp.Wait()
}

// encodeFrame serializes fr as: 1 byte seq, then 8 analog slots each
// as a uint32 value followed by a set-flag byte, then 4 digital bytes
// (0 or 1 each).
func encodeFrame(fr frame.Frame) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(fr.Seq)
	for _, s := range fr.Analog {
		var v [4]byte
		binary.LittleEndian.PutUint32(v[:], s.Value)
		buf.Write(v[:])
		if s.Set {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}
	for _, b := range fr.Digital {
		if b {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}
