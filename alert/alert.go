// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alert sends e-mail notifications when a monitored device
// disconnects unexpectedly or reports a low battery level.
package alert // import "github.com/scientisst/sense-go/alert"

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"
	"strings"

	mail "gopkg.in/gomail.v2"
)

var (
	mailUsr  = os.Getenv("SENSE_MAIL_USERNAME")
	mailPwd  = os.Getenv("SENSE_MAIL_PASSWORD")
	mailSrv  = os.Getenv("SENSE_MAIL_SERVER")
	mailPort = atoi(os.Getenv("SENSE_MAIL_PORT"))
	mailTgts = splitNonEmpty(os.Getenv("SENSE_MAIL_TARGETS"))
)

// Notifier sends device alerts by e-mail. The zero value is usable
// and reads its SMTP credentials from the SENSE_MAIL_* environment
// variables; use it only when those are set.
type Notifier struct {
	// Dialer is exposed so tests can substitute a fake transport;
	// nil uses the credentials above.
	Dialer interface {
		DialAndSend(m ...*mail.Message) error
	}
}

func defaultDialer() *mail.Dialer {
	dial := mail.NewDialer(mailSrv, mailPort, mailUsr, mailPwd)
	dial.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	return dial
}

func (n *Notifier) dialer() interface{ DialAndSend(m ...*mail.Message) error } {
	if n.Dialer != nil {
		return n.Dialer
	}
	return defaultDialer()
}

func (n *Notifier) ready() bool {
	return mailUsr != "" && mailPwd != "" && mailSrv != "" && mailPort != 0 && len(mailTgts) > 0
}

// Disconnected notifies that the device at address dropped its
// connection unexpectedly, with cause as the underlying error.
func (n *Notifier) Disconnected(address string, cause error) error {
	return n.send(
		fmt.Sprintf("[sense] device disconnected: %s", address),
		fmt.Sprintf("device: %s\ncause: %v", address, cause),
	)
}

// LowBattery notifies that the device at address has dropped below
// its configured battery threshold.
func (n *Notifier) LowBattery(address string, threshold int) error {
	return n.send(
		fmt.Sprintf("[sense] low battery: %s", address),
		fmt.Sprintf("device: %s\nthreshold: %d", address, threshold),
	)
}

func (n *Notifier) send(subject, body string) error {
	if !n.ready() {
		return fmt.Errorf("alert: could not send mail: missing SENSE_MAIL_* credentials")
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", mailUsr)
	msg.SetHeader("Bcc", mailTgts...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer().DialAndSend(msg); err != nil {
		return fmt.Errorf("alert: could not send mail: %w", err)
	}
	return nil
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
