// tello.go

// This file contains the physical vehicle driver, speaking the Tello SDK
// text protocol over UDP.

// Copyright (C) 2025  Daniel Tantsyura

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package drone

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultTelloAddr = "192.168.10.1:8889"
	telloVideoPort   = 11111

	// every SDK command is acknowledged with "ok" or "error ..."; moves can
	// take several seconds to complete before the ack arrives
	telloAckTimeout = 10 * time.Second
)

// telloDriver drives a physical Tello over its UDP command channel. Each
// command blocks until the vehicle acknowledges completion, so command
// completion is confirmed rather than assumed.
type telloDriver struct {
	addr  string
	speed int

	mu       sync.Mutex // serializes commands; one in flight at a time
	conn     *net.UDPConn
	respChan chan string

	frameMu   sync.RWMutex
	videoConn *net.UDPConn
	frame     []byte
	streaming bool
}

func newTelloDriver(addr string, speed int) *telloDriver {
	if addr == "" {
		addr = defaultTelloAddr
	}
	return &telloDriver{addr: addr, speed: speed}
}

func (t *telloDriver) Name() string { return "tello " + t.addr }

// Connect dials the vehicle, enters SDK mode and sets the cruise speed.
func (t *telloDriver) Connect() error {
	droneAddr, err := net.ResolveUDPAddr("udp", t.addr)
	if err != nil {
		return err
	}
	conn, err := net.DialUDP("udp", nil, droneAddr)
	if err != nil {
		return err
	}

	respChan := make(chan string, 2)
	t.mu.Lock()
	t.conn = conn
	t.respChan = respChan
	t.mu.Unlock()

	go t.responseListener(conn, respChan)

	// "command" switches the vehicle into SDK mode
	if err := t.send("command"); err != nil {
		conn.Close()
		return fmt.Errorf("tello connect: %w", err)
	}
	if t.speed > 0 {
		if err := t.send(fmt.Sprintf("speed %d", t.speed)); err != nil {
			log.Printf("could not set speed: %v", err)
		}
	}
	return nil
}

func (t *telloDriver) Disconnect() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	if t.videoConn != nil {
		t.videoConn.Close()
		t.videoConn = nil
	}
	return err
}

func (t *telloDriver) Takeoff() error   { return t.send("takeoff") }
func (t *telloDriver) Land() error      { return t.send("land") }
func (t *telloDriver) Emergency() error { return t.send("emergency") }

func (t *telloDriver) Move(dir Direction, cm int) error {
	return t.send(fmt.Sprintf("%s %d", dir.String(), cm))
}

func (t *telloDriver) Rotate(deg int, clockwise bool) error {
	verb := "ccw"
	if clockwise {
		verb = "cw"
	}
	return t.send(fmt.Sprintf("%s %d", verb, deg))
}

func (t *telloDriver) StreamOn() error {
	if err := t.send("streamon"); err != nil {
		return err
	}
	t.frameMu.Lock()
	defer t.frameMu.Unlock()
	if t.streaming {
		return nil
	}
	localAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", telloVideoPort))
	if err != nil {
		return err
	}
	t.videoConn, err = net.ListenUDP("udp", localAddr)
	if err != nil {
		return err
	}
	t.streaming = true
	go t.videoListener(t.videoConn)
	return nil
}

func (t *telloDriver) StreamOff() error {
	t.frameMu.Lock()
	if t.videoConn != nil {
		t.videoConn.Close()
		t.videoConn = nil
	}
	t.streaming = false
	t.frameMu.Unlock()
	return t.send("streamoff")
}

func (t *telloDriver) Battery() (int, error) {
	resp, err := t.query("battery?")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(resp))
}

// Frame returns the most recent raw video datagram. Decoding the H.264
// stream is the image-capture collaborator's job.
func (t *telloDriver) Frame() ([]byte, error) {
	t.frameMu.RLock()
	defer t.frameMu.RUnlock()
	if !t.streaming || t.frame == nil {
		return nil, ErrNoVideo
	}
	f := make([]byte, len(t.frame))
	copy(f, t.frame)
	return f, nil
}

// send issues one command and waits for the vehicle's acknowledgment.
func (t *telloDriver) send(cmd string) error {
	resp, err := t.query(cmd)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(resp, "ok") {
		return fmt.Errorf("tello rejected %q: %s", cmd, resp)
	}
	return nil
}

func (t *telloDriver) query(cmd string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn == nil {
		return "", ErrNotConnected
	}
	if _, err := t.conn.Write([]byte(cmd)); err != nil {
		return "", err
	}
	select {
	case resp := <-t.respChan:
		return resp, nil
	case <-time.After(telloAckTimeout):
		return "", fmt.Errorf("timeout waiting for response to %q", cmd)
	}
}

// responseListener owns the connection and channel it was started with;
// closing that connection is the shutdown signal, so Disconnect (or a
// reconnect) never races the reads.
func (t *telloDriver) responseListener(conn *net.UDPConn, respChan chan string) {
	buff := make([]byte, 1024)
	for {
		n, err := conn.Read(buff)
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				log.Printf("network read error - %v", err)
			}
			return
		}
		resp := strings.TrimSpace(string(buff[:n]))
		select {
		case respChan <- resp:
		default:
			log.Printf("unsolicited response from tello: %q", resp)
		}
	}
}

func (t *telloDriver) videoListener(conn *net.UDPConn) {
	buff := make([]byte, 4096)
	for {
		n, err := conn.Read(buff)
		if err != nil {
			return // stream stopped
		}
		t.frameMu.Lock()
		t.frame = append(t.frame[:0], buff[:n]...)
		t.frameMu.Unlock()
	}
}
