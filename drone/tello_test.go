// tello_test.go

// This file contains tests for the physical vehicle driver, exercised
// against a local UDP responder that speaks the SDK text protocol.

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
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTello answers the SDK text protocol on a loopback UDP socket. Replies
// are "ok" unless the command has an explicit canned response.
type fakeTello struct {
	conn *net.UDPConn

	mu       sync.Mutex
	received []string
	replies  map[string]string
	client   *net.UDPAddr
}

func newFakeTello(t *testing.T) *fakeTello {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)

	f := &fakeTello{conn: conn, replies: map[string]string{"battery?": "87"}}
	go f.serve()
	t.Cleanup(func() { conn.Close() })
	return f
}

func (f *fakeTello) addr() string { return f.conn.LocalAddr().String() }

func (f *fakeTello) serve() {
	buff := make([]byte, 1024)
	for {
		n, remote, err := f.conn.ReadFromUDP(buff)
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(string(buff[:n]))

		f.mu.Lock()
		f.received = append(f.received, cmd)
		f.client = remote
		reply, ok := f.replies[cmd]
		f.mu.Unlock()
		if !ok {
			reply = "ok"
		}
		f.conn.WriteToUDP([]byte(reply), remote)
	}
}

func (f *fakeTello) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.received))
	copy(out, f.received)
	return out
}

func (f *fakeTello) setReply(cmd, reply string) {
	f.mu.Lock()
	f.replies[cmd] = reply
	f.mu.Unlock()
}

// sendUnsolicited pushes a datagram at the driver outside any
// command/acknowledgment exchange, e.g. a late ack after a timeout.
func (f *fakeTello) sendUnsolicited(msg string) {
	f.mu.Lock()
	client := f.client
	f.mu.Unlock()
	if client == nil {
		return
	}
	f.conn.WriteToUDP([]byte(msg), client)
}

func TestTelloDriverSpeaksSDKProtocol(t *testing.T) {
	vehicle := newFakeTello(t)

	drv := newTelloDriver(vehicle.addr(), 50)
	require.NoError(t, drv.Connect())
	defer drv.Disconnect()

	require.NoError(t, drv.Takeoff())
	require.NoError(t, drv.Move(Forward, 80))
	require.NoError(t, drv.Rotate(90, true))
	require.NoError(t, drv.Rotate(45, false))
	require.NoError(t, drv.Land())

	assert.Equal(t, []string{
		"command", "speed 50",
		"takeoff", "forward 80", "cw 90", "ccw 45", "land",
	}, vehicle.commands())
}

func TestTelloDriverReadsBattery(t *testing.T) {
	vehicle := newFakeTello(t)

	drv := newTelloDriver(vehicle.addr(), 0)
	require.NoError(t, drv.Connect())
	defer drv.Disconnect()

	level, err := drv.Battery()
	require.NoError(t, err)
	assert.Equal(t, 87, level)
}

func TestTelloDriverSurfacesRejections(t *testing.T) {
	vehicle := newFakeTello(t)
	vehicle.setReply("forward 9999", "error out of range")

	drv := newTelloDriver(vehicle.addr(), 0)
	require.NoError(t, drv.Connect())
	defer drv.Disconnect()

	err := drv.Move(Forward, 9999)
	require.Error(t, err)
	assert.ErrorContains(t, err, "out of range")
}

func TestTelloDriverRejectsCommandsBeforeConnect(t *testing.T) {
	drv := newTelloDriver("127.0.0.1:1", 0)
	assert.ErrorIs(t, drv.Takeoff(), ErrNotConnected)
}

func TestTelloDriverDisconnectDuringUnsolicitedTraffic(t *testing.T) {
	vehicle := newFakeTello(t)

	drv := newTelloDriver(vehicle.addr(), 0)
	require.NoError(t, drv.Connect())

	// late acks arriving while the link is torn down must not crash the
	// listener
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			vehicle.sendUnsolicited("ok")
		}
	}()

	require.NoError(t, drv.Disconnect())
	<-done
}

func TestTelloDriverReconnects(t *testing.T) {
	vehicle := newFakeTello(t)

	drv := newTelloDriver(vehicle.addr(), 0)
	require.NoError(t, drv.Connect())
	require.NoError(t, drv.Disconnect())

	require.NoError(t, drv.Connect())
	defer drv.Disconnect()
	require.NoError(t, drv.Takeoff())
}
