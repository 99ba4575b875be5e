// sim_test.go

// This file contains tests for the simulated vehicle driver, exercised
// against a local websocket server.

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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// simServer is a local stand-in for the browser simulator: it accepts one
// websocket connection and collects every command frame it receives.
type simServer struct {
	*httptest.Server

	mu       sync.Mutex
	received []simCommand
}

func newSimServer(t *testing.T) *simServer {
	t.Helper()
	s := &simServer{}
	upgrader := websocket.Upgrader{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var cmd simCommand
			if err := json.Unmarshal(data, &cmd); err != nil {
				t.Errorf("bad command frame %q: %v", data, err)
				return
			}
			s.mu.Lock()
			s.received = append(s.received, cmd)
			s.mu.Unlock()
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *simServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.URL, "http")
}

// commands waits briefly for n frames to arrive and returns them; websocket
// delivery is asynchronous relative to the driver's writes.
func (s *simServer) commands(t *testing.T, n int) []simCommand {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		if len(s.received) >= n {
			out := make([]simCommand, len(s.received))
			copy(out, s.received)
			s.mu.Unlock()
			return out
		}
		s.mu.Unlock()
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d command frames", n)
	return nil
}

func TestSimDriverSendsCommandFrames(t *testing.T) {
	srv := newSimServer(t)

	drv := newSimDriver(srv.wsURL(), "session-key")
	require.NoError(t, drv.Connect())
	defer drv.Disconnect()

	require.NoError(t, drv.Takeoff())
	require.NoError(t, drv.Move(Forward, 80))
	require.NoError(t, drv.Move(Down, 30))
	require.NoError(t, drv.Rotate(90, true))
	require.NoError(t, drv.Rotate(45, false))
	require.NoError(t, drv.Land())

	got := srv.commands(t, 7)
	assert.Equal(t, []simCommand{
		{Command: "connect", Key: "session-key"},
		{Command: "takeoff"},
		{Command: "fly_forward", Value: 80, Unit: "cm"},
		{Command: "fly_down", Value: 30, Unit: "cm"},
		{Command: "yaw_right", Value: 90},
		{Command: "yaw_left", Value: 45},
		{Command: "land"},
	}, got)
}

func TestSimDriverEmergencyLandsImmediately(t *testing.T) {
	srv := newSimServer(t)

	drv := newSimDriver(srv.wsURL(), "k")
	require.NoError(t, drv.Connect())
	defer drv.Disconnect()

	require.NoError(t, drv.Emergency())

	got := srv.commands(t, 2)
	assert.Equal(t, "land_immediately", got[len(got)-1].Command)
}

func TestSimDriverHasNoTelemetryOrVideo(t *testing.T) {
	drv := newSimDriver("ws://unused", "")

	_, err := drv.Battery()
	assert.ErrorIs(t, err, ErrNoTelemetry)

	_, err = drv.Frame()
	assert.ErrorIs(t, err, ErrNoVideo)
}

func TestSimDriverRejectsCommandsBeforeConnect(t *testing.T) {
	drv := newSimDriver("ws://unused", "")
	assert.ErrorIs(t, drv.Takeoff(), ErrNotConnected)
}
