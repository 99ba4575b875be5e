// sim.go

// This file contains the simulated vehicle driver, sending JSON command
// frames to the simulator over a websocket.

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
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

const defaultSimURL = "ws://localhost:8080/simulator"

// simCommand is one command frame as the simulator expects it: a directional
// verb plus a (value, unit) pair. Lifecycle verbs carry no value.
type simCommand struct {
	Command string  `json:"command"`
	Value   float64 `json:"value,omitempty"`
	Unit    string  `json:"unit,omitempty"`
	Key     string  `json:"key,omitempty"`
}

// simDriver drives the simulated vehicle. Commands are fire-and-forget:
// the simulator sends no completion acknowledgment, so the Drone layer's
// settle delay is the completion proxy here.
type simDriver struct {
	url string
	key string

	mu        sync.Mutex
	conn      *websocket.Conn
	streaming bool
}

func newSimDriver(url, key string) *simDriver {
	if url == "" {
		url = defaultSimURL
	}
	return &simDriver{url: url, key: key}
}

func (s *simDriver) Name() string { return "simulator " + s.url }

func (s *simDriver) Connect() error {
	if s.key == "" {
		log.Printf("WARNING: no simulator key configured")
	}
	conn, _, err := websocket.DefaultDialer.Dial(s.url, nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	return s.write(simCommand{Command: "connect", Key: s.key})
}

func (s *simDriver) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *simDriver) Takeoff() error   { return s.write(simCommand{Command: "takeoff"}) }
func (s *simDriver) Land() error      { return s.write(simCommand{Command: "land"}) }
func (s *simDriver) Emergency() error { return s.write(simCommand{Command: "land_immediately"}) }

func (s *simDriver) Move(dir Direction, cm int) error {
	verb := map[Direction]string{
		Forward: "fly_forward",
		Back:    "fly_backward",
		Left:    "fly_left",
		Right:   "fly_right",
		Up:      "fly_up",
		Down:    "fly_down",
	}[dir]
	if verb == "" {
		return errors.New("sim: unknown direction")
	}
	return s.write(simCommand{Command: verb, Value: float64(cm), Unit: "cm"})
}

func (s *simDriver) Rotate(deg int, clockwise bool) error {
	verb := "yaw_left"
	if clockwise {
		verb = "yaw_right"
	}
	return s.write(simCommand{Command: verb, Value: float64(deg)})
}

// The simulator renders no video; stream toggles are bookkeeping only.
func (s *simDriver) StreamOn() error {
	s.mu.Lock()
	s.streaming = true
	s.mu.Unlock()
	log.Printf("[simulator] video stream would start here")
	return nil
}

func (s *simDriver) StreamOff() error {
	s.mu.Lock()
	s.streaming = false
	s.mu.Unlock()
	log.Printf("[simulator] video stream would stop here")
	return nil
}

func (s *simDriver) Battery() (int, error) { return 0, ErrNoTelemetry }

func (s *simDriver) Frame() ([]byte, error) { return nil, ErrNoVideo }

func (s *simDriver) write(cmd simCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return ErrNotConnected
	}
	return s.conn.WriteJSON(cmd)
}
