// pictures.go

// This file contains photo capture: grabbing the latest video frame from
// the backend and saving it to disk.

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
	"os"
	"path/filepath"
	"time"
)

// TakePhoto grabs the latest frame from the backend and writes it to the
// configured photo directory, labelled and numbered. The simulated backend
// has no camera; there the capture is logged and an empty path returned.
// Failures are reported but are never mission-fatal at this layer.
func (d *Drone) TakePhoto(label string) (string, error) {
	if !d.Connected() {
		return "", ErrNotConnected
	}

	frame, err := d.driver.Frame()
	if errors.Is(err, ErrNoVideo) && d.cfg.Simulator {
		log.Printf("[simulator] photo capture: %s", label)
		return "", nil
	}
	if err != nil {
		return "", &CommandError{Command: "take_photo", Err: err}
	}

	dir := d.cfg.PhotoDir
	if dir == "" {
		dir = "photos"
	}

	d.mu.Lock()
	n := d.photoCount
	d.photoCount++
	d.mu.Unlock()

	// the label may carry a subdirectory, e.g. "grid/r1_c1"
	path := filepath.Join(dir, fmt.Sprintf("%s_%d_%d.jpg", label, n, time.Now().Unix()))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &CommandError{Command: "take_photo", Err: err}
	}
	if err := os.WriteFile(path, frame, 0644); err != nil {
		return "", &CommandError{Command: "take_photo", Err: err}
	}
	log.Printf("photo captured: %s", path)

	d.mu.Lock()
	r := d.recorder
	d.mu.Unlock()
	if r != nil {
		r.RecordPhoto(path)
	}
	return path, nil
}

// PhotoCount returns the number of photos saved so far on this connection.
func (d *Drone) PhotoCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.photoCount
}
