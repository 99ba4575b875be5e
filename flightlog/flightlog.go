// flightlog.go

// This file contains the sqlite-backed flight log: every issued command and
// saved photo is recorded against a mission run.

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

// Package flightlog records mission runs, their issued commands and their
// photo captures in a sqlite database. A Store satisfies drone.Recorder, so
// it can be attached directly to a vehicle handle; recording failures are
// logged, never surfaced to the flight.
package flightlog

import (
	"database/sql"
	"log"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		kind TEXT,
		started TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS commands (
		command_id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		command TEXT,
		arg INTEGER,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(run_id) REFERENCES runs(run_id)
	);
	CREATE TABLE IF NOT EXISTS photos (
		photo_id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		path TEXT,
		timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(run_id) REFERENCES runs(run_id)
	);
`

// Store is a flight log backed by a sqlite file.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	runID string
}

// Open opens (creating if necessary) the flight log at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// StartRun opens a new mission run of the given kind (e.g. "grid",
// "waypoints") and makes it the target of subsequent records.
func (s *Store) StartRun(kind string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec("INSERT INTO runs (run_id, kind) VALUES (?, ?)", id, kind); err != nil {
		return "", err
	}
	s.mu.Lock()
	s.runID = id
	s.mu.Unlock()
	return id, nil
}

// RecordCommand logs one issued command. Implements drone.Recorder.
func (s *Store) RecordCommand(name string, arg int) {
	s.mu.Lock()
	run := s.runID
	s.mu.Unlock()
	if _, err := s.db.Exec(
		"INSERT INTO commands (run_id, command, arg) VALUES (?, ?, ?)", run, name, arg); err != nil {
		log.Printf("flightlog: failed to record command %s: %v", name, err)
	}
}

// RecordPhoto logs one saved photo. Implements drone.Recorder.
func (s *Store) RecordPhoto(path string) {
	s.mu.Lock()
	run := s.runID
	s.mu.Unlock()
	if _, err := s.db.Exec(
		"INSERT INTO photos (run_id, path) VALUES (?, ?)", run, path); err != nil {
		log.Printf("flightlog: failed to record photo %s: %v", path, err)
	}
}

// CommandCount returns how many commands were recorded for a run.
func (s *Store) CommandCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM commands WHERE run_id = ?", runID).Scan(&n)
	return n, err
}

// PhotoCount returns how many photos were recorded for a run.
func (s *Store) PhotoCount(runID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM photos WHERE run_id = ?", runID).Scan(&n)
	return n, err
}
