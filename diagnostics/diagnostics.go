// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package diagnostics implements the structured log-event contract the
// Markup Adapter and Classifier report through: every non-fatal condition
// becomes a Record carrying the offending file and (for nested includes) a
// stack of containing files, bridged onto klog for actual emission.
package diagnostics

import (
	"fmt"
	"sync"

	"k8s.io/klog/v2"
)

// Level is the severity of a diagnostic record.
type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{LevelInfo: 0, LevelWarn: 1, LevelError: 2}

// Location pinpoints a record (or a stack entry) to a file and, where known,
// a line within it.
type Location struct {
	Path string
	Line int // 0 means unknown
}

// SourceInfo identifies the repository origin of a file, when known.
type SourceInfo struct {
	URL       string
	Refname   string
	Reftype   string
	StartPath string
}

// Record is one diagnostic event.
type Record struct {
	Level  Level
	Name   string
	Msg    string
	File   Location
	Source *SourceInfo
	Stack  []Location
}

// Sink collects Records and tracks whether FailureLevel was reached.
type Sink struct {
	mu           sync.Mutex
	failureLevel Level
	records      []Record
	failOnExit   bool
}

// NewSink builds a Sink whose FailOnExit flips true once a record at or
// above failureLevel is reported.
func NewSink(failureLevel Level) *Sink {
	return &Sink{failureLevel: failureLevel}
}

// Report appends rec, emits it to klog, and updates FailOnExit.
func (s *Sink) Report(rec Record) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	if levelRank[rec.Level] >= levelRank[s.failureLevel] {
		s.failOnExit = true
	}
	s.mu.Unlock()

	msg := formatRecord(rec)
	switch rec.Level {
	case LevelError:
		klog.Error(msg)
	case LevelWarn:
		klog.Warning(msg)
	default:
		klog.Info(msg)
	}
}

// Info is a convenience wrapper for Report with Level = info.
func (s *Sink) Info(name, msg string, file Location) {
	s.Report(Record{Level: LevelInfo, Name: name, Msg: msg, File: file})
}

// Warn is a convenience wrapper for Report with Level = warn.
func (s *Sink) Warn(name, msg string, file Location) {
	s.Report(Record{Level: LevelWarn, Name: name, Msg: msg, File: file})
}

// Error is a convenience wrapper for Report with Level = error.
func (s *Sink) Error(name, msg string, file Location) {
	s.Report(Record{Level: LevelError, Name: name, Msg: msg, File: file})
}

// FailOnExit reports whether any record at or above FailureLevel was seen.
func (s *Sink) FailOnExit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failOnExit
}

// Records returns a snapshot of everything reported so far.
func (s *Sink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func formatRecord(rec Record) string {
	loc := rec.File.Path
	if rec.File.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, rec.File.Line)
	}
	msg := fmt.Sprintf("%s: %s (%s)", rec.Name, rec.Msg, loc)
	for _, frame := range rec.Stack {
		f := frame.Path
		if frame.Line > 0 {
			f = fmt.Sprintf("%s:%d", f, frame.Line)
		}
		msg += fmt.Sprintf("\n\tincluded from %s", f)
	}
	return msg
}
