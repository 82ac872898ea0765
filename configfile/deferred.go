/*
 * Copyright 2025 The Go-Spring Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package configfile

import (
	"context"

	"github.com/go-spring/log"
)

// maxDeferredRecords bounds the replay buffer; the oldest records are
// dropped once the buffer is full.
const maxDeferredRecords = 4096

type deferredLevel int

const (
	deferredDebug deferredLevel = iota
	deferredInfo
	deferredWarn
	deferredError
)

type deferredRecord struct {
	level  deferredLevel
	format string
	args   []any
}

// DeferredLog buffers log records written while the host's logging
// subsystem is not yet configured. Loading runs before logging is up, so
// the loader writes here and the host replays the buffer once a real
// logger is installed.
type DeferredLog struct {
	records []deferredRecord
}

// NewDeferredLog creates an empty replay buffer.
func NewDeferredLog() *DeferredLog {
	return &DeferredLog{}
}

// Debugf records a debug-level message.
func (d *DeferredLog) Debugf(format string, args ...any) {
	d.append(deferredDebug, format, args)
}

// Infof records an info-level message.
func (d *DeferredLog) Infof(format string, args ...any) {
	d.append(deferredInfo, format, args)
}

// Warnf records a warn-level message.
func (d *DeferredLog) Warnf(format string, args ...any) {
	d.append(deferredWarn, format, args)
}

// Errorf records an error-level message.
func (d *DeferredLog) Errorf(format string, args ...any) {
	d.append(deferredError, format, args)
}

// Len returns the number of buffered records.
func (d *DeferredLog) Len() int {
	return len(d.records)
}

func (d *DeferredLog) append(level deferredLevel, format string, args []any) {
	if len(d.records) == maxDeferredRecords {
		copy(d.records, d.records[1:])
		d.records = d.records[:maxDeferredRecords-1]
	}
	d.records = append(d.records, deferredRecord{level: level, format: format, args: args})
}

// Replay drains the buffer, emitting every record through the logging
// subsystem at its original level.
func (d *DeferredLog) Replay(ctx context.Context) {
	records := d.records
	d.records = nil
	for _, r := range records {
		switch r.level {
		case deferredDebug:
			log.Debugf(ctx, log.TagAppDef, r.format, r.args...)
		case deferredInfo:
			log.Infof(ctx, log.TagAppDef, r.format, r.args...)
		case deferredWarn:
			log.Warnf(ctx, log.TagAppDef, r.format, r.args...)
		case deferredError:
			log.Errorf(ctx, log.TagAppDef, r.format, r.args...)
		}
	}
}
