// clx
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of clx.
//
// clx is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// clx is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with clx; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package clx

import (
	"context"
	"sync"
	"time"
)

// ScanConfig tunes the periodic scan loop of 4.H.
type ScanConfig struct {
	// Period is the target wall-clock duration of one scan cycle. If a
	// cycle's work exceeds Period, the next cycle starts immediately.
	Period time.Duration
}

// DefaultScanConfig returns the 100ms default cycle period the design
// notes describe.
func DefaultScanConfig() *ScanConfig {
	return &ScanConfig{Period: 100 * time.Millisecond}
}

// scanner runs the scan loop against a fixed tag list and memory region.
// It is constructed once per Client.Scan call and discarded when the
// predicate returns false.
type scanner struct {
	adapter *Adapter
	tags    []*trackedTag
	mem     *TagMemory
	config  *ScanConfig
}

// run drives the loop described in 4.H/§5: each cycle spawns one worker
// goroutine to refresh the write half from every connected tag, while the
// main goroutine concurrently copies the previous read half into the
// public region and then invokes callback. The worker is joined before the
// buffer flip, so the flip is a release-acquire synchronization point with
// no locks required: at most one goroutine ever touches a given half at a
// time.
func (s *scanner) run(ctx context.Context, callback func([]Tag), predicate func() bool) {
	for predicate() {
		cycleStart := time.Now()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.scanCycle(ctx)
		}()

		for _, t := range s.tags {
			if t.connected {
				s.mem.PublishFromRead(t.offset)
			}
		}

		callback(publicTags(s.tags, s.mem))

		wg.Wait()
		s.mem.Flip()

		if ctx.Err() != nil {
			return
		}

		s.sleepRemainder(cycleStart)
	}
}

// scanCycle issues one read per connected tag, in enumeration order, into
// the current write half. A per-tag failure sets scanOK=false for this
// cycle and copies the current read half (the last-good value) over the
// write half, so the next flip republishes the same value again instead of
// exposing the write half's two-cycles-stale bytes on the cycle after this
// one — satisfying "failed tags keep their previous published value" across
// consecutive failures, not just a single one.
func (s *scanner) scanCycle(ctx context.Context) {
	for _, t := range s.tags {
		if !t.connected {
			continue
		}
		view := s.mem.WriteView(t.offset)
		if err := s.adapter.ScanToView(ctx, t.handle, view); err != nil {
			t.scanOK = false
			copy(view, s.mem.ReadView(t.offset))
			debugf("scan: tag %q failed this cycle: %v", t.entry.Name, err)
			continue
		}
		t.scanOK = true
	}
}

func (s *scanner) sleepRemainder(cycleStart time.Time) {
	if s.config.Period <= 0 {
		return
	}
	elapsed := time.Since(cycleStart)
	if remaining := s.config.Period - elapsed; remaining > 0 {
		time.Sleep(remaining)
	}
}
