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
	"fmt"

	"github.com/go-clx/clx/internal/wire"
)

// enumerationResult holds everything enumerate produces: the tracked tag
// list (in admitted order), the sized memory region, and the populated
// registry.
type enumerationResult struct {
	tags     []*trackedTag
	mem      *TagMemory
	registry *Registry
}

// enumerate drives components A-D to populate the registry and memory
// before scanning begins (4.G). Failure to read or parse @tags is fatal;
// failure to resolve a specific UDT is absorbed and that UDT's tags keep
// the registry's "UDT" placeholder name.
func enumerate(ctx context.Context, adapter *Adapter, registry *Registry) (*enumerationResult, error) {
	buf, err := adapter.ScanToBuffer(ctx, tagsPseudoTag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTagsResponse, err)
	}

	entries, _ := ParseTagEntries(buf)

	tags := make([]*trackedTag, 0, len(entries))
	var totalValueBytes, totalNameBytes int

	for _, e := range entries {
		if wire.IsSystemTagName(e.Name) {
			continue
		}
		tags = append(tags, &trackedTag{
			entry:  e,
			typeID: e.TypeCode.DataTypeID(),
		})
		totalValueBytes += int(e.ByteLength())
		totalNameBytes += len(e.Name) + 1
	}

	mem := NewTagMemory(totalValueBytes, len(tags))
	arena := newNameArena(totalNameBytes)

	worklist := make([]uint16, 0)
	seen := make(map[uint16]bool)

	for _, t := range tags {
		t.entry.Name = arena.append(t.entry.Name)
		t.offset = mem.Alloc(int(t.entry.ByteLength()))

		if t.entry.TypeCode.IsStruct() && !t.entry.TypeCode.IsSystem() {
			udtID := t.entry.TypeCode.UDTID()
			if udtID != 0 && !seen[udtID] {
				seen[udtID] = true
				worklist = append(worklist, udtID)
			}
		}
	}

	for len(worklist) > 0 {
		udtID := worklist[0]
		worklist = worklist[1:]

		id := EncodeUDTTypeID(udtID)
		if registry.HasUDT(id) {
			continue
		}

		udtBuf, err := adapter.ScanToBuffer(ctx, udtPseudoTag(udtID))
		if err != nil {
			debugf("enumerate: skipping unresolved UDT %d: %v", udtID, err)
			continue
		}

		info, ok := ParseUDTEntry(udtBuf)
		if !ok {
			debugf("enumerate: malformed UDT response for %d", udtID)
			continue
		}

		info.Name = arena.append(info.Name)
		for i := range info.Fields {
			info.Fields[i].FieldName = arena.append(info.Fields[i].FieldName)
		}
		registry.AddUDT(info)

		for _, f := range info.Fields {
			if !f.TypeID.IsUDT() {
				continue
			}
			fieldUDTID := f.TypeID.UDTID()
			if fieldUDTID != 0 && !seen[fieldUDTID] {
				seen[fieldUDTID] = true
				worklist = append(worklist, fieldUDTID)
			}
		}
	}

	registry.ResolveNames(tags)

	for _, t := range tags {
		if err := adapter.ConnectTag(ctx, t); err != nil {
			debugf("enumerate: tag %q could not be connected: %v", t.entry.Name, err)
		}
	}

	return &enumerationResult{tags: tags, mem: mem, registry: registry}, nil
}
