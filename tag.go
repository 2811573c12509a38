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

// Tag is the public, read-only snapshot of one controller tag. Bytes is a
// view into the public region as of the most recently published scan
// cycle; it must not be retained past Close.
type Tag struct {
	TypeID       TypeID
	ArrayCount   uint32
	TagName      string
	DataTypeName string
	Bytes        []byte

	// Connected reports whether a transport handle was successfully
	// obtained for this tag during enumeration. An unconnected tag never
	// scans and its Bytes stay zero-initialized.
	Connected bool

	// LastScanOK reports whether the most recently attempted scan cycle
	// refreshed this tag's bytes. A transient per-cycle failure leaves the
	// previous bytes in place and this flag false until the next
	// successful cycle.
	LastScanOK bool
}

// trackedTag is the library's internal bookkeeping for one tag between
// enumeration and shutdown: its discovery-time entry, its memory offset,
// its transport handle, and its live status flags.
type trackedTag struct {
	entry  TagEntry
	typeID TypeID
	offset Offset

	dataTypeName string

	handle    TransportHandle
	connected bool
	scanOK    bool
}

// snapshot builds the public Tag view for t, reading its bytes from mem's
// public region at t's offset.
func (t *trackedTag) snapshot(mem *TagMemory) Tag {
	return Tag{
		TypeID:       t.typeID,
		ArrayCount:   t.entry.ElementCount(),
		TagName:      t.entry.Name,
		DataTypeName: t.dataTypeName,
		Bytes:        mem.PublicView(t.offset),
		Connected:    t.connected,
		LastScanOK:   t.scanOK,
	}
}

// publicTags returns the current snapshot for every tracked tag, in
// enumeration order. Called by the scan loop between cycles and by
// Client.Tags on every call.
func publicTags(tags []*trackedTag, mem *TagMemory) []Tag {
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = t.snapshot(mem)
	}
	return out
}
