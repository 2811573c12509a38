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

import "github.com/go-clx/clx/internal/wire"

// TagEntry is one admitted record from a parsed @tags response.
type TagEntry struct {
	InstanceID    uint32
	TypeCode      WireTypeCode
	ElementLength uint16
	ArrayDims     [3]uint32
	Name          string
}

// ElementCount is the product of the entry's non-zero array dimensions, or
// 1 if every dimension is zero (a scalar tag).
func (e TagEntry) ElementCount() uint32 {
	count := uint32(1)
	any := false
	for _, d := range e.ArrayDims {
		if d != 0 {
			count *= d
			any = true
		}
	}
	if !any {
		return 1
	}
	return count
}

// ByteLength is the total value size the tag occupies: element count times
// the wire-reported element length.
func (e TagEntry) ByteLength() uint32 {
	return e.ElementCount() * uint32(e.ElementLength)
}

// ParseTagEntries decodes a contiguous @tags response buffer into the
// sequence of admitted tag entries. Records are consumed sequentially;
// each record is little-endian: instance_id(4) | symbol_type(2) |
// element_length(2) | array_dims[3](3x4) | string_len(2) | name(string_len).
//
// A record whose name fails validation (see wire.IsValidTagName) is
// rejected silently; it does not appear in the returned slice and does not
// affect parsing of subsequent records. If the buffer is truncated
// mid-record, parsing stops and the entries collected so far are returned
// along with truncated=true.
func ParseTagEntries(buf []byte) (entries []TagEntry, truncated bool) {
	cur := wire.NewCursor(buf)

	for cur.Remaining() > 0 {
		startPos := cur.Pos()
		if cur.Remaining() < wire.TagEntryHeaderSize {
			return entries, true
		}

		instanceID, ok := cur.ReadUint32()
		if !ok {
			return entries, true
		}
		symbolType, ok := cur.ReadUint16()
		if !ok {
			cur.Seek(startPos)
			return entries, true
		}
		elementLength, ok := cur.ReadUint16()
		if !ok {
			cur.Seek(startPos)
			return entries, true
		}

		var dims [3]uint32
		for i := range dims {
			d, ok := cur.ReadUint32()
			if !ok {
				cur.Seek(startPos)
				return entries, true
			}
			dims[i] = d
		}

		nameLen, ok := cur.ReadUint16()
		if !ok {
			cur.Seek(startPos)
			return entries, true
		}

		nameBytes, ok := cur.ReadBytes(int(nameLen))
		if !ok {
			cur.Seek(startPos)
			return entries, true
		}

		name := string(nameBytes)
		if !wire.IsValidTagName(name) {
			continue
		}

		entries = append(entries, TagEntry{
			InstanceID:    instanceID,
			TypeCode:      WireTypeCode(symbolType),
			ElementLength: elementLength,
			ArrayDims:     dims,
			Name:          name,
		})
	}

	return entries, false
}
