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

// rawUDTField is one field descriptor as it appears on the wire, before
// its name has been attached.
type rawUDTField struct {
	metadata uint16
	typeCode WireTypeCode
	offset   uint32
}

// ParseUDTEntry decodes one @udt/<id> response into a UDTInfo. The layout
// is a 14-byte header (udt_id, member_desc_words, total_size, n_fields,
// handle), n_fields x 8-byte field descriptors (metadata, type_code,
// offset), a NUL-terminated name ending at the first ';' (bytes from the
// ';' to the NUL are discarded as opaque trailer), and finally n_fields
// NUL-terminated field-name strings in field order.
//
// The parser never reads past the buffer. If fewer field-name strings are
// present than fields, the remaining fields get empty names rather than
// failing the whole parse.
func ParseUDTEntry(buf []byte) (*UDTInfo, bool) {
	cur := wire.NewCursor(buf)

	if cur.Remaining() < wire.UDTHeaderSize {
		return nil, false
	}

	udtID, ok := cur.ReadUint16()
	if !ok {
		return nil, false
	}
	if _, ok := cur.ReadUint32(); !ok { // member_desc_words, unused
		return nil, false
	}
	totalSize, ok := cur.ReadUint32()
	if !ok {
		return nil, false
	}
	nFields, ok := cur.ReadUint16()
	if !ok {
		return nil, false
	}
	if _, ok := cur.ReadUint16(); !ok { // handle, unused
		return nil, false
	}

	raw := make([]rawUDTField, nFields)
	for i := range raw {
		metadata, ok := cur.ReadUint16()
		if !ok {
			return nil, false
		}
		typeCode, ok := cur.ReadUint16()
		if !ok {
			return nil, false
		}
		offset, ok := cur.ReadUint32()
		if !ok {
			return nil, false
		}
		raw[i] = rawUDTField{metadata: metadata, typeCode: WireTypeCode(typeCode), offset: offset}
	}

	name, ok := readUDTName(cur)
	if !ok {
		return nil, false
	}

	fields := make([]UDTFieldInfo, nFields)
	for i := range fields {
		fieldName := ""
		if fn, ok := cur.ReadCString(); ok {
			fieldName = fn
		}

		arrayCount := uint16(1)
		bitNumber := int16(-1)
		tc := raw[i].typeCode
		switch {
		case tc.IsArrayField():
			arrayCount = raw[i].metadata
		case tc.IsBitField():
			bitNumber = int16(raw[i].metadata)
		}

		fields[i] = UDTFieldInfo{
			TypeID:     tc.DataTypeID(),
			Offset:     raw[i].offset,
			ArrayCount: arrayCount,
			BitNumber:  bitNumber,
			FieldName:  fieldName,
		}
	}

	return &UDTInfo{
		TypeID: EncodeUDTTypeID(udtID),
		Name:   name,
		Size:   totalSize,
		Fields: fields,
	}, true
}

// readUDTName reads the NUL-terminated UDT name, truncated at the first
// ';'. Bytes between the ';' and the NUL are the name's opaque trailer
// (open question in the design notes) and are discarded either way, since
// the cursor is advanced past the full NUL-terminated string regardless of
// where the semicolon falls.
func readUDTName(cur *wire.Cursor) (string, bool) {
	full, ok := cur.ReadCString()
	if !ok {
		return "", false
	}
	for i := 0; i < len(full); i++ {
		if full[i] == ';' {
			return full[:i], true
		}
	}
	return full, true
}
