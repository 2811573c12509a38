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
	"encoding/binary"
	"testing"
)

type rawFieldSpec struct {
	metadata uint16
	typeCode uint16
	offset   uint32
	name     string
}

// buildUDTBuffer assembles a synthetic @udt/<id> response: a 14-byte header,
// one 8-byte descriptor per field, the NUL-terminated UDT name, then one
// NUL-terminated name per field in order.
func buildUDTBuffer(udtID uint16, totalSize uint32, udtName string, fields []rawFieldSpec) []byte {
	var buf []byte
	var u16 [2]byte
	var u32 [4]byte

	binary.LittleEndian.PutUint16(u16[:], udtID)
	buf = append(buf, u16[:]...)
	binary.LittleEndian.PutUint32(u32[:], 0) // member_desc_words
	buf = append(buf, u32[:]...)
	binary.LittleEndian.PutUint32(u32[:], totalSize)
	buf = append(buf, u32[:]...)
	binary.LittleEndian.PutUint16(u16[:], uint16(len(fields)))
	buf = append(buf, u16[:]...)
	binary.LittleEndian.PutUint16(u16[:], 0) // handle
	buf = append(buf, u16[:]...)

	for _, f := range fields {
		binary.LittleEndian.PutUint16(u16[:], f.metadata)
		buf = append(buf, u16[:]...)
		binary.LittleEndian.PutUint16(u16[:], f.typeCode)
		buf = append(buf, u16[:]...)
		binary.LittleEndian.PutUint32(u32[:], f.offset)
		buf = append(buf, u32[:]...)
	}

	buf = append(buf, udtName...)
	buf = append(buf, 0)

	for _, f := range fields {
		buf = append(buf, f.name...)
		buf = append(buf, 0)
	}

	return buf
}

func TestParseUDTEntryHappyPath(t *testing.T) {
	t.Parallel()

	fields := []rawFieldSpec{
		{metadata: 0, typeCode: fixedCodeDINT, offset: 0, name: "Position"},
		{metadata: 0, typeCode: fixedCodeREAL, offset: 4, name: "Speed"},
	}
	buf := buildUDTBuffer(12, 8, "Conveyor", fields)

	info, ok := ParseUDTEntry(buf)
	if !ok {
		t.Fatal("ParseUDTEntry() failed on well-formed buffer")
	}
	if info.Name != "Conveyor" {
		t.Fatalf("Name = %q, want Conveyor", info.Name)
	}
	if info.TypeID != EncodeUDTTypeID(12) {
		t.Fatalf("TypeID = %v, want %v", info.TypeID, EncodeUDTTypeID(12))
	}
	if info.Size != 8 {
		t.Fatalf("Size = %d, want 8", info.Size)
	}
	if len(info.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(info.Fields))
	}
	if info.Fields[0].FieldName != "Position" || info.Fields[0].TypeID != TypeID(fixedCodeDINT) {
		t.Fatalf("field[0] = %+v", info.Fields[0])
	}
	if info.Fields[1].FieldName != "Speed" || info.Fields[1].Offset != 4 {
		t.Fatalf("field[1] = %+v", info.Fields[1])
	}
}

func TestParseUDTEntryNameTruncatedAtSemicolon(t *testing.T) {
	t.Parallel()

	buf := buildUDTBuffer(5, 4, "Conveyor;trailer_garbage", []rawFieldSpec{
		{metadata: 0, typeCode: fixedCodeDINT, offset: 0, name: "Position"},
	})

	info, ok := ParseUDTEntry(buf)
	if !ok {
		t.Fatal("ParseUDTEntry() failed")
	}
	if info.Name != "Conveyor" {
		t.Fatalf("Name = %q, want Conveyor (trailer after ';' discarded)", info.Name)
	}
}

func TestParseUDTEntryArrayField(t *testing.T) {
	t.Parallel()

	arrayTypeCode := uint16(fixedCodeDINT) | (1 << wireBitFieldIsArray)
	buf := buildUDTBuffer(7, 40, "Samples", []rawFieldSpec{
		{metadata: 10, typeCode: arrayTypeCode, offset: 0, name: "Buffer"},
	})

	info, ok := ParseUDTEntry(buf)
	if !ok {
		t.Fatal("ParseUDTEntry() failed")
	}
	if info.Fields[0].ArrayCount != 10 {
		t.Fatalf("ArrayCount = %d, want 10", info.Fields[0].ArrayCount)
	}
	if info.Fields[0].BitNumber != -1 {
		t.Fatalf("BitNumber = %d, want -1 for an array field", info.Fields[0].BitNumber)
	}
}

func TestParseUDTEntryBitField(t *testing.T) {
	t.Parallel()

	buf := buildUDTBuffer(8, 4, "Flags", []rawFieldSpec{
		{metadata: 3, typeCode: fixedCodeBOOL, offset: 0, name: "Running"},
	})

	info, ok := ParseUDTEntry(buf)
	if !ok {
		t.Fatal("ParseUDTEntry() failed")
	}
	if info.Fields[0].BitNumber != 3 {
		t.Fatalf("BitNumber = %d, want 3", info.Fields[0].BitNumber)
	}
	if info.Fields[0].ArrayCount != 1 {
		t.Fatalf("ArrayCount = %d, want 1 for a bit field", info.Fields[0].ArrayCount)
	}
}

func TestParseUDTEntryFewerNamesThanFieldsDegradesGracefully(t *testing.T) {
	t.Parallel()

	fields := []rawFieldSpec{
		{metadata: 0, typeCode: fixedCodeDINT, offset: 0, name: "Position"},
		{metadata: 0, typeCode: fixedCodeREAL, offset: 4, name: "Speed"},
	}
	buf := buildUDTBuffer(9, 8, "Partial", fields)
	// Drop the second field's name and its terminating NUL entirely.
	buf = buf[:len(buf)-len("Speed")-1]

	info, ok := ParseUDTEntry(buf)
	if !ok {
		t.Fatal("ParseUDTEntry() should still succeed with a missing trailing field name")
	}
	if info.Fields[0].FieldName != "Position" {
		t.Fatalf("field[0].FieldName = %q, want Position", info.Fields[0].FieldName)
	}
	if info.Fields[1].FieldName != "" {
		t.Fatalf("field[1].FieldName = %q, want empty", info.Fields[1].FieldName)
	}
}

func TestParseUDTEntryTruncatedHeaderFails(t *testing.T) {
	t.Parallel()

	buf := buildUDTBuffer(1, 4, "X", nil)
	if _, ok := ParseUDTEntry(buf[:5]); ok {
		t.Fatal("ParseUDTEntry() should fail on a truncated header")
	}
}

func TestParseUDTEntryTruncatedMidDescriptorFails(t *testing.T) {
	t.Parallel()

	buf := buildUDTBuffer(2, 4, "X", []rawFieldSpec{
		{metadata: 0, typeCode: fixedCodeDINT, offset: 0, name: "A"},
	})
	// Cut off partway through the one field descriptor.
	if _, ok := ParseUDTEntry(buf[:16]); ok {
		t.Fatal("ParseUDTEntry() should fail when a field descriptor is incomplete")
	}
}
