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

package wire

import "testing"

func TestCursorReadUint16(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{0x34, 0x12, 0xFF})
	v, ok := c.ReadUint16()
	if !ok || v != 0x1234 {
		t.Fatalf("ReadUint16() = %#x, %v, want 0x1234, true", v, ok)
	}
	if c.Pos() != 2 {
		t.Fatalf("Pos() = %d, want 2", c.Pos())
	}

	if _, ok := NewCursor([]byte{0x01}).ReadUint16(); ok {
		t.Fatal("ReadUint16() on a 1-byte buffer should fail")
	}
}

func TestCursorReadUint32(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{0x78, 0x56, 0x34, 0x12})
	v, ok := c.ReadUint32()
	if !ok || v != 0x12345678 {
		t.Fatalf("ReadUint32() = %#x, %v, want 0x12345678, true", v, ok)
	}

	if _, ok := NewCursor([]byte{1, 2, 3}).ReadUint32(); ok {
		t.Fatal("ReadUint32() on a 3-byte buffer should fail")
	}
}

func TestCursorReadBytes(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{1, 2, 3, 4, 5})
	b, ok := c.ReadBytes(3)
	if !ok || string(b) != string([]byte{1, 2, 3}) {
		t.Fatalf("ReadBytes(3) = %v, %v", b, ok)
	}
	if c.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", c.Remaining())
	}
	if _, ok := c.ReadBytes(3); ok {
		t.Fatal("ReadBytes(3) with only 2 remaining should fail")
	}
}

func TestCursorReadCString(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{'a', 'b', 0, 'c', 'd'})
	s, ok := c.ReadCString()
	if !ok || s != "ab" {
		t.Fatalf("ReadCString() = %q, %v, want \"ab\", true", s, ok)
	}
	if c.Pos() != 3 {
		t.Fatalf("Pos() after ReadCString = %d, want 3", c.Pos())
	}

	c2 := NewCursor([]byte{'x', 'y', 'z'})
	pos := c2.Pos()
	if _, ok := c2.ReadCString(); ok {
		t.Fatal("ReadCString() with no NUL terminator should fail")
	}
	if c2.Pos() != pos {
		t.Fatal("a failed ReadCString() must not move the cursor")
	}
}

func TestCursorSeekClamps(t *testing.T) {
	t.Parallel()

	c := NewCursor([]byte{1, 2, 3})
	c.Seek(-5)
	if c.Pos() != 0 {
		t.Fatalf("Seek(-5) left Pos() = %d, want 0", c.Pos())
	}
	c.Seek(100)
	if c.Pos() != 3 {
		t.Fatalf("Seek(100) left Pos() = %d, want 3", c.Pos())
	}
}

func TestIsValidTagName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"ordinary tag", "Motor_Speed", true},
		{"pseudo-tag @tags", "@tags", true},
		{"pseudo-tag @udt", "@udt/12", true},
		{"empty name", "", false},
		{"too long", makeLongName(33), false},
		{"max length ok", makeLongName(32), true},
		{"starts with digit", "1abc", false},
		{"contains space", "bad name", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidTagName(tt.in); got != tt.want {
				t.Errorf("IsValidTagName(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsSystemTagName(t *testing.T) {
	t.Parallel()

	if !IsSystemTagName("@tags") {
		t.Error("@tags should be a system tag name")
	}
	if IsSystemTagName("Motor_Speed") {
		t.Error("Motor_Speed should not be a system tag name")
	}
	if IsSystemTagName("") {
		t.Error("empty name should not be a system tag name")
	}
}

func makeLongName(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'A'
	}
	return string(b)
}
