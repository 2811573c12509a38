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

// WireTypeCode is the controller's 16-bit bit-packed symbol type, as found
// in every tag-listing record and UDT field descriptor.
type WireTypeCode uint16

// Bit layout of WireTypeCode, little-endian on the wire.
const (
	wireBitIsStruct     = 15
	wireBitIsSystem     = 12
	wireBitFieldIsArray = 13
	wireTagDimsShift    = 13
	wireTagDimsMask     = 0x3
	wireUDTIDMask       = 0x0FFF
	wireFixedCodeMask   = 0x00FF
)

// TypeID is the library's flat 32-bit type-id space, unifying fixed types,
// UDTs, and the two sentinels.
type TypeID uint32

// Sentinel type-ids. They occupy reserved bits above the 12-bit UDT range
// so they can never collide with a real fixed or UDT id.
const (
	TypeIDUnknown TypeID = 1 << 20
	TypeIDSystem  TypeID = 1 << 21
)

// TagDimensions returns the number of array dimensions (0-3) a top-level
// tag-listing record declares, from bits 13-14 of the wire type code.
func (c WireTypeCode) TagDimensions() int {
	return int((uint16(c) >> wireTagDimsShift) & wireTagDimsMask)
}

// IsStruct reports whether bit 15 marks this code as a UDT instance.
func (c WireTypeCode) IsStruct() bool {
	return uint16(c)&(1<<wireBitIsStruct) != 0
}

// IsSystem reports whether bit 12 marks this code as a controller-internal
// type. The system bit dominates the struct bit: when both are set the
// code still resolves to UNKNOWN.
func (c WireTypeCode) IsSystem() bool {
	return uint16(c)&(1<<wireBitIsSystem) != 0
}

// IsArrayField reports whether bit 13 marks a UDT field as an array,
// meaning its metadata word carries an element count rather than a bit
// number.
func (c WireTypeCode) IsArrayField() bool {
	return uint16(c)&(1<<wireBitFieldIsArray) != 0
}

// IsBitField reports whether this code names the BOOL fixed type, in which
// case a UDT field's metadata word is a bit number into its owning byte.
func (c WireTypeCode) IsBitField() bool {
	return !c.IsStruct() && !c.IsSystem() && !c.IsArrayField() && c.FixedCode() == fixedCodeBOOL
}

// UDTID extracts the controller's 12-bit UDT id. Only meaningful when
// IsStruct is true.
func (c WireTypeCode) UDTID() uint16 {
	return uint16(c) & wireUDTIDMask
}

// FixedCode extracts the 8-bit fixed-type code. Only meaningful when
// neither IsStruct nor IsSystem is true.
func (c WireTypeCode) FixedCode() byte {
	return byte(uint16(c) & wireFixedCodeMask)
}

// DataTypeID maps a wire type code into the 32-bit type-id space. The
// system bit dominates; a struct whose udt_id is zero and a fixed code
// outside [0xC1, 0xDE] both resolve to TypeIDUnknown.
func (c WireTypeCode) DataTypeID() TypeID {
	switch {
	case c.IsSystem():
		return TypeIDUnknown
	case c.IsStruct():
		if c.UDTID() == 0 {
			return TypeIDUnknown
		}
		return EncodeUDTTypeID(c.UDTID())
	default:
		fc := c.FixedCode()
		if fc < wire.FixedTypeCodeMin || fc > wire.FixedTypeCodeMax {
			return TypeIDUnknown
		}
		return TypeID(fc)
	}
}

// EncodeUDTTypeID folds a controller UDT id into the flat type-id space by
// shifting it clear of the fixed-code subspace.
func EncodeUDTTypeID(udtID uint16) TypeID {
	return TypeID(udtID) << 8
}

// IsFixed reports whether id names a fixed (atomic or string) type.
func (id TypeID) IsFixed() bool {
	return id >= TypeID(wire.FixedTypeCodeMin) && id <= TypeID(wire.FixedTypeCodeMax)
}

// IsUDT reports whether id names a UDT: the UDT bits are set and the fixed
// and sentinel bits are clear.
func (id TypeID) IsUDT() bool {
	const udtBits = TypeID(wireUDTIDMask) << 8
	return id&udtBits != 0 && id&^udtBits == 0
}

// IsSentinel reports whether id is one of the two reserved sentinel ids.
func (id TypeID) IsSentinel() bool {
	return id == TypeIDUnknown || id == TypeIDSystem
}

// UDTID recovers the controller's 12-bit UDT id from a UDT type-id. The
// result is only meaningful when IsUDT is true.
func (id TypeID) UDTID() uint16 {
	return uint16(id >> 8)
}
