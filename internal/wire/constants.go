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

// Package wire provides bounds-checked little-endian decoding primitives
// shared by the tag-listing and UDT-definition parsers.
package wire

// MaxTagNameLength is the largest admissible tag or pseudo-tag name.
const MaxTagNameLength = 32

// TagEntryHeaderSize is the fixed portion of one @tags record, before the
// variable-length name: instance_id(4) + symbol_type(2) + element_length(2)
// + array_dims[3](12) + string_len(2).
const TagEntryHeaderSize = 4 + 2 + 2 + 3*4 + 2

// UDTHeaderSize is the fixed header of one @udt/<id> response: udt_id(2) +
// member_desc_words(4) + total_size(4) + n_fields(2) + handle(2).
const UDTHeaderSize = 2 + 4 + 4 + 2 + 2

// UDTFieldDescSize is the size of one field descriptor within a UDT
// response: metadata(2) + type_code(2) + offset(4).
const UDTFieldDescSize = 2 + 2 + 4

// FixedTypeCodeMin and FixedTypeCodeMax bound the valid wire-level fixed
// (atomic) type code range.
const (
	FixedTypeCodeMin = 0xC1
	FixedTypeCodeMax = 0xDE
)
