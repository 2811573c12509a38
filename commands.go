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

import "fmt"

// tagsPseudoTag is the controller-side endpoint that returns the full tag
// listing (§4.B input).
const tagsPseudoTag = "@tags"

// udtPseudoTag formats the controller-side endpoint that returns the
// definition of the UDT with the given id (§4.C input).
func udtPseudoTag(udtID uint16) string {
	return fmt.Sprintf("@udt/%d", udtID)
}

// Default enumeration/scan tuning, mirrored from the controller attribute
// string defaults original_source builds for every tag handle.
const (
	// defaultPath is the CIP routing path ConnectContext falls back to when
	// the caller passes an empty path: backplane slot 0 through the local
	// chassis, the routing every original_source sample targets.
	defaultPath = "1,0"

	// defaultElementLength16Bit marks a BOOL field's reported element
	// length of 1 bit packed into a 16-bit word, per the wire tag-listing
	// convention for atomic BOOL entries: a scalar BOOL tag's element_length
	// often comes back 0 from the controller, so ConnectTag substitutes
	// this instead of asking the transport to size a zero-length tag.
	defaultElementLength16Bit = 1
)
