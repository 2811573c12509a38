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

// IsValidTagName reports whether name passes the controller's symbol-name
// admission rule: length in [1, 32], first character a letter or '@', and
// every character alphanumeric, underscore, '@', or '/'. The '@' and '/'
// allowances exist so pseudo-tags like "@tags" and "@udt/12" pass the same
// filter as ordinary tag names.
func IsValidTagName(name string) bool {
	if len(name) < 1 || len(name) > MaxTagNameLength {
		return false
	}

	first := name[0]
	if !isLetter(first) && first != '@' {
		return false
	}

	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}

	return true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNameChar(b byte) bool {
	return isLetter(b) || isDigit(b) || b == '_' || b == '@' || b == '/'
}

// IsSystemTagName reports whether name is a controller pseudo-tag such as
// "@tags" or "@udt/12" rather than a user-facing tag. The conservative
// reading from the design notes: any admitted name starting with '@' is a
// system pseudo-tag. Enumeration always excludes such names from the public
// tag list; there is no option to include them.
func IsSystemTagName(name string) bool {
	return len(name) > 0 && name[0] == '@'
}
