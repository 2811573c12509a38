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

/*
Package clx is a client library for discovering tags and user-defined
types (UDTs) on an Allen-Bradley ControlLogix-class programmable logic
controller over EtherNet/IP, and for running a periodic scan loop that
refreshes all tag values and republishes a consistent snapshot.

Features:
  - Tag-listing and UDT-definition parsing of the controller's binary
    @tags and @udt/<id> responses
  - A flat 32-bit type-id space unifying fixed (atomic/string) types,
    transitively discovered UDTs, and two sentinel ids
  - A lock-free double-buffered scan region: one goroutine refreshes tag
    values while the caller reads a stable published snapshot
  - Retry with exponential backoff for enumeration-time transport reads,
    deliberately not applied to steady-state per-cycle scans
  - Pluggable Transport, with a concrete EtherNet/IP implementation over
    libplctag in transport/eip

Basic Usage:

	import (
	    "github.com/go-clx/clx"
	    "github.com/go-clx/clx/transport/eip"
	)

	transport, err := eip.New()
	if err != nil {
	    log.Fatal(err)
	}

	client, err := clx.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := client.Connect("192.168.1.10", "1,0"); err != nil {
	    log.Fatal(err)
	}
	defer client.Close()

	cycles := 0
	err = client.Scan(context.Background(), func(tags []clx.Tag) {
	    for _, t := range tags {
	        fmt.Printf("%s (%s) = % x\n", t.TagName, t.DataTypeName, t.Bytes)
	    }
	}, func() bool {
	    cycles++
	    return cycles <= 10
	})

Error Handling:

Enumeration and transport failures return meaningful errors that can be
inspected:

	if errors.Is(err, clx.ErrEnumerationFailed) {
	    // @tags could not be read or parsed; nothing was published
	}

Per-UDT and per-tag failures during Connect are absorbed rather than
propagated: a tag whose UDT failed to resolve keeps the registry's "UDT"
placeholder name, and an unconnected tag's bytes stay zero. Per-cycle scan
failures leave a tag's previously published bytes in place and retry on
the next cycle; Scan itself never returns an error for them.

Thread Safety:

Client is not thread-safe. Connect must complete before Scan is called,
and Close must not run concurrently with an active Scan — callers must
ensure the scan predicate has returned false and Scan has returned before
calling Close.
*/
package clx
