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
	"context"
	"strconv"
	"time"
)

// defaultTagTimeout is the per-operation timeout the adapter applies to
// Create/Read calls, short enough that a hung controller cannot stall the
// scan loop beyond a single cycle.
const defaultTagTimeout = 100 * time.Millisecond

// Adapter is the transport adapter of 4.F: it builds CIP attribute
// strings, owns the per-tag transport handles, and moves bytes without
// ever interpreting them. A single reusable scratch buffer backs attribute
// string construction so steady-state enumeration avoids per-call heap
// churn beyond the final string conversion Go's immutable strings require.
type Adapter struct {
	transport Transport
	retry     *TransportWithRetry
	gateway   string
	path      string
	scratch   []byte
}

// NewAdapter builds an Adapter addressing gateway (controller IP) and path
// (CIP routing path, e.g. "1,0") over transport.
func NewAdapter(transport Transport, gateway, path string, retryConfig *RetryConfig) *Adapter {
	return &Adapter{
		transport: transport,
		retry:     NewTransportWithRetry(transport, retryConfig),
		gateway:   gateway,
		path:      path,
		scratch:   make([]byte, 0, 256),
	}
}

// buildAttrString rewrites the adapter's scratch buffer into the
// attribute-string grammar `protocol=ab-eip&plc=controllogix&gateway=<ip>&
// path=<path>&name=<tag>&elem_size=<n>&elem_count=<m>`. ASCII only; tag
// names are already constrained by the §4.B validation rule so no
// escaping is required.
func (a *Adapter) buildAttrString(name string, elemSize, elemCount int) string {
	a.scratch = a.scratch[:0]
	a.scratch = append(a.scratch, "protocol=ab-eip&plc=controllogix&gateway="...)
	a.scratch = append(a.scratch, a.gateway...)
	a.scratch = append(a.scratch, "&path="...)
	a.scratch = append(a.scratch, a.path...)
	a.scratch = append(a.scratch, "&name="...)
	a.scratch = append(a.scratch, name...)
	a.scratch = append(a.scratch, "&elem_size="...)
	a.scratch = strconv.AppendInt(a.scratch, int64(elemSize), 10)
	a.scratch = append(a.scratch, "&elem_count="...)
	a.scratch = strconv.AppendInt(a.scratch, int64(elemCount), 10)
	return string(a.scratch)
}

// ConnectTag opens a transport handle for t's tag name, using the element
// size/count derived from its discovery-time entry. On success it records
// the handle and marks the tag connected; on failure it marks the tag
// unconnected and returns the error, which the enumeration driver treats
// as non-fatal.
func (a *Adapter) ConnectTag(ctx context.Context, t *trackedTag) error {
	elemSize := int(t.entry.ElementLength)
	if elemSize == 0 && t.entry.TypeCode.IsBitField() {
		elemSize = defaultElementLength16Bit
	}
	attr := a.buildAttrString(t.entry.Name, elemSize, int(t.entry.ElementCount()))
	handle, err := a.retry.Create(ctx, attr, defaultTagTimeout)
	if err != nil {
		t.connected = false
		return NewTransportError("ConnectTag", t.entry.Name, err, GetErrorType(err))
	}
	t.handle = handle
	t.connected = true
	return nil
}

// ScanToView reads t's handle and copies its current value into view. Used
// once per connected tag per scan cycle; failures are not retried here —
// the caller (the scan loop) leaves the tag's previous bytes in place and
// retries on the next cycle.
func (a *Adapter) ScanToView(ctx context.Context, handle TransportHandle, view []byte) error {
	if err := a.transport.Read(ctx, handle, defaultTagTimeout); err != nil {
		return NewTransportError("ScanToView.Read", "", err, GetErrorType(err))
	}
	if err := a.transport.GetRawBytes(handle, 0, view); err != nil {
		return NewTransportError("ScanToView.GetRawBytes", "", err, GetErrorType(err))
	}
	return nil
}

// ScanToBuffer reads the pseudo-tag name (e.g. "@tags" or "@udt/12") into a
// freshly allocated buffer sized exactly to the response, then releases
// the handle. Used only during enumeration, so Create and Read both go
// through the adapter's retry wrapper.
func (a *Adapter) ScanToBuffer(ctx context.Context, name string) ([]byte, error) {
	handle, err := a.retry.Create(ctx, a.buildAttrString(name, 1, 1), defaultTagTimeout)
	if err != nil {
		return nil, NewTransportError("ScanToBuffer.Create", name, err, GetErrorType(err))
	}
	defer func() { _ = a.transport.Destroy(handle) }()

	readErr := RetryWithConfig(ctx, a.retry.config, func() error {
		return a.transport.Read(ctx, handle, defaultTagTimeout)
	})
	if readErr != nil {
		return nil, NewTransportError("ScanToBuffer.Read", name, readErr, GetErrorType(readErr))
	}

	size, err := a.transport.Size(handle)
	if err != nil {
		return nil, NewTransportError("ScanToBuffer.Size", name, err, GetErrorType(err))
	}

	buf := make([]byte, size)
	if size > 0 {
		if err := a.transport.GetRawBytes(handle, 0, buf); err != nil {
			return nil, NewTransportError("ScanToBuffer.GetRawBytes", name, err, GetErrorType(err))
		}
	}
	return buf, nil
}
