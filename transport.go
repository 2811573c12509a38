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
	"time"
)

// TransportHandle identifies one open tag connection on the underlying
// EtherNet/IP transport. Its zero value never names a valid handle.
type TransportHandle int32

// Transport is the external collaborator the core consumes: a thin binding
// to the underlying EtherNet/IP/CIP library. It owns connection
// establishment, per-operation timeouts, and raw byte movement; it never
// interprets tag bytes.
type Transport interface {
	// Create opens a new tag handle for the given attribute string
	// (protocol=ab-eip&plc=controllogix&gateway=...&path=...&name=...).
	Create(ctx context.Context, attrString string, timeout time.Duration) (TransportHandle, error)

	// Read triggers a value refresh for handle, blocking up to timeout.
	Read(ctx context.Context, handle TransportHandle, timeout time.Duration) error

	// Size returns the current byte length of handle's value.
	Size(handle TransportHandle) (int, error)

	// GetRawBytes copies handle's value starting at offset into dst,
	// filling len(dst) bytes.
	GetRawBytes(handle TransportHandle, offset int, dst []byte) error

	// Destroy releases a single tag handle.
	Destroy(handle TransportHandle) error

	// Shutdown releases every resource the transport owns globally. Called
	// once, from Client.Close.
	Shutdown() error
}

// TransportWithRetry wraps a Transport's Create operation with retry
// logic. It is used only during enumeration, for the handles of the @tags
// and @udt/<n> pseudo-tags and for each tag's connection handle in
// Adapter.ConnectTag (see RetryConfig's doc comment) — never around the
// steady-state per-cycle scan reads.
type TransportWithRetry struct {
	transport Transport
	config    *RetryConfig
}

// NewTransportWithRetry wraps transport with the given retry configuration,
// falling back to DefaultRetryConfig if config is nil.
func NewTransportWithRetry(transport Transport, config *RetryConfig) *TransportWithRetry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &TransportWithRetry{transport: transport, config: config}
}

// Create opens a tag handle, retrying transient failures per the
// configured RetryConfig.
func (t *TransportWithRetry) Create(ctx context.Context, attrString string, timeout time.Duration) (TransportHandle, error) {
	var handle TransportHandle
	err := RetryWithConfig(ctx, t.config, func() error {
		var err error
		handle, err = t.transport.Create(ctx, attrString, timeout)
		if err != nil {
			return NewTransportError("Create", attrString, err, GetErrorType(err))
		}
		return nil
	})
	return handle, err
}

// SetRetryConfig updates the retry configuration used by Create.
func (t *TransportWithRetry) SetRetryConfig(config *RetryConfig) {
	t.config = config
}
