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
	"fmt"
)

// ClientConfig bundles the tunables a Client is constructed with.
type ClientConfig struct {
	// RetryConfig governs retries of enumeration-time transport reads
	// (@tags, @udt/<n>). See RetryConfig's own doc comment for why this is
	// never applied to steady-state scan reads.
	RetryConfig *RetryConfig
	// ScanConfig governs the periodic scan loop's cycle timing.
	ScanConfig *ScanConfig
}

// DefaultClientConfig returns sensible defaults for both enumeration
// retries and scan cycle timing.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		RetryConfig: DefaultRetryConfig(),
		ScanConfig:  DefaultScanConfig(),
	}
}

// Client is the library's entry point: it owns the type registry, the tag
// memory regions, and the transport. Thread Safety: Client is NOT
// thread-safe. Connect must complete before Scan is called; shutdown
// (Close) must not run concurrently with an active Scan — callers must
// ensure the scan predicate has returned false and Scan has returned
// before calling Close.
type Client struct {
	transport   Transport
	config      *ClientConfig
	registry    *Registry
	adapter     *Adapter
	tags        []*trackedTag
	mem         *TagMemory
	initialized bool
	connected   bool
}

// Init (re)populates the fixed/string type table. New already calls this
// once; Init is exposed for callers that construct a Client via a literal
// and skip the functional-option constructor.
func (c *Client) Init() error {
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	c.registry.PopulateFixedTypes()
	c.initialized = true
	return nil
}

// Connect performs enumeration (4.G): it reads @tags, transitively
// resolves every referenced UDT, sizes and allocates the tag memory
// region, and opens a transport connection per discovered tag. It returns
// an error only if @tags itself could not be read or parsed — per-UDT and
// per-tag failures are absorbed (see errors.go and the design notes).
func (c *Client) Connect(gateway, path string) error {
	return c.ConnectContext(context.Background(), gateway, path)
}

// ConnectContext is Connect with an explicit context, threaded through to
// every transport call made during enumeration.
func (c *Client) ConnectContext(ctx context.Context, gateway, path string) error {
	if !c.initialized {
		if err := c.Init(); err != nil {
			return err
		}
	}

	if path == "" {
		path = defaultPath
	}

	c.adapter = NewAdapter(c.transport, gateway, path, c.config.RetryConfig)

	result, err := enumerate(ctx, c.adapter, c.registry)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEnumerationFailed, err)
	}

	c.tags = result.tags
	c.mem = result.mem
	c.connected = true
	return nil
}

// Tags returns the current snapshot of every discovered tag, in
// enumeration order. Safe to call at any point after Connect returns,
// including before the first Scan cycle (all bytes read as zero then).
func (c *Client) Tags() []Tag {
	if !c.connected {
		return nil
	}
	return publicTags(c.tags, c.mem)
}

// Scan runs the periodic scan loop (4.H) until predicate returns false.
// callback receives the freshly published snapshot once per cycle. ctx
// cancellation additionally stops the loop between cycles; the
// cycle/flip/predicate semantics themselves are unchanged from the
// synchronous design (see the scanner in scan.go).
func (c *Client) Scan(ctx context.Context, callback func([]Tag), predicate func() bool) error {
	if !c.connected {
		return ErrTagNotConnected
	}

	s := &scanner{
		adapter: c.adapter,
		tags:    c.tags,
		mem:     c.mem,
		config:  c.config.ScanConfig,
	}
	s.run(ctx, callback, predicate)
	return nil
}

// GetTagType classifies id into its TagKind. Pure function over the
// id-space; callable at any point, even before Connect (fixed-type ids
// resolve once Init/New has run).
func (c *Client) GetTagType(id TypeID) TagKind {
	return c.registry.TagTypeKind(id)
}

// GetTypeCategory classifies id into the coarser Numeric/String/Udt/Other
// grouping, the feature original_source exposes alongside GetTagType.
func (c *Client) GetTypeCategory(id TypeID) TypeCategory {
	return c.registry.TypeCategory(id)
}

// DataTypes returns the fixed/string type table populated by Init/New, so
// callers can browse the controller's atomic type catalogue rather than
// only classify one id at a time via GetTagType/GetTypeCategory.
func (c *Client) DataTypes() []DataType {
	return c.registry.DataTypes()
}

// UDTTypes returns every UDT discovered during Connect, in ascending
// type-id order, each with its fields resolved to their data-type names.
func (c *Client) UDTTypes() []*UDTInfo {
	return c.registry.UDTTypes()
}

// Close releases every resource the Client owns: all per-tag transport
// handles and the transport itself. Not safe to call concurrently with an
// active Scan.
func (c *Client) Close() error {
	if c.adapter != nil {
		for _, t := range c.tags {
			if t.connected {
				_ = c.transport.Destroy(t.handle)
			}
		}
	}
	if c.transport != nil {
		if err := c.transport.Shutdown(); err != nil {
			return fmt.Errorf("%w: %v", ErrShuttingDown, err)
		}
	}
	c.connected = false
	return nil
}
