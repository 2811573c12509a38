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

import "time"

// Option is a functional option for configuring a Client at construction.
type Option func(*Client) error

// WithRetryConfig sets the retry configuration applied to enumeration-time
// transport reads.
func WithRetryConfig(config *RetryConfig) Option {
	return func(c *Client) error {
		c.config.RetryConfig = config
		return nil
	}
}

// WithScanConfig sets the scan-loop tuning (currently just the target
// cycle period).
func WithScanConfig(config *ScanConfig) Option {
	return func(c *Client) error {
		if config == nil {
			return ErrInvalidParameter
		}
		c.config.ScanConfig = config
		return nil
	}
}

// WithScanPeriod is a convenience option equivalent to WithScanConfig for
// just the cycle period.
func WithScanPeriod(period time.Duration) Option {
	return func(c *Client) error {
		c.config.ScanConfig.Period = period
		return nil
	}
}

// New constructs a Client bound to transport, applying opts in order, and
// populates the fixed/string type table (the Go-native equivalent of the
// public API's init).
func New(transport Transport, opts ...Option) (*Client, error) {
	c := &Client{
		transport: transport,
		config:    DefaultClientConfig(),
		registry:  NewRegistry(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.registry.PopulateFixedTypes()
	c.initialized = true
	return c, nil
}

// ConnectOption configures the convenience ConnectClient constructor.
type ConnectOption func(*connectConfig) error

type connectConfig struct {
	clientOptions []Option
}

// WithClientOptions adds Client-level options to apply before connecting.
func WithClientOptions(opts ...Option) ConnectOption {
	return func(c *connectConfig) error {
		c.clientOptions = append(c.clientOptions, opts...)
		return nil
	}
}

// ConnectClient is a high-level convenience wrapper: it constructs a
// Client over transport, then immediately performs enumeration against
// gateway/path. On any failure it closes the partially built client before
// returning the error, mirroring the teacher's ConnectDevice idiom.
func ConnectClient(transport Transport, gateway, path string, opts ...ConnectOption) (*Client, error) {
	cfg := &connectConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	client, err := New(transport, cfg.clientOptions...)
	if err != nil {
		return nil, err
	}

	if err := client.Connect(gateway, path); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}
