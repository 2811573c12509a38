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
	"errors"
	"testing"
	"time"
)

func newConnectedTestClient(t *testing.T) (*Client, *MockTransport) {
	t.Helper()

	tagsBuf := appendTagRecord(nil, 1, fixedCodeREAL, 4, [3]uint32{}, "Speed")
	mt := NewMockTransport()
	mt.SetTagData("@tags", tagsBuf)
	mt.SetTagData("Speed", []byte{0, 0, 0, 0})

	c, err := New(mt, WithScanPeriod(time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := c.Connect("10.0.0.5", "1,0"); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return c, mt
}

func TestClientNewPopulatesRegistry(t *testing.T) {
	t.Parallel()

	c, err := New(NewMockTransport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.GetTagType(TypeID(fixedCodeDINT)) != KindDINT {
		t.Fatal("expected fixed types to be populated by New")
	}
}

func TestClientConnectAndTags(t *testing.T) {
	t.Parallel()

	c, _ := newConnectedTestClient(t)
	tags := c.Tags()
	if len(tags) != 1 || tags[0].TagName != "Speed" {
		t.Fatalf("Tags() = %+v", tags)
	}
}

func TestClientTagsBeforeConnectReturnsNil(t *testing.T) {
	t.Parallel()

	c, err := New(NewMockTransport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.Tags(); got != nil {
		t.Fatalf("Tags() before Connect = %v, want nil", got)
	}
}

func TestClientScanWithoutConnectFails(t *testing.T) {
	t.Parallel()

	c, err := New(NewMockTransport())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	err = c.Scan(context.Background(), func([]Tag) {}, func() bool { return false })
	if !errors.Is(err, ErrTagNotConnected) {
		t.Fatalf("Scan() error = %v, want ErrTagNotConnected", err)
	}
}

func TestClientScanPublishesValuesAcrossCycles(t *testing.T) {
	t.Parallel()

	c, mt := newConnectedTestClient(t)

	var cycles int
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := c.Scan(ctx, func(tags []Tag) {
		cycles++
		mt.SetTagData("Speed", []byte{byte(cycles), 0, 0, 0})
	}, func() bool { return cycles < 3 })
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if cycles != 3 {
		t.Fatalf("cycles = %d, want 3", cycles)
	}

	tags := c.Tags()
	if len(tags) != 1 {
		t.Fatalf("Tags() = %+v", tags)
	}
}

func TestClientCloseDestroysHandlesAndShutsDown(t *testing.T) {
	t.Parallel()

	c, mt := newConnectedTestClient(t)
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if mt.CreateCount("Speed") == 0 {
		t.Fatal("sanity: expected Speed to have been created during Connect")
	}
	if _, err := mt.Size(c.tags[0].handle); err == nil {
		t.Fatal("Speed's handle still resolves after Close; expected it to be released")
	}
}

func TestConnectClientHighLevelConstructor(t *testing.T) {
	t.Parallel()

	tagsBuf := appendTagRecord(nil, 1, fixedCodeDINT, 4, [3]uint32{}, "Count")
	mt := NewMockTransport()
	mt.SetTagData("@tags", tagsBuf)
	mt.SetTagData("Count", []byte{0, 0, 0, 0})

	c, err := ConnectClient(mt, "10.0.0.5", "1,0")
	if err != nil {
		t.Fatalf("ConnectClient() error = %v", err)
	}
	defer func() { _ = c.Close() }()

	if tags := c.Tags(); len(tags) != 1 || tags[0].TagName != "Count" {
		t.Fatalf("Tags() = %+v", tags)
	}
}

func TestConnectClientClosesOnEnumerationFailure(t *testing.T) {
	t.Parallel()

	mt := NewMockTransport()
	mt.SetCreateError("@tags", ErrDeviceNotFound)

	_, err := ConnectClient(mt, "10.0.0.5", "1,0")
	if err == nil {
		t.Fatal("expected ConnectClient to fail when enumeration fails")
	}
	if !errors.Is(err, ErrEnumerationFailed) {
		t.Fatalf("error = %v, want wrapping ErrEnumerationFailed", err)
	}
}
