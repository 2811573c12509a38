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
	"strings"
	"sync"
	"time"
)

// mockTag is one simulated controller-side tag or pseudo-tag served by
// MockTransport.
type mockTag struct {
	data []byte

	createErr error
	readErr   error
	// readErrCount bounds how many successive Read calls return readErr
	// before a call finally succeeds, letting tests exercise retry paths
	// without failing forever.
	readErrCount int

	// block, when true, makes Read wait for Unblock or ctx cancellation —
	// used for deadlock and context-cancellation tests.
	block bool
}

// MockTransport is a Transport implementation driven entirely by in-memory
// fixtures, the role BlockingMockTransport played for command/response
// testing: tests register canned data per tag name and assert on the
// resulting Client/Adapter/scanner behavior without a real controller.
type MockTransport struct {
	mu          sync.Mutex
	tags        map[string]*mockTag
	handles     map[TransportHandle]string
	nextID      int32
	blockChan   chan struct{}
	createCount map[string]int
	readCount   map[string]int
	shutdownErr error
}

// NewMockTransport returns an empty MockTransport; use SetTagData (and the
// error/blocking variants) to populate it before exercising a Client or
// Adapter against it.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		tags:        make(map[string]*mockTag),
		handles:     make(map[TransportHandle]string),
		blockChan:   make(chan struct{}),
		createCount: make(map[string]int),
		readCount:   make(map[string]int),
	}
}

// SetTagData registers the raw response bytes Read should populate for
// name (a tag name or pseudo-tag like "@tags"/"@udt/12").
func (m *MockTransport) SetTagData(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tag(name).data = data
}

// SetCreateError makes Create fail for name with err, every time.
func (m *MockTransport) SetCreateError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tag(name).createErr = err
}

// SetReadError makes the next count calls to Read for name fail with err,
// after which Read succeeds normally (and continues returning whatever
// data was registered via SetTagData).
func (m *MockTransport) SetReadError(name string, err error, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.tag(name)
	t.readErr = err
	t.readErrCount = count
}

// SetBlocking makes Read for name wait until Unblock is called or the
// passed context is canceled.
func (m *MockTransport) SetBlocking(name string, blocking bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tag(name).block = blocking
}

// Unblock releases every Read currently waiting on a blocking tag.
func (m *MockTransport) Unblock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	close(m.blockChan)
	m.blockChan = make(chan struct{})
}

// CreateCount reports how many times Create has been called for name.
func (m *MockTransport) CreateCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCount[name]
}

// ReadCount reports how many times Read has been called for name.
func (m *MockTransport) ReadCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readCount[name]
}

// SetShutdownError makes Shutdown return err instead of nil.
func (m *MockTransport) SetShutdownError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shutdownErr = err
}

func (m *MockTransport) tag(name string) *mockTag {
	t, ok := m.tags[name]
	if !ok {
		t = &mockTag{}
		m.tags[name] = t
	}
	return t
}

// Create implements Transport.
func (m *MockTransport) Create(_ context.Context, attrString string, _ time.Duration) (TransportHandle, error) {
	name := attrValue(attrString, "name")

	m.mu.Lock()
	defer m.mu.Unlock()

	m.createCount[name]++
	t := m.tag(name)
	if t.createErr != nil {
		return 0, t.createErr
	}

	m.nextID++
	id := TransportHandle(m.nextID)
	m.handles[id] = name
	return id, nil
}

// Read implements Transport.
func (m *MockTransport) Read(ctx context.Context, handle TransportHandle, _ time.Duration) error {
	m.mu.Lock()
	name, ok := m.handles[handle]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("mock transport: unknown handle %d", handle)
	}
	t := m.tag(name)
	blockChan := m.blockChan
	blocking := t.block
	m.readCount[name]++
	m.mu.Unlock()

	if blocking {
		select {
		case <-blockChan:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if t.readErrCount > 0 {
		t.readErrCount--
		return t.readErr
	}
	return nil
}

// Size implements Transport.
func (m *MockTransport) Size(handle TransportHandle) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.handles[handle]
	if !ok {
		return 0, fmt.Errorf("mock transport: unknown handle %d", handle)
	}
	return len(m.tag(name).data), nil
}

// GetRawBytes implements Transport.
func (m *MockTransport) GetRawBytes(handle TransportHandle, offset int, dst []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.handles[handle]
	if !ok {
		return fmt.Errorf("mock transport: unknown handle %d", handle)
	}
	data := m.tag(name).data
	if offset < 0 || offset+len(dst) > len(data) {
		return fmt.Errorf("mock transport: out of range read on %q", name)
	}
	copy(dst, data[offset:offset+len(dst)])
	return nil
}

// Destroy implements Transport.
func (m *MockTransport) Destroy(handle TransportHandle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handles, handle)
	return nil
}

// Shutdown implements Transport.
func (m *MockTransport) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles = make(map[TransportHandle]string)
	return m.shutdownErr
}

// attrValue extracts the value of key from an Adapter-built attribute
// string, mirroring transport/eip's gatewayFromAttrString.
func attrValue(attrString, key string) string {
	marker := key + "="
	idx := strings.Index(attrString, marker)
	if idx < 0 {
		return ""
	}
	rest := attrString[idx+len(marker):]
	if end := strings.IndexByte(rest, '&'); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
