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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-clx/clx"
	"github.com/go-clx/clx/transport/eip"
)

type config struct {
	gateway *string
	path    *string
	cycles  *int
	period  *time.Duration
	debug   *bool
}

func parseFlags() *config {
	cfg := &config{
		gateway: flag.String("gateway", "", "Controller IP address (required)"),
		path:    flag.String("path", "1,0", "CIP routing path to the controller"),
		cycles:  flag.Int("cycles", 0, "Number of scan cycles to run, 0 for unlimited"),
		period:  flag.Duration("period", 100*time.Millisecond, "Target scan cycle period"),
		debug:   flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()

	if *cfg.debug {
		clx.SetDebugEnabled(true)
	}

	return cfg
}

func main() {
	cfg := parseFlags()
	if *cfg.gateway == "" {
		fmt.Fprintln(os.Stderr, "usage: tagscan -gateway <ip> [-path 1,0] [-cycles N]")
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "tagscan:", err)
		os.Exit(1)
	}
}

func run(cfg *config) error {
	transport, err := eip.New()
	if err != nil {
		return fmt.Errorf("create transport: %w", err)
	}

	client, err := clx.New(transport, clx.WithScanConfig(&clx.ScanConfig{Period: *cfg.period}))
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.Connect(*cfg.gateway, *cfg.path); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	fmt.Printf("discovered %d tags on %s\n", len(client.Tags()), *cfg.gateway)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cycleCount := 0
	return client.Scan(ctx, func(tags []clx.Tag) {
		cycleCount++
		printCycle(cycleCount, tags)
	}, func() bool {
		if ctx.Err() != nil {
			return false
		}
		if *cfg.cycles > 0 && cycleCount >= *cfg.cycles {
			return false
		}
		return true
	})
}

func printCycle(cycle int, tags []clx.Tag) {
	fmt.Printf("--- cycle %d ---\n", cycle)
	for _, t := range tags {
		status := "ok"
		switch {
		case !t.Connected:
			status = "unconnected"
		case !t.LastScanOK:
			status = "stale"
		}
		fmt.Printf("%-32s %-16s count=%-4d %-10s % x\n",
			t.TagName, t.DataTypeName, t.ArrayCount, status, t.Bytes)
	}
}
