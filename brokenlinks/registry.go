// SPDX-FileCopyrightText: 2025 M. Shulhan <ms@kilabit.info>
// SPDX-License-Identifier: GPL-3.0-only

package brokenlinks

import "sync"

// registry store the addresses that has been scheduled for checking or
// scanning.
// The registry only grow during one scan.
type registry struct {
	seen map[string]struct{}
	mtx  sync.Mutex
}

func newRegistry() *registry {
	return &registry{
		seen: map[string]struct{}{},
	}
}

// tryClaim record the address and return true if its never seen before.
// Only one of the concurrent callers with the same address will get true.
func (reg *registry) tryClaim(addr string) bool {
	reg.mtx.Lock()
	defer reg.mtx.Unlock()

	_, seen := reg.seen[addr]
	if seen {
		return false
	}
	reg.seen[addr] = struct{}{}
	return true
}

func (reg *registry) len() int {
	reg.mtx.Lock()
	var n = len(reg.seen)
	reg.mtx.Unlock()
	return n
}
