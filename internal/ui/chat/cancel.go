// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"sync"
)

// =============================================================================
// REQUEST CANCELLATION
// =============================================================================

// cancelManager holds the cancel function of the in-flight request. The
// Model keeps a pointer so that copies made by Update share it.
type cancelManager struct {
	mu         sync.Mutex
	seq        uint64
	cancelFunc context.CancelFunc
}

func newCancelManager() *cancelManager {
	return &cancelManager{}
}

// begin derives a request context from parent. The returned release func
// must be called when the request finishes; it only clears the stored
// cancel func if no newer request has started since.
func (cm *cancelManager) begin(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	cm.mu.Lock()
	cm.seq++
	seq := cm.seq
	cm.cancelFunc = cancel
	cm.mu.Unlock()

	return ctx, func() {
		cancel()
		cm.mu.Lock()
		if cm.seq == seq {
			cm.cancelFunc = nil
		}
		cm.mu.Unlock()
	}
}

// cancel cancels the in-flight request. It reports whether there was one.
// Safe to call with nothing in flight.
func (cm *cancelManager) cancel() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if cm.cancelFunc == nil {
		return false
	}
	cm.cancelFunc()
	cm.cancelFunc = nil
	return true
}
