// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
)

// listener runs the goroutines that consume push events for one list.
type listener struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// start stops goroutines of a previous start, then runs every fn in its own
// goroutine until ctx is cancelled or stop is called.
func (l *listener) start(ctx context.Context, fns ...func(ctx context.Context)) {
	l.stop()

	l.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.wg.Add(len(fns))
	l.mu.Unlock()

	for _, fn := range fns {
		go func() {
			defer l.wg.Done()
			fn(jobCtx)
		}()
	}
}

// stop cancels the goroutines and blocks until they have exited. Safe to call
// when nothing is running.
func (l *listener) stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.wg.Wait()
}
