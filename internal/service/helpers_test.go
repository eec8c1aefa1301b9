// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-fleed/models"
)

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.MutationEvent
}

func (p *recordingPublisher) Publish(event models.MutationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) published() []models.MutationEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.MutationEvent(nil), p.events...)
}

// wrapAdapterErr builds an error the way the HTTP adapter reports a failed
// response.
func wrapAdapterErr(sentinel error, body string) error {
	return fmt.Errorf("%w: %s", sentinel, body)
}
