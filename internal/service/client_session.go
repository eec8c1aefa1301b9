// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync"

	"github.com/MKhiriev/go-fleed/models"
)

// sessionState is the session shared by the client services of one process.
type sessionState struct {
	mu      sync.RWMutex
	session models.Session
	active  bool
}

func (s *sessionState) set(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session, s.active = session, true
}

func (s *sessionState) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session, s.active = models.Session{}, false
}

func (s *sessionState) current() (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.active
}
