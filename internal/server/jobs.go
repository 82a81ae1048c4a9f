// Copyright (c) 2026 NodeCanvas Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nodecanvas/scenepatch/pkg/types"
)

// jobStore tracks in-flight agent jobs and the event channel each one
// streams through. Jobs live in memory only; a restart drops them.
type jobStore struct {
	mu   sync.Mutex
	jobs map[string]chan types.StepEvent
}

func newJobStore() *jobStore {
	return &jobStore{jobs: make(map[string]chan types.StepEvent)}
}

// create registers a new job and returns its id and event channel. The
// channel is buffered so a slow SSE consumer does not stall the agent.
func (s *jobStore) create() (string, chan types.StepEvent) {
	id := uuid.NewString()
	ch := make(chan types.StepEvent, 256)

	s.mu.Lock()
	s.jobs[id] = ch
	s.mu.Unlock()

	return id, ch
}

func (s *jobStore) get(id string) (chan types.StepEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.jobs[id]
	return ch, ok
}

func (s *jobStore) remove(id string) {
	s.mu.Lock()
	delete(s.jobs, id)
	s.mu.Unlock()
}
