// Package store holds accepted submissions in memory for the process
// lifetime. There is no durable backend: a restart discards all records,
// which is the intended lifecycle for this service.
package store

import (
	"context"
	"sort"
	"sync"

	"merididi/internal/submission/models"
)

// InMemory keeps one keyed collection per record kind and assigns each
// kind its own strictly increasing id sequence. Construct it once at
// process start and inject it; it is not a package-level singleton.
type InMemory struct {
	mu            sync.RWMutex
	contacts      map[int]*models.ContactSubmission
	workers       map[int]*models.WorkerRegistration
	nextContactID int
	nextWorkerID  int
}

// NewInMemory creates an empty store. Id sequences start at 1.
func NewInMemory() *InMemory {
	return &InMemory{
		contacts:      make(map[int]*models.ContactSubmission),
		workers:       make(map[int]*models.WorkerRegistration),
		nextContactID: 1,
		nextWorkerID:  1,
	}
}

// CreateContact assigns the next contact id, stores the record, and
// returns it. Id assignment happens under the lock so concurrent
// requests can never observe a duplicate.
func (s *InMemory) CreateContact(_ context.Context, c *models.ContactSubmission) *models.ContactSubmission {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextContactID
	s.nextContactID++
	s.contacts[c.ID] = c
	return c
}

// CreateWorker assigns the next worker id, stores the record, and returns it.
func (s *InMemory) CreateWorker(_ context.Context, w *models.WorkerRegistration) *models.WorkerRegistration {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextWorkerID
	s.nextWorkerID++
	s.workers[w.ID] = w
	return w
}

// ListContacts returns all stored contact submissions. Results are
// sorted by id for stable reads, but callers must not rely on order.
func (s *InMemory) ListContacts(_ context.Context) []*models.ContactSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.ContactSubmission, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListWorkers returns all stored worker registrations.
func (s *InMemory) ListWorkers(_ context.Context) []*models.WorkerRegistration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.WorkerRegistration, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ContactCount returns the number of stored contact submissions.
func (s *InMemory) ContactCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// WorkerCount returns the number of stored worker registrations.
func (s *InMemory) WorkerCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workers)
}
