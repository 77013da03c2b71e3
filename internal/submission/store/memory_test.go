package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merididi/internal/submission/models"
)

func TestCreateContact_AssignsSequentialIDs(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	first := s.CreateContact(ctx, &models.ContactSubmission{Name: "Ravi"})
	second := s.CreateContact(ctx, &models.ContactSubmission{Name: "Meena"})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
}

func TestCreateWorker_CountersAreIndependentPerKind(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	s.CreateContact(ctx, &models.ContactSubmission{Name: "Ravi"})
	s.CreateContact(ctx, &models.ContactSubmission{Name: "Meena"})
	worker := s.CreateWorker(ctx, &models.WorkerRegistration{Name: "Asha"})

	assert.Equal(t, 1, worker.ID)
}

func TestCreateWorker_DoesNotTouchStatus(t *testing.T) {
	s := NewInMemory()

	w := s.CreateWorker(context.Background(), &models.WorkerRegistration{
		Name:   "Asha",
		Status: models.StatusPending,
	})

	assert.Equal(t, models.StatusPending, w.Status)
}

func TestList_ReturnsAllStoredRecords(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	s.CreateContact(ctx, &models.ContactSubmission{Name: "Ravi"})
	s.CreateContact(ctx, &models.ContactSubmission{Name: "Meena"})
	s.CreateWorker(ctx, &models.WorkerRegistration{Name: "Asha"})

	contacts := s.ListContacts(ctx)
	require.Len(t, contacts, 2)
	assert.Equal(t, 2, s.ContactCount(ctx))
	assert.Equal(t, 1, s.WorkerCount(ctx))
	assert.Empty(t, s.ListWorkers(ctx)[0].CreatedAt)
}

func TestCreateContact_ConcurrentIDsAreUnique(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	const n = 100
	ids := make(chan int, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := s.CreateContact(ctx, &models.ContactSubmission{Name: "Ravi"})
			ids <- c.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, s.ContactCount(ctx))
}
