package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/voyplan/triphub/internal/domain/trip"
)

type TripsRepo struct {
	mu    sync.RWMutex
	items map[string]trip.Trip
}

func NewTripsRepo() *TripsRepo {
	return &TripsRepo{
		items: make(map[string]trip.Trip),
	}
}

func (r *TripsRepo) Create(_ context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error) {
	t := trip.NewFromCreateRequest(ownerID, req)

	r.mu.Lock()
	r.items[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *TripsRepo) ListByOwner(_ context.Context, ownerID string) ([]trip.Trip, error) {
	r.mu.RLock()

	out := make([]trip.Trip, 0)

	for _, t := range r.items {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	r.mu.RUnlock()

	// newest first, id as tiebreaker like the postgres repo
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *TripsRepo) DeleteOwned(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.items[id]

	if !ok || t.OwnerID != ownerID {
		return trip.ErrNotFound
	}

	delete(r.items, id)
	return nil
}
