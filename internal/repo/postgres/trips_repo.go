package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voyplan/triphub/internal/domain/trip"
	"github.com/voyplan/triphub/internal/observability"
)

type TripsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTripsRepo(pool *pgxpool.Pool, prom *observability.Prom) *TripsRepo {
	return &TripsRepo{pool: pool, prom: prom}
}

func (r *TripsRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *TripsRepo) Create(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error) {
	t := trip.NewFromCreateRequest(ownerID, req)

	err := r.observe("trips.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO trips(id, owner_id, destination, summary, full_json, created_at) VALUES($1,$2,$3,$4,$5,$6)`,
			t.ID, t.OwnerID, t.Destination, t.Summary, t.Payload, t.CreatedAt)

		return err
	})

	if err != nil {
		return trip.Trip{}, err
	}

	return t, nil
}

// ListByOwner returns the caller's trips, newest first. The owner filter is
// the authorization boundary; no variant without it exists.
func (r *TripsRepo) ListByOwner(ctx context.Context, ownerID string) ([]trip.Trip, error) {
	var output []trip.Trip

	err := r.observe("trips.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, owner_id, destination, summary, full_json, created_at
			 FROM trips
			 WHERE owner_id = $1
			 ORDER BY created_at DESC, id DESC`,
			ownerID)

		if err != nil {
			return err
		}

		defer rows.Close()

		output = make([]trip.Trip, 0)

		for rows.Next() {
			var t trip.Trip

			err = rows.Scan(&t.ID, &t.OwnerID, &t.Destination, &t.Summary, &t.Payload, &t.CreatedAt)

			if err != nil {
				return err
			}

			output = append(output, t)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

// DeleteOwned removes a trip only when the caller owns it. A missing id and
// someone else's id both come back as trip.ErrNotFound so the response does
// not leak whether the record exists.
func (r *TripsRepo) DeleteOwned(ctx context.Context, ownerID, id string) error {
	return r.observe("trips.delete_owned", func() error {
		tag, err := r.pool.Exec(ctx,
			`DELETE FROM trips WHERE id = $1 AND owner_id = $2`,
			id, ownerID)

		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return trip.ErrNotFound
		}

		return nil
	})
}
