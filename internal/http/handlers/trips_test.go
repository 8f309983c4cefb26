package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyplan/triphub/internal/domain/trip"
	"github.com/voyplan/triphub/internal/http/handlers"
	"github.com/voyplan/triphub/internal/http/middlewares"
	"github.com/voyplan/triphub/internal/repo/memory"
)

// fake repository implementing handlers.TripsStore

type fakeTripsRepo struct {
	createFn func(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error)
	listFn   func(ctx context.Context, ownerID string) ([]trip.Trip, error)
	deleteFn func(ctx context.Context, ownerID, id string) error
}

func (f *fakeTripsRepo) Create(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error) {
	if f.createFn != nil {
		return f.createFn(ctx, ownerID, req)
	}
	return trip.Trip{}, nil
}

func (f *fakeTripsRepo) ListByOwner(ctx context.Context, ownerID string) ([]trip.Trip, error) {
	if f.listFn != nil {
		return f.listFn(ctx, ownerID)
	}
	return []trip.Trip{}, nil
}

func (f *fakeTripsRepo) DeleteOwned(ctx context.Context, ownerID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, ownerID, id)
	}
	return nil
}

// tripsRouter mounts the trip routes behind the real auth middleware.

func tripsRouter(repo handlers.TripsStore, mw *middlewares.AuthMiddleware) *gin.Engine {
	r := gin.New()
	h := handlers.NewTripsHandler(repo)

	g := r.Group("/api/trips")
	g.Use(mw.RequireAuth())
	g.POST("", h.CreateTrip)
	g.GET("", h.ListTrips)
	g.DELETE("/:id", h.DeleteTrip)

	return r
}

func bearer(t *testing.T, userID, email string) map[string]string {
	t.Helper()

	token, err := newJWT().Generate(userID, email)

	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	return map[string]string{"Authorization": "Bearer " + token}
}

func TestCreateTrip(t *testing.T) {
	var gotOwner string

	repo := &fakeTripsRepo{
		createFn: func(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error) {
			gotOwner = ownerID
			return trip.NewFromCreateRequest(ownerID, req), nil
		},
	}

	r := tripsRouter(repo, middlewares.NewAuthMiddleware(newJWT()))

	body := `{"destination":"Kyoto","summary":"Test","full_json":{"a":1}}`
	w := doJSON(t, r, http.MethodPost, "/api/trips", body, bearer(t, "user-1", "alice@example.com"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}

	if gotOwner != "user-1" {
		t.Errorf("trip stored for owner %q, want user-1", gotOwner)
	}

	var created trip.Trip

	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if created.Destination != "Kyoto" {
		t.Errorf("destination = %q", created.Destination)
	}

	if string(created.Payload) != `{"a":1}` {
		t.Errorf("payload = %s", created.Payload)
	}
}

func TestCreateTripValidation(t *testing.T) {
	repo := &fakeTripsRepo{
		createFn: func(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error) {
			t.Fatal("create must not be reached on invalid input")
			return trip.Trip{}, nil
		},
	}

	r := tripsRouter(repo, middlewares.NewAuthMiddleware(newJWT()))
	headers := bearer(t, "user-1", "alice@example.com")

	tests := []struct {
		name string
		body string
	}{
		{"missing destination", `{"summary":"x","full_json":{}}`},
		{"missing payload", `{"destination":"Kyoto"}`},
		{"malformed json", `{"destination":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/trips", tc.body, headers)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestTripsAuthGate(t *testing.T) {
	repo := &fakeTripsRepo{}
	mw := middlewares.NewAuthMiddleware(newJWT())
	r := tripsRouter(repo, mw)

	t.Run("missing token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/trips", "", nil)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", w.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/trips", "", map[string]string{"Authorization": "Bearer not.a.jwt"})

		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := newExpiredJWT().Generate("user-1", "alice@example.com")

		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		w := doJSON(t, r, http.MethodGet, "/api/trips", "", map[string]string{"Authorization": "Bearer " + expired})

		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
	})
}

func TestDeleteTrip(t *testing.T) {
	knownID := uuid.NewString()

	tests := []struct {
		name       string
		id         string
		deleteErr  error
		wantStatus int
	}{
		{"success", knownID, nil, http.StatusOK},
		{"not found or not owned", knownID, trip.ErrNotFound, http.StatusNotFound},
		{"malformed id", "not-a-uuid", nil, http.StatusNotFound},
		{"store failure", knownID, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeTripsRepo{
				deleteFn: func(ctx context.Context, ownerID, id string) error {
					return tc.deleteErr
				},
			}

			r := tripsRouter(repo, middlewares.NewAuthMiddleware(newJWT()))

			w := doJSON(t, r, http.MethodDelete, "/api/trips/"+tc.id, "", bearer(t, "user-1", "alice@example.com"))

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

// Full scenario over the in-memory store: register-like seeding, trips
// created by one user stay invisible to another.
func TestOwnerIsolationScenario(t *testing.T) {
	repo := memory.NewTripsRepo()
	r := tripsRouter(repo, middlewares.NewAuthMiddleware(newJWT()))

	alice := bearer(t, "alice-id", "alice@example.com")
	bob := bearer(t, "bob-id", "bob@example.com")

	create := doJSON(t, r, http.MethodPost, "/api/trips", `{"destination":"Kyoto","summary":"Test","full_json":{"a":1}}`, alice)

	if create.Code != http.StatusOK {
		t.Fatalf("create: %d; body %s", create.Code, create.Body.String())
	}

	var created trip.Trip
	if err := json.Unmarshal(create.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	type listBody struct {
		Trips []trip.Trip `json:"trips"`
	}

	aliceList := doJSON(t, r, http.MethodGet, "/api/trips", "", alice)

	var al listBody
	if err := json.Unmarshal(aliceList.Body.Bytes(), &al); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(al.Trips) != 1 || al.Trips[0].Destination != "Kyoto" {
		t.Fatalf("alice's list wrong: %+v", al.Trips)
	}

	if string(al.Trips[0].Payload) != `{"a":1}` {
		t.Errorf("payload round-trip broken: %s", al.Trips[0].Payload)
	}

	bobList := doJSON(t, r, http.MethodGet, "/api/trips", "", bob)

	var bl listBody
	if err := json.Unmarshal(bobList.Body.Bytes(), &bl); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(bl.Trips) != 0 {
		t.Fatalf("bob sees alice's trips: %+v", bl.Trips)
	}

	// bob trying to delete alice's trip: indistinguishable from missing
	bobDelete := doJSON(t, r, http.MethodDelete, "/api/trips/"+created.ID, "", bob)

	if bobDelete.Code != http.StatusNotFound {
		t.Fatalf("foreign delete status = %d, want 404", bobDelete.Code)
	}

	aliceDelete := doJSON(t, r, http.MethodDelete, "/api/trips/"+created.ID, "", alice)

	if aliceDelete.Code != http.StatusOK {
		t.Fatalf("owner delete status = %d; body %s", aliceDelete.Code, aliceDelete.Body.String())
	}
}
