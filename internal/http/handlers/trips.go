package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/voyplan/triphub/internal/config"
	"github.com/voyplan/triphub/internal/domain/trip"
	"github.com/voyplan/triphub/internal/http/middlewares"
)

type TripsStore interface {
	Create(ctx context.Context, ownerID string, req trip.CreateTripRequest) (trip.Trip, error)
	ListByOwner(ctx context.Context, ownerID string) ([]trip.Trip, error)
	DeleteOwned(ctx context.Context, ownerID, id string) error
}

type TripsHandler struct {
	repo TripsStore
}

func NewTripsHandler(repo TripsStore) *TripsHandler {
	return &TripsHandler{repo: repo}
}

// callerID pulls the identity the auth middleware verified. Routes are
// registered behind RequireAuth, so a miss here is a wiring bug.
func callerID(ctx *gin.Context) (string, bool) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok || id == "" {
		RespondUnauthorized(ctx, "unauthenticated", "Missing identity context")
		return "", false
	}

	return id, true
}

func (h *TripsHandler) CreateTrip(ctx *gin.Context) {
	owner, ok := callerID(ctx)

	if !ok {
		return
	}

	var req trip.CreateTripRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, owner, req)

	if err != nil {
		RespondInternal(ctx, "Could not save trip")
		return
	}

	ctx.JSON(http.StatusOK, created)
}

func (h *TripsHandler) ListTrips(ctx *gin.Context) {
	owner, ok := callerID(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	trips, err := h.repo.ListByOwner(cctx, owner)

	if err != nil {
		RespondInternal(ctx, "Could not list trips")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"trips": trips})
}

func (h *TripsHandler) DeleteTrip(ctx *gin.Context) {
	owner, ok := callerID(ctx)

	if !ok {
		return
	}

	id := ctx.Param("id")

	if uuid.Validate(id) != nil {
		// malformed ids get the same answer as unknown ones
		RespondNotFound(ctx, "Trip not found")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.DeleteOwned(cctx, owner, id)

	if err != nil {
		if errors.Is(err, trip.ErrNotFound) {
			RespondNotFound(ctx, "Trip not found")
			return
		}

		RespondInternal(ctx, "Could not delete trip")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"deleted": id})
}
