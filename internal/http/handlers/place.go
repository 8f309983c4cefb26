package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/voyplan/triphub/internal/observability"
	"github.com/voyplan/triphub/internal/places"
)

type PlaceLookup interface {
	Lookup(ctx context.Context, keyword string) (places.Place, error)
}

type PlaceHandler struct {
	places PlaceLookup
	prom   *observability.Prom
}

func NewPlaceHandler(lookup PlaceLookup, prom *observability.Prom) *PlaceHandler {
	return &PlaceHandler{places: lookup, prom: prom}
}

func (h *PlaceHandler) GetPlace(ctx *gin.Context) {
	keyword := strings.TrimSpace(ctx.Query("keyword"))

	if keyword == "" {
		RespondBadRequest(ctx, "missing_keyword", "keyword query parameter is required", nil)
		return
	}

	var p places.Place
	var err error

	call := func() error {
		p, err = h.places.Lookup(ctx.Request.Context(), keyword)
		return err
	}

	if h.prom != nil {
		_ = h.prom.ObserveUpstream("places", call)
	} else {
		_ = call()
	}

	if err != nil {
		switch {
		case errors.Is(err, places.ErrNotFound):
			RespondNotFound(ctx, "No place found for that keyword")
		case errors.Is(err, places.ErrNoAPIKey):
			RespondInternal(ctx, "Place lookup is not configured")
		default:
			RespondError(ctx, http.StatusInternalServerError, "upstream_error", "Place lookup failed", nil)
		}
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}
