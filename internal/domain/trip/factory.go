package trip

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateTripRequest) Trip {
	return Trip{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Destination: req.Destination,
		Summary:     req.Summary,
		Payload:     req.Payload,
		CreatedAt:   time.Now().UTC(),
	}
}
