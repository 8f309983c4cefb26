package trip

import (
	"encoding/json"
	"errors"
	"time"
)

type Trip struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"-"` // authorization boundary, not part of the API shape
	Destination string          `json:"destination"`
	Summary     string          `json:"summary,omitempty"`
	Payload     json.RawMessage `json:"full_json"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ErrNotFound covers both an absent trip and a trip owned by someone else.
// Callers are deliberately unable to tell the two apart.
var ErrNotFound = errors.New("trip not found")

type CreateTripRequest struct {
	Destination string          `json:"destination" binding:"required,min=1,max=200"`
	Summary     string          `json:"summary" binding:"omitempty,max=2000"`
	Payload     json.RawMessage `json:"full_json" binding:"required"`
}
