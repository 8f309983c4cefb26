package user

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// Public is the view of a user safe to return to clients.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u User) Public() Public {
	return Public{ID: u.ID, Email: u.Email}
}
