package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SessionToken uuid.UUID `json:"-"` // Bearer credential, only ever sent via the session cookie
	CreatedAt    time.Time `json:"created_at"`
}
