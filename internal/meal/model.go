package meal

import (
	"time"

	"github.com/google/uuid"
)

type Meal struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	PartOfDiet  bool      `json:"part_of_diet"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fields are the caller-supplied, mutable meal attributes. Identity, owner
// and created_at are never settable through them.
type Fields struct {
	Name        string
	Description string
	Date        time.Time
	PartOfDiet  bool
}

// Metrics summarizes a user's meal history. Always recomputed from current
// data, never cached.
type Metrics struct {
	TotalAmount         int `json:"total_amount"`
	PartOfDietAmount    int `json:"part_of_diet_amount"`
	NotPartOfDietAmount int `json:"not_part_of_diet_amount"`
	BestStreak          int `json:"best_streak"`
}
