package meal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/daily-diet-api/internal/database"
)

// ErrNotFound covers both an absent meal and a meal owned by someone else.
// The two causes are deliberately indistinguishable so that callers cannot
// probe for the existence of other users' meals.
var ErrNotFound = errors.New("meal not found")

// Repository handles meal data persistence. Every lookup carries the owner in
// the same predicate as the id, so the ownership check and the fetch are a
// single query rather than a check-then-act pair.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new meal owned by ownerID.
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Meal, error) {
	dbMeal := &database.Meal{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        fields.Name,
		Description: fields.Description,
		Date:        fields.Date,
		PartOfDiet:  fields.PartOfDiet,
	}

	_, err := r.db.NewInsert().
		Model(dbMeal).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	return mapDBMealToModel(dbMeal), nil
}

// ListByOwner returns all meals owned by ownerID. An owner with no meals gets
// an empty slice, not an error.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Meal, error) {
	var dbMeals []database.Meal
	err := r.db.NewSelect().
		Model(&dbMeals).
		Where("user_id = ?", ownerID).
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	meals := make([]Meal, 0, len(dbMeals))
	for i := range dbMeals {
		meals = append(meals, *mapDBMealToModel(&dbMeals[i]))
	}

	return meals, nil
}

// GetByID returns the meal only if it exists and is owned by ownerID.
func (r *Repository) GetByID(ctx context.Context, ownerID, mealID uuid.UUID) (*Meal, error) {
	dbMeal := new(database.Meal)
	err := r.db.NewSelect().
		Model(dbMeal).
		Where("id = ?", mealID).
		Where("user_id = ?", ownerID).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return mapDBMealToModel(dbMeal), nil
}

// Update overwrites the mutable fields of the meal if it is owned by ownerID.
func (r *Repository) Update(ctx context.Context, ownerID, mealID uuid.UUID, fields Fields) (*Meal, error) {
	dbMeal := new(database.Meal)
	result, err := r.db.NewUpdate().
		Model(dbMeal).
		Set("name = ?", fields.Name).
		Set("description = ?", fields.Description).
		Set("date = ?", fields.Date).
		Set("part_of_diet = ?", fields.PartOfDiet).
		Where("id = ?", mealID).
		Where("user_id = ?", ownerID).
		Returning("*").
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to update meal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return mapDBMealToModel(dbMeal), nil
}

// Delete removes the meal if it is owned by ownerID.
func (r *Repository) Delete(ctx context.Context, ownerID, mealID uuid.UUID) error {
	result, err := r.db.NewDelete().
		Model((*database.Meal)(nil)).
		Where("id = ?", mealID).
		Where("user_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// mapDBMealToModel converts database model to domain model
func mapDBMealToModel(dbm *database.Meal) *Meal {
	return &Meal{
		ID:          dbm.ID,
		UserID:      dbm.UserID,
		Name:        dbm.Name,
		Description: dbm.Description,
		Date:        dbm.Date,
		PartOfDiet:  dbm.PartOfDiet,
		CreatedAt:   dbm.CreatedAt,
	}
}
