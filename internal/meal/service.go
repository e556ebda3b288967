package meal

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Store defines the persistence interface the service needs. Every operation
// is scoped to an owner; there is no global meal access.
type Store interface {
	Create(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Meal, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Meal, error)
	GetByID(ctx context.Context, ownerID, mealID uuid.UUID) (*Meal, error)
	Update(ctx context.Context, ownerID, mealID uuid.UUID, fields Fields) (*Meal, error)
	Delete(ctx context.Context, ownerID, mealID uuid.UUID) error
}

// Service handles meal business logic
type Service struct {
	repo Store
}

func NewService(repo Store) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Meal, error) {
	return s.repo.Create(ctx, ownerID, fields)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Meal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, ownerID, mealID uuid.UUID) (*Meal, error) {
	return s.repo.GetByID(ctx, ownerID, mealID)
}

func (s *Service) Update(ctx context.Context, ownerID, mealID uuid.UUID, fields Fields) (*Meal, error) {
	return s.repo.Update(ctx, ownerID, mealID, fields)
}

func (s *Service) Delete(ctx context.Context, ownerID, mealID uuid.UUID) error {
	return s.repo.Delete(ctx, ownerID, mealID)
}

// Metrics computes summary statistics over the owner's full meal history.
func (s *Service) Metrics(ctx context.Context, ownerID uuid.UUID) (*Metrics, error) {
	meals, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute metrics: %w", err)
	}

	metrics := &Metrics{TotalAmount: len(meals)}

	for i := range meals {
		if meals[i].PartOfDiet {
			metrics.PartOfDietAmount++
		} else {
			metrics.NotPartOfDietAmount++
		}
	}

	metrics.BestStreak = bestStreak(meals)

	return metrics, nil
}

// bestStreak returns the length of the longest run of consecutive on-diet
// meals when ordered by date. The sort is stable and keyed on the date alone,
// so equal timestamps keep their input order.
func bestStreak(meals []Meal) int {
	sorted := make([]Meal, len(meals))
	copy(sorted, meals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var best, current int
	for i := range sorted {
		if sorted[i].PartOfDiet {
			current++
		} else {
			current = 0
		}
		if current > best {
			best = current
		}
	}

	return best
}
