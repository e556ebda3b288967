package meal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory Store that preserves insertion order, so streak
// tie-breaking over equal dates stays deterministic in tests.
type fakeStore struct {
	meals []Meal
	err   error
}

func (f *fakeStore) Create(ctx context.Context, ownerID uuid.UUID, fields Fields) (*Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	m := Meal{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        fields.Name,
		Description: fields.Description,
		Date:        fields.Date,
		PartOfDiet:  fields.PartOfDiet,
		CreatedAt:   time.Now(),
	}
	f.meals = append(f.meals, m)
	return &m, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	owned := make([]Meal, 0)
	for _, m := range f.meals {
		if m.UserID == ownerID {
			owned = append(owned, m)
		}
	}
	return owned, nil
}

func (f *fakeStore) GetByID(ctx context.Context, ownerID, mealID uuid.UUID) (*Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.meals {
		if m.ID == mealID && m.UserID == ownerID {
			found := m
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Update(ctx context.Context, ownerID, mealID uuid.UUID, fields Fields) (*Meal, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i, m := range f.meals {
		if m.ID == mealID && m.UserID == ownerID {
			f.meals[i].Name = fields.Name
			f.meals[i].Description = fields.Description
			f.meals[i].Date = fields.Date
			f.meals[i].PartOfDiet = fields.PartOfDiet
			updated := f.meals[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeStore) Delete(ctx context.Context, ownerID, mealID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	for i, m := range f.meals {
		if m.ID == mealID && m.UserID == ownerID {
			f.meals = append(f.meals[:i], f.meals[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func addMeal(t *testing.T, svc *Service, owner uuid.UUID, day string, partOfDiet bool) *Meal {
	t.Helper()
	m, err := svc.Create(context.Background(), owner, Fields{
		Name:        "meal",
		Description: "desc",
		Date:        date(day),
		PartOfDiet:  partOfDiet,
	})
	require.NoError(t, err)
	return m
}

func TestMetrics_Empty(t *testing.T) {
	svc := NewService(&fakeStore{})

	metrics, err := svc.Metrics(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, metrics.TotalAmount)
	assert.Equal(t, 0, metrics.PartOfDietAmount)
	assert.Equal(t, 0, metrics.NotPartOfDietAmount)
	assert.Equal(t, 0, metrics.BestStreak)
}

func TestMetrics_MixedWeek(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()

	addMeal(t, svc, owner, "2024-11-02T08:00:00Z", true)
	addMeal(t, svc, owner, "2024-11-02T12:00:00Z", false)
	addMeal(t, svc, owner, "2024-11-02T19:00:00Z", true)
	addMeal(t, svc, owner, "2024-11-03T08:00:00Z", true)
	addMeal(t, svc, owner, "2024-11-03T12:00:00Z", false)

	metrics, err := svc.Metrics(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 5, metrics.TotalAmount)
	assert.Equal(t, 3, metrics.PartOfDietAmount)
	assert.Equal(t, 2, metrics.NotPartOfDietAmount)
	assert.Equal(t, 2, metrics.BestStreak)
}

func TestMetrics_AllOnDiet(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()

	for i := 0; i < 4; i++ {
		addMeal(t, svc, owner, "2024-11-02T08:00:00Z", true)
	}

	metrics, err := svc.Metrics(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 4, metrics.TotalAmount)
	assert.Equal(t, metrics.TotalAmount, metrics.BestStreak)
}

func TestMetrics_NoneOnDiet(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()

	addMeal(t, svc, owner, "2024-11-02T08:00:00Z", false)
	addMeal(t, svc, owner, "2024-11-03T08:00:00Z", false)

	metrics, err := svc.Metrics(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 2, metrics.TotalAmount)
	assert.Equal(t, 0, metrics.PartOfDietAmount)
	assert.Equal(t, 0, metrics.BestStreak)
}

func TestMetrics_CountsAlwaysSum(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()

	flags := []bool{true, false, true, true, false, false, true}
	for i, flag := range flags {
		addMeal(t, svc, owner, "2024-11-02T08:00:00Z", flag)

		metrics, err := svc.Metrics(context.Background(), owner)
		require.NoError(t, err)
		assert.Equal(t, i+1, metrics.PartOfDietAmount+metrics.NotPartOfDietAmount)
		assert.Equal(t, metrics.TotalAmount, metrics.PartOfDietAmount+metrics.NotPartOfDietAmount)
	}
}

func TestMetrics_IgnoresOtherOwners(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()
	other := uuid.New()

	addMeal(t, svc, owner, "2024-11-02T08:00:00Z", true)
	addMeal(t, svc, other, "2024-11-02T09:00:00Z", true)
	addMeal(t, svc, other, "2024-11-02T10:00:00Z", true)

	metrics, err := svc.Metrics(context.Background(), owner)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.TotalAmount)
	assert.Equal(t, 1, metrics.BestStreak)
}

func TestMetrics_StoreError(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("connection refused")})

	_, err := svc.Metrics(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestBestStreak_SortsByDate(t *testing.T) {
	// Supplied out of order; a scan over the raw slice would find a run of 2,
	// sorted ascending the on-diet run is 3.
	meals := []Meal{
		{Date: date("2024-11-04T08:00:00Z"), PartOfDiet: true},
		{Date: date("2024-11-02T08:00:00Z"), PartOfDiet: true},
		{Date: date("2024-11-01T08:00:00Z"), PartOfDiet: false},
		{Date: date("2024-11-03T08:00:00Z"), PartOfDiet: true},
	}

	assert.Equal(t, 3, bestStreak(meals))
}

func TestBestStreak_StableOnEqualDates(t *testing.T) {
	// Equal timestamps keep their input order, so the run is interrupted the
	// same way on every call.
	meals := []Meal{
		{Date: date("2024-11-02T08:00:00Z"), PartOfDiet: true},
		{Date: date("2024-11-02T08:00:00Z"), PartOfDiet: false},
		{Date: date("2024-11-02T08:00:00Z"), PartOfDiet: true},
	}

	for i := 0; i < 10; i++ {
		assert.Equal(t, 1, bestStreak(meals))
	}
}

func TestBestStreak_DoesNotMutateInput(t *testing.T) {
	meals := []Meal{
		{Date: date("2024-11-03T08:00:00Z"), PartOfDiet: true},
		{Date: date("2024-11-01T08:00:00Z"), PartOfDiet: true},
	}

	bestStreak(meals)

	assert.Equal(t, date("2024-11-03T08:00:00Z"), meals[0].Date)
}

func TestService_OwnershipMismatchLooksLikeMissing(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()
	stranger := uuid.New()

	m := addMeal(t, svc, owner, "2024-11-02T08:00:00Z", true)

	_, errForeign := svc.Get(context.Background(), stranger, m.ID)
	_, errMissing := svc.Get(context.Background(), owner, uuid.New())

	assert.ErrorIs(t, errForeign, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errMissing, errForeign)

	_, err := svc.Update(context.Background(), stranger, m.ID, Fields{Name: "x", Description: "y", Date: m.Date, PartOfDiet: false})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), stranger, m.ID), ErrNotFound)

	// The owner still sees the meal untouched.
	got, err := svc.Get(context.Background(), owner, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Name, got.Name)
}

func TestService_DeleteThenGetReturnsNotFound(t *testing.T) {
	svc := NewService(&fakeStore{})
	owner := uuid.New()

	m := addMeal(t, svc, owner, "2024-11-02T08:00:00Z", true)

	require.NoError(t, svc.Delete(context.Background(), owner, m.ID))

	_, err := svc.Get(context.Background(), owner, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
