package meal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/redmonkez12/daily-diet-api/internal/httputil"
	"github.com/redmonkez12/daily-diet-api/internal/logging"
	"github.com/redmonkez12/daily-diet-api/internal/session"
)

// Handler contains HTTP handlers for meal endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// MealRequest represents the create/update request body. PartOfDiet is a
// pointer so a missing flag is distinguishable from an explicit false.
type MealRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
	PartOfDiet  *bool  `json:"part_of_diet"`
}

// MealResponse wraps a single meal
type MealResponse struct {
	Meal Meal `json:"meal"`
}

// MealListResponse wraps a meal listing
type MealListResponse struct {
	Meals []Meal `json:"meals"`
}

// Create handles meal creation
// @Summary      Create a meal
// @Description  Record a meal owned by the authenticated user
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        request body MealRequest true "Meal details"
// @Success      201 {object} MealResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	fields, ok := decodeMealRequest(w, r)
	if !ok {
		return
	}

	newMeal, err := h.service.Create(r.Context(), identity.ID, fields)
	if err != nil {
		logger.Error("failed to create meal", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create meal", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("meal created", "meal_id", newMeal.ID, "user_id", identity.ID)

	httputil.RespondJSON(w, MealResponse{Meal: *newMeal}, http.StatusCreated)
}

// List handles meal listing
// @Summary      List meals
// @Description  List all meals owned by the authenticated user
// @Tags         meals
// @Produce      json
// @Success      200 {object} MealListResponse
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	meals, err := h.service.List(r.Context(), identity.ID)
	if err != nil {
		logger.Error("failed to list meals", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to list meals", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, MealListResponse{Meals: meals}, http.StatusOK)
}

// Get handles fetching a single meal
// @Summary      Get a meal
// @Description  Fetch one meal by id. Meals owned by other users look exactly like missing meals.
// @Tags         meals
// @Produce      json
// @Param        mealID path string true "Meal ID"
// @Success      200 {object} MealResponse
// @Failure      400 {object} httputil.ErrorResponse "Malformed meal id"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "Meal not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals/{mealID} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	mealID, ok := mealIDFromRequest(w, r)
	if !ok {
		return
	}

	foundMeal, err := h.service.Get(r.Context(), identity.ID, mealID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "meal not found", httputil.CodeMealNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to get meal", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to get meal", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, MealResponse{Meal: *foundMeal}, http.StatusOK)
}

// Update handles meal updates
// @Summary      Update a meal
// @Description  Overwrite the mutable fields of a meal owned by the authenticated user
// @Tags         meals
// @Accept       json
// @Produce      json
// @Param        mealID path string true "Meal ID"
// @Param        request body MealRequest true "Meal details"
// @Success      200 {object} MealResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid request or validation error"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "Meal not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals/{mealID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	mealID, ok := mealIDFromRequest(w, r)
	if !ok {
		return
	}

	fields, ok := decodeMealRequest(w, r)
	if !ok {
		return
	}

	updatedMeal, err := h.service.Update(r.Context(), identity.ID, mealID, fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "meal not found", httputil.CodeMealNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to update meal", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to update meal", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("meal updated", "meal_id", mealID, "user_id", identity.ID)

	httputil.RespondJSON(w, MealResponse{Meal: *updatedMeal}, http.StatusOK)
}

// Delete handles meal deletion
// @Summary      Delete a meal
// @Description  Delete a meal owned by the authenticated user
// @Tags         meals
// @Param        mealID path string true "Meal ID"
// @Success      204 "No Content"
// @Failure      400 {object} httputil.ErrorResponse "Malformed meal id"
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      404 {object} httputil.ErrorResponse "Meal not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals/{mealID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	mealID, ok := mealIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.ID, mealID); err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "meal not found", httputil.CodeMealNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to delete meal", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to delete meal", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("meal deleted", "meal_id", mealID, "user_id", identity.ID)

	w.WriteHeader(http.StatusNoContent)
}

// Metrics handles metrics aggregation
// @Summary      Meal metrics
// @Description  Summary statistics over the authenticated user's meal history
// @Tags         meals
// @Produce      json
// @Success      200 {object} Metrics
// @Failure      401 {object} httputil.ErrorResponse "Unauthorized"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /meals/metrics [get]
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing session", httputil.CodeMissingSession, http.StatusUnauthorized)
		return
	}

	metrics, err := h.service.Metrics(r.Context(), identity.ID)
	if err != nil {
		logger.Error("failed to compute metrics", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to compute metrics", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, metrics, http.StatusOK)
}

// mealIDFromRequest parses the mealID path parameter, responding 400 on a
// malformed id.
func mealIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	mealID, err := uuid.Parse(chi.URLParam(r, "mealID"))
	if err != nil {
		httputil.RespondErrorWithCode(w, "invalid meal id", httputil.CodeInvalidMealID, http.StatusBadRequest)
		return uuid.Nil, false
	}
	return mealID, true
}

// decodeMealRequest decodes and validates a meal body, responding 400 on any
// failure.
func decodeMealRequest(w http.ResponseWriter, r *http.Request) (Fields, bool) {
	var req MealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return Fields{}, false
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		httputil.RespondErrorWithCode(w, "name is required", httputil.CodeNameRequired, http.StatusBadRequest)
		return Fields{}, false
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		httputil.RespondErrorWithCode(w, "description is required", httputil.CodeDescriptionRequired, http.StatusBadRequest)
		return Fields{}, false
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		httputil.RespondErrorWithCode(w, "date must be a valid RFC 3339 timestamp", httputil.CodeInvalidDate, http.StatusBadRequest)
		return Fields{}, false
	}

	if req.PartOfDiet == nil {
		httputil.RespondErrorWithCode(w, "part_of_diet is required", httputil.CodeMissingDietFlag, http.StatusBadRequest)
		return Fields{}, false
	}

	return Fields{
		Name:        name,
		Description: description,
		Date:        date,
		PartOfDiet:  *req.PartOfDiet,
	}, true
}
