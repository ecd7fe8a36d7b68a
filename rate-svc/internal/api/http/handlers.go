package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/rate-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/respond"

	"github.com/gorilla/mux"
)

type Handler struct {
	Ratings service.RatingServiceInterface
}

func NewHandler(ratings service.RatingServiceInterface) *Handler {
	return &Handler{Ratings: ratings}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", respond.Health("rate-svc")).Methods("GET")

	r.HandleFunc("/api/ratings", h.createRating).Methods("POST")
	r.HandleFunc("/api/ratings/bulk", h.createBulkRatings).Methods("POST")
	r.HandleFunc("/api/dishes/{dishId}/ratings", h.getDishRatings).Methods("GET")
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateRating):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}
	respond.Error(w, status, err.Error())
}

func (h *Handler) createRating(w http.ResponseWriter, r *http.Request) {
	var input domain.SubmitRatingInput
	if err := respond.Decode(r, &input); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	result, err := h.Ratings.Submit(r.Context(), input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusCreated, result)
}

func (h *Handler) getDishRatings(w http.ResponseWriter, r *http.Request) {
	dishID, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil || dishID <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid dish id")
		return
	}

	ratings, err := h.Ratings.ListDishRatings(r.Context(), dishID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, ratings)
}

type bulkResult struct {
	DishID  int    `json:"dish_id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// createBulkRatings submits each item independently and reports per-dish
// outcomes. It answers 400 only when nothing was created.
func (h *Handler) createBulkRatings(w http.ResponseWriter, r *http.Request) {
	var payload domain.BulkRatingInput
	if err := respond.Decode(r, &payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}
	if payload.UserID == "" || payload.OrderID == "" || len(payload.Ratings) == 0 {
		respond.Error(w, http.StatusBadRequest, "missing user_id, order_id or ratings")
		return
	}

	results := make([]bulkResult, 0, len(payload.Ratings))
	created := 0
	for _, item := range payload.Ratings {
		_, err := h.Ratings.Submit(r.Context(), domain.SubmitRatingInput{
			UserID:  payload.UserID,
			DishID:  item.DishID,
			OrderID: payload.OrderID,
			Score:   item.Score,
			Comment: item.Comment,
		})
		if err != nil {
			results = append(results, bulkResult{DishID: item.DishID, Status: "error", Message: err.Error()})
			continue
		}
		created++
		results = append(results, bulkResult{DishID: item.DishID, Status: "ok"})
	}

	status := http.StatusCreated
	if created == 0 {
		status = http.StatusBadRequest
	}
	respond.JSON(w, status, map[string]interface{}{
		"processed": results,
		"created":   created,
		"failed":    len(results) - created,
	})
}
