package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/domain"
	"github.com/Edgar-Klewert/restaurant-delivery/analytics-svc/internal/service"
	"github.com/Edgar-Klewert/restaurant-delivery/logger"
	"github.com/Edgar-Klewert/restaurant-delivery/respond"

	"github.com/gorilla/mux"
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Location  *time.Location
}

func NewHandler(svc service.AnalyticsInterface, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{Analytics: svc, Location: loc}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", respond.Health("analytics-svc")).Methods("GET")

	r.HandleFunc("/api/dashboard", h.getDashboard).Methods("GET")
	r.HandleFunc("/api/analytics/top-today", h.getTopToday).Methods("GET")
	r.HandleFunc("/api/analytics/top-alltime", h.getTopAllTime).Methods("GET")
	r.HandleFunc("/api/analytics/rating-distribution", h.getGlobalRatingDistribution).Methods("GET")
	r.HandleFunc("/api/dishes/{dishId}/rating-distribution", h.getRatingDistribution).Methods("GET")
	r.HandleFunc("/api/dishes/{dishId}/stats", h.getDishStats).Methods("GET")
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrStorageUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}
	respond.Error(w, status, err.Error())
}

func dishID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["dishId"])
	if err != nil || id <= 0 {
		respond.Error(w, http.StatusBadRequest, "invalid dish id")
		return 0, false
	}
	return id, true
}

func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	window, err := domain.ParseWindow(query.Get("start"), query.Get("end"), h.Location)
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := h.Analytics.Dashboard(r.Context(), window)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	data, err := h.Analytics.TopToday(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, data)
}

func (h *Handler) getTopAllTime(w http.ResponseWriter, r *http.Request) {
	data, err := h.Analytics.TopAllTime(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, data)
}

func (h *Handler) getDishStats(w http.ResponseWriter, r *http.Request) {
	id, ok := dishID(w, r)
	if !ok {
		return
	}
	stats, err := h.Analytics.DishStats(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

func (h *Handler) getRatingDistribution(w http.ResponseWriter, r *http.Request) {
	id, ok := dishID(w, r)
	if !ok {
		return
	}
	data, err := h.Analytics.RatingDistribution(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, data)
}

func (h *Handler) getGlobalRatingDistribution(w http.ResponseWriter, r *http.Request) {
	data, err := h.Analytics.GlobalDistribution(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, data)
}
