package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/response"
	"github.com/shuv1824/packlist/internal/services/forecast"
	"github.com/shuv1824/packlist/internal/services/trip"
	"github.com/shuv1824/packlist/internal/storage"
	"github.com/shuv1824/packlist/internal/types"
)

// statusClientClosedRequest is the nginx convention for a client that went away.
const statusClientClosedRequest = 499

type TripHandler struct {
	trips   *trip.TripService
	timeout time.Duration
}

func NewTripHandler(trips *trip.TripService, timeout time.Duration) *TripHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TripHandler{trips: trips, timeout: timeout}
}

// Health returns a simple health check response
func Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Routes registers the API on r.
func (h *TripHandler) Routes(r *mux.Router) {
	r.HandleFunc("/health", Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/trips", h.CreatePlan).Methods(http.MethodPost)
	api.HandleFunc("/trips", h.ListPlans).Methods(http.MethodGet)
	api.HandleFunc("/trips/{id}", h.GetPlan).Methods(http.MethodGet)
	api.HandleFunc("/recommendations", h.Recommend).Methods(http.MethodPost)
}

// CreatePlan fetches a forecast for the trip and returns the packing recommendation.
func (h *TripHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body types.TripRequestBody
	if err := response.Decode(r, &body); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()

	plan, err := h.trips.Plan(ctx, trip.Trip{
		Name:        body.Name,
		Destination: body.Destination,
		Duration:    body.Duration,
	})
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	status := http.StatusOK
	if body.Save {
		if err := h.trips.Save(ctx, plan); err != nil {
			slog.Error("failed to save plan", "id", plan.ID, "error", err)
			response.ErrorJSON(w, http.StatusInternalServerError, "failed to save plan")
			return
		}
		status = http.StatusCreated
	}

	// Add response time header for debugging
	w.Header().Set("X-Response-Time", time.Since(start).String())

	response.JSON(w, status, plan)
}

// Recommend aggregates a caller-supplied forecast without any lookups.
func (h *TripHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var body types.RecommendationRequestBody
	if err := response.Decode(r, &body); err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.trips.Recommend(body.Forecast)
	if err != nil {
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	response.JSON(w, http.StatusOK, types.RecommendationResponse{
		Days:           len(body.Forecast),
		Recommendation: rec,
	})
}

func (h *TripHandler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	plan, err := h.trips.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			response.ErrorJSON(w, http.StatusNotFound, "plan not found")
			return
		}
		slog.Error("failed to load plan", "id", id, "error", err)
		response.ErrorJSON(w, http.StatusInternalServerError, "failed to load plan")
		return
	}

	response.JSON(w, http.StatusOK, plan)
}

func (h *TripHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.ErrorJSON(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	plans, err := h.trips.List(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list plans", "error", err)
		response.ErrorJSON(w, http.StatusInternalServerError, "failed to list plans")
		return
	}

	response.JSON(w, http.StatusOK, types.PlansResponse{Count: len(plans), Plans: plans})
}

func (h *TripHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, trip.ErrInvalidTrip):
		response.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, forecast.ErrDestinationNotFound):
		response.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, outfit.ErrInvalidRecord):
		slog.Error("forecast provider returned a malformed record", "error", err)
		response.ErrorJSON(w, http.StatusBadGateway, "forecast provider returned invalid data")
	case errors.Is(err, forecast.ErrCircuitOpen):
		response.ErrorJSON(w, http.StatusServiceUnavailable, "forecast provider unavailable - try again later")
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		slog.Debug("trip request canceled by client", "error", err)
		response.ErrorJSON(w, statusClientClosedRequest, "request canceled")
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		response.ErrorJSON(w, http.StatusGatewayTimeout, "request timeout - try again")
	default:
		slog.Error("failed to plan trip", "error", err)
		response.ErrorJSON(w, http.StatusBadGateway, "failed to fetch weather data")
	}
}
