package trip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shuv1824/packlist/internal/outfit"
	"github.com/shuv1824/packlist/internal/services/forecast"
	"github.com/shuv1824/packlist/internal/types"
)

// ErrInvalidTrip wraps validation failures on the trip request.
var ErrInvalidTrip = errors.New("invalid trip")

var validate = validator.New()

// Trip is what the traveller tells us: who, where, and for how many days.
type Trip struct {
	Name        string `validate:"required,max=100"`
	Destination string `validate:"required,max=200"`
	Duration    int    `validate:"min=1,max=16"`
}

// Store persists finished plans.
type Store interface {
	SavePlan(ctx context.Context, plan types.Plan) error
	GetPlan(ctx context.Context, id string) (types.Plan, error)
	ListPlans(ctx context.Context, limit int) ([]types.PlanSummary, error)
}

type TripService struct {
	forecasts  forecast.Forecaster
	classifier *outfit.Classifier
	store      Store
	now        func() time.Time
}

// NewTripService creates a new trip service. store may be nil when plans are never saved.
func NewTripService(forecasts forecast.Forecaster, classifier *outfit.Classifier, store Store) *TripService {
	if classifier == nil {
		classifier = outfit.Default()
	}
	return &TripService{
		forecasts:  forecasts,
		classifier: classifier,
		store:      store,
		now:        time.Now,
	}
}

// Validate trims and checks the trip.
func Validate(t Trip) (Trip, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.Destination = strings.TrimSpace(t.Destination)

	if err := validate.Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return t, fmt.Errorf("%w: %s", ErrInvalidTrip, describe(verrs[0]))
		}
		return t, fmt.Errorf("%w: %v", ErrInvalidTrip, err)
	}
	return t, nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min", "max":
		if fe.Field() == "Duration" {
			return "duration must be between 1 and 16 days"
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// Plan fetches the forecast for the trip and turns it into a recommendation.
func (s *TripService) Plan(ctx context.Context, t Trip) (types.Plan, error) {
	t, err := Validate(t)
	if err != nil {
		return types.Plan{}, err
	}

	days, err := s.forecasts.Forecast(ctx, t.Destination, t.Duration)
	if err != nil {
		return types.Plan{}, err
	}

	plan := types.Plan{
		ID:          uuid.NewString(),
		Name:        t.Name,
		Destination: t.Destination,
		Duration:    t.Duration,
		Forecast:    days,
		CreatedAt:   s.now().UTC(),
	}
	plan.Recommendation = s.classifier.Aggregate(plan.Records())

	slog.Info("trip planned",
		"id", plan.ID,
		"destination", plan.Destination,
		"days", len(days),
		"clothing", plan.Recommendation.Clothing.Len(),
		"accessories", plan.Recommendation.Accessories.Len())

	return plan, nil
}

// Tables returns the rule tables plans are classified against.
func (s *TripService) Tables() outfit.Tables {
	return s.classifier.Tables()
}

// Recommend aggregates caller-supplied records, rejecting malformed ones.
func (s *TripService) Recommend(records []outfit.ForecastRecord) (outfit.Recommendation, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return outfit.Recommendation{}, fmt.Errorf("day %d: %w", i+1, err)
		}
	}
	return s.classifier.Aggregate(records), nil
}

func (s *TripService) Save(ctx context.Context, plan types.Plan) error {
	if s.store == nil {
		return fmt.Errorf("plan storage is not configured")
	}
	return s.store.SavePlan(ctx, plan)
}

func (s *TripService) Get(ctx context.Context, id string) (types.Plan, error) {
	if s.store == nil {
		return types.Plan{}, fmt.Errorf("plan storage is not configured")
	}
	return s.store.GetPlan(ctx, id)
}

func (s *TripService) List(ctx context.Context, limit int) ([]types.PlanSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("plan storage is not configured")
	}
	return s.store.ListPlans(ctx, limit)
}
