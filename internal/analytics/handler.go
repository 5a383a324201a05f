package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/goals"
	"github.com/2beens/trainpulse/internal/readiness"
	"github.com/2beens/trainpulse/internal/telemetry/metrics"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/internal/trainload"
	"github.com/2beens/trainpulse/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=analytics_mocks_test.go -package=analytics_test

type activityLister interface {
	ListAll(ctx context.Context, params activities.ActivityParams) ([]activities.Activity, error)
}

type goalGetter interface {
	GetActive(ctx context.Context, now time.Time) (*goals.Goal, error)
}

// load queries accept only window lengths the load model is tuned for
var allowedWindowDays = map[int]bool{
	14: true,
	28: true,
	42: true,
}

// the readiness analysis looks back 12 weeks, the longest of its
// trailing windows
const readinessHistoryDays = 7 * 12

type LoadResponse struct {
	WindowDays int               `json:"windowDays"`
	DailyLoads []float64         `json:"dailyLoads"`
	Metrics    trainload.Metrics `json:"metrics"`
}

type RecommendationResponse struct {
	Metrics        trainload.Metrics        `json:"metrics"`
	Recommendation trainload.Recommendation `json:"recommendation"`
}

type ReadinessResponse struct {
	Goal    goals.Goal        `json:"goal"`
	Metrics trainload.Metrics `json:"metrics"`
	Report  readiness.Report  `json:"report"`
}

type Handler struct {
	activities     activityLister
	goals          goalGetter
	reportCache    *ReportCache
	metricsManager *metrics.Manager
	windowDays     int

	// sampled per request; swapped in tests for determinism
	NowFunc func() time.Time
}

func NewHandler(
	activityLister activityLister,
	goalGetter goalGetter,
	reportCache *ReportCache,
	metricsManager *metrics.Manager,
	windowDays int,
) *Handler {
	if windowDays <= 0 {
		windowDays = trainload.DefaultWindowDays
	}
	return &Handler{
		activities:     activityLister,
		goals:          goalGetter,
		reportCache:    reportCache,
		metricsManager: metricsManager,
		windowDays:     windowDays,
		NowFunc:        time.Now,
	}
}

// HandleLoad returns the daily load series and the load metrics over a
// trailing window (42 days by default, 14 and 28 also supported).
func (handler *Handler) HandleLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.load")
	defer span.End()

	windowDays := handler.windowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil {
			http.Error(w, "error, days NaN", http.StatusBadRequest)
			return
		}
		if !allowedWindowDays[days] {
			http.Error(w, "error, days must be one of: 14, 28, 42", http.StatusBadRequest)
			return
		}
		windowDays = days
	}
	span.SetAttributes(attribute.Int("window_days", windowDays))

	now := handler.NowFunc()
	history, err := handler.windowHistory(ctx, now, windowDays)
	if err != nil {
		log.Errorf("handle load, list activities: %s", err)
		http.Error(w, "failed to get activities", http.StatusInternalServerError)
		return
	}

	dailyLoads := trainload.DailySeries(history, windowDays, now)
	loadResponse := LoadResponse{
		WindowDays: windowDays,
		DailyLoads: dailyLoads,
		Metrics:    trainload.Calculate(history, windowDays, now),
	}

	loadResponseJson, err := json.Marshal(loadResponse)
	if err != nil {
		log.Errorf("marshal load response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, loadResponseJson, http.StatusOK)
}

// HandleRecommendation maps the current energy level (required query
// param, 0-100) and the load metrics to a workout recommendation.
func (handler *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.recommendation")
	defer span.End()

	energyStr := r.URL.Query().Get("energy")
	if energyStr == "" {
		http.Error(w, "error, energy param required", http.StatusBadRequest)
		return
	}
	energyLevel, err := strconv.ParseFloat(energyStr, 64)
	if err != nil {
		http.Error(w, "error, energy NaN", http.StatusBadRequest)
		return
	}
	if energyLevel < 0 || energyLevel > 100 {
		http.Error(w, "error, energy must be within [0, 100]", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.Float64("energy_level", energyLevel))

	now := handler.NowFunc()
	history, err := handler.windowHistory(ctx, now, handler.windowDays)
	if err != nil {
		log.Errorf("handle recommendation, list activities: %s", err)
		http.Error(w, "failed to get activities", http.StatusInternalServerError)
		return
	}

	loadMetrics := trainload.Calculate(history, handler.windowDays, now)
	recommendationResponse := RecommendationResponse{
		Metrics:        loadMetrics,
		Recommendation: trainload.Recommend(energyLevel, loadMetrics),
	}

	handler.metricsManager.CounterRecommendations.Inc()

	recommendationJson, err := json.Marshal(recommendationResponse)
	if err != nil {
		log.Errorf("marshal recommendation response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recommendationJson, http.StatusOK)
}

// HandleReadiness analyzes the activity history against the active race
// goal. Reports are cached per goal and history version for a short TTL.
func (handler *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analytics.readiness")
	defer span.End()

	now := handler.NowFunc()

	goal, err := handler.goals.GetActive(ctx, now)
	if err != nil {
		if errors.Is(err, goals.ErrGoalNotFound) {
			http.Error(w, "no active goal", http.StatusNotFound)
			return
		}
		log.Errorf("handle readiness, get active goal: %s", err)
		http.Error(w, "failed to get active goal", http.StatusInternalServerError)
		return
	}
	span.SetAttributes(attribute.Int("goal.id", goal.ID))

	history, err := handler.windowHistory(ctx, now, readinessHistoryDays)
	if err != nil {
		log.Errorf("handle readiness, list activities: %s", err)
		http.Error(w, "failed to get activities", http.StatusInternalServerError)
		return
	}

	loadMetrics := trainload.Calculate(history, handler.windowDays, now)

	cacheKey := readinessCacheKey(*goal, history, handler.windowDays, now)
	report, cached := handler.reportCache.Get(cacheKey)
	if cached {
		handler.metricsManager.CounterReadinessCacheHits.Inc()
	} else {
		computeStart := time.Now()
		analyzed := readiness.Analyze(history, *goal, loadMetrics, now)
		handler.metricsManager.HistReadinessComputeDuration.Observe(time.Since(computeStart).Seconds())
		handler.reportCache.Set(cacheKey, analyzed)
		report = &analyzed
	}

	handler.metricsManager.CounterReadinessReports.Inc()

	readinessJson, err := json.Marshal(ReadinessResponse{
		Goal:    *goal,
		Metrics: loadMetrics,
		Report:  *report,
	})
	if err != nil {
		log.Errorf("marshal readiness response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, readinessJson, http.StatusOK)
}

func (handler *Handler) windowHistory(ctx context.Context, now time.Time, windowDays int) ([]activities.Activity, error) {
	from := now.AddDate(0, 0, -windowDays)
	return handler.activities.ListAll(ctx, activities.ActivityParams{
		From: &from,
		To:   &now,
	})
}

// readinessCacheKey changes whenever the goal, the history or the day
// changes, so a cached report can never outlive its inputs.
func readinessCacheKey(goal goals.Goal, history []activities.Activity, windowDays int, now time.Time) string {
	var newestUnix int64
	if len(history) > 0 {
		newestUnix = history[0].CreatedAt.Unix()
		for _, a := range history[1:] {
			if a.CreatedAt.Unix() > newestUnix {
				newestUnix = a.CreatedAt.Unix()
			}
		}
	}
	return fmt.Sprintf(
		"readiness::%d::%d::%d::%d::%s",
		goal.ID, windowDays, len(history), newestUnix,
		now.Truncate(24*time.Hour).Format("2006-01-02"),
	)
}
