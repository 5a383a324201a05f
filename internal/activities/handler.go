package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainpulse/internal/telemetry/metrics"
	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=activities_mocks_test.go -package=activities_test

type activitiesRepo interface {
	Add(ctx context.Context, activity Activity) (*Activity, error)
	Get(ctx context.Context, id int) (*Activity, error)
	List(ctx context.Context, params ListParams) (_ []Activity, total int, err error)
	ListAll(ctx context.Context, params ActivityParams) (_ []Activity, err error)
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id int) error
	ActivitiesCount(ctx context.Context, params ActivityParams) (int, error)
}

type DeleteActivityResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateActivityResponse struct {
	UpdatedID int `json:"updatedId"`
}

type AddActivityResponse struct {
	Activity
	Load float64 `json:"load"`
}

type ListResponse struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
}

// LoadFunc computes the training load of one activity. Injected so the
// handler can report the load of a freshly added activity without
// depending on the load package directly.
type LoadFunc func(a Activity) float64

type Handler struct {
	repo           activitiesRepo
	loadOf         LoadFunc
	metricsManager *metrics.Manager
}

func NewHandler(repo activitiesRepo, loadOf LoadFunc, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		loadOf:         loadOf,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var activity Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		log.Tracef("new activity, unmarshal json params: %s", err)
		http.Error(w, "add activity failed", http.StatusBadRequest)
		return
	}

	if activity.Type == "" {
		http.Error(w, "error, activity type empty", http.StatusBadRequest)
		return
	}
	if activity.DurationSeconds <= 0 {
		http.Error(w, "error, activity duration must be positive", http.StatusBadRequest)
		return
	}

	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	addedActivity, err := handler.repo.Add(ctx, activity)
	if err != nil {
		log.Errorf("failed to add new activity [%s]: %s", activity.Type, err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterActivitiesAdded.Inc()

	addActivityResponse := AddActivityResponse{
		Activity: *addedActivity,
		Load:     handler.loadOf(*addedActivity),
	}

	addedJson, err := json.Marshal(addActivityResponse)
	if err != nil {
		log.Errorf("failed to marshal new activity: %s", err)
		http.Error(w, "error, failed to add new activity", http.StatusInternalServerError)
		return
	}

	log.Debugf("new activity added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.get")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	a, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get activity %d: %s", id, err)
		http.Error(w, "activity not found", http.StatusBadRequest)
		return
	}

	aJson, err := json.Marshal(a)
	if err != nil {
		log.Errorf("failed to marshal activity: %s", err)
		http.Error(w, "failed to marshal activity", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, aJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.list")
	defer span.End()

	vars := mux.Vars(r)
	pageStr := vars["page"]
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		log.Tracef("handle get activities page, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	sizeStr := vars["size"]
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Tracef("handle get activities page, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	listParams := ListParams{
		ActivityParams: ActivityParams{
			Type: r.URL.Query().Get("type"),
		},
		Page: page,
		Size: size,
	}

	found, total, err := handler.repo.List(ctx, listParams)
	if err != nil {
		log.Errorf("list activities error: %s", err)
		http.Error(w, "failed to get activities", http.StatusInternalServerError)
		return
	}

	listResponse := ListResponse{
		Activities: found,
		Total:      total,
	}

	listResponseJson, err := json.Marshal(listResponse)
	if err != nil {
		log.Errorf("marshal activities error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var activity Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		log.Errorf("update activity, unmarshal json params: %s", err)
		http.Error(w, "update activity failed", http.StatusBadRequest)
		return
	}

	if activity.Type == "" {
		http.Error(w, "error, activity type empty", http.StatusBadRequest)
		return
	}
	if activity.DurationSeconds <= 0 {
		http.Error(w, "error, activity duration must be positive", http.StatusBadRequest)
		return
	}

	currentActivity, err := handler.repo.Get(ctx, activity.ID)
	if err != nil && !errors.Is(err, ErrActivityNotFound) {
		log.Errorf("failed to get activity %d: %s", activity.ID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrActivityNotFound) {
		log.Debugf("activity %d not found", activity.ID)
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}
	log.Debugf("update activity %+v -> %+v", currentActivity, activity)

	if err := handler.repo.Update(ctx, &activity); err != nil {
		log.Errorf("failed to update activity [%d], [%s]: %s", activity.ID, activity.Type, err)
		http.Error(w, "error, failed to update activity", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateActivityResponse{
		UpdatedID: activity.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.activities.delete")
	defer span.End()

	vars := mux.Vars(r)
	idStr := vars["id"]
	if idStr == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	activity, err := handler.repo.Get(ctx, id)
	if err != nil && !errors.Is(err, ErrActivityNotFound) {
		log.Errorf("failed to get activity %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	} else if errors.Is(err, ErrActivityNotFound) {
		log.Debugf("activity %d not found", id)
		http.Error(w, "activity not found", http.StatusNotFound)
		return
	}

	log.Debugf("deleting activity %+v", activity)

	if err := handler.repo.Delete(ctx, id); err != nil {
		log.Errorf("failed to delete activity %d: %s", id, err)
		http.Error(w, "activity not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteActivityResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
