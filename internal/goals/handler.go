package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/trainpulse/internal/telemetry/tracing"
	"github.com/2beens/trainpulse/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=goals_mocks_test.go -package=goals_test

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) (*Goal, error)
	Get(ctx context.Context, id int) (*Goal, error)
	GetActive(ctx context.Context, now time.Time) (*Goal, error)
	ListAll(ctx context.Context) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id int) error
}

type DeleteGoalResponse struct {
	DeletedID int `json:"deletedId"`
}

type UpdateGoalResponse struct {
	UpdatedID int `json:"updatedId"`
}

type ListResponse struct {
	Goals []Goal `json:"goals"`
}

type Handler struct {
	repo goalsRepo
}

func NewHandler(repo goalsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Tracef("new goal, unmarshal json params: %s", err)
		http.Error(w, "add goal failed", http.StatusBadRequest)
		return
	}

	if goal.Type == "" {
		http.Error(w, "error, goal type empty", http.StatusBadRequest)
		return
	}
	if goal.TargetDate.IsZero() {
		http.Error(w, "error, goal target date empty", http.StatusBadRequest)
		return
	}

	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}

	addedGoal, err := handler.repo.Add(ctx, goal)
	if err != nil {
		log.Errorf("failed to add new goal [%s]: %s", goal.Type, err)
		http.Error(w, "error, failed to add new goal", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(addedGoal)
	if err != nil {
		log.Errorf("failed to marshal new goal: %s", err)
		http.Error(w, "error, failed to add new goal", http.StatusInternalServerError)
		return
	}

	log.Debugf("new goal added: %s", addedJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.get")
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

	g, err := handler.repo.Get(ctx, id)
	if err != nil {
		log.Errorf("failed to get goal %d: %s", id, err)
		http.Error(w, "goal not found", http.StatusBadRequest)
		return
	}

	gJson, err := json.Marshal(g)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "failed to marshal goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, gJson, http.StatusOK)
}

func (handler *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.getactive")
	defer span.End()

	g, err := handler.repo.GetActive(ctx, time.Now())
	if err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "no active goal", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get active goal: %s", err)
		http.Error(w, "failed to get active goal", http.StatusInternalServerError)
		return
	}

	gJson, err := json.Marshal(g)
	if err != nil {
		log.Errorf("failed to marshal goal: %s", err)
		http.Error(w, "failed to marshal goal", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, gJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	found, err := handler.repo.ListAll(ctx)
	if err != nil {
		log.Errorf("list goals error: %s", err)
		http.Error(w, "failed to get goals", http.StatusInternalServerError)
		return
	}

	listResponseJson, err := json.Marshal(ListResponse{Goals: found})
	if err != nil {
		log.Errorf("marshal goals error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listResponseJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var goal Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		log.Errorf("update goal, unmarshal json params: %s", err)
		http.Error(w, "update goal failed", http.StatusBadRequest)
		return
	}

	if goal.Type == "" {
		http.Error(w, "error, goal type empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Update(ctx, &goal); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update goal [%d]: %s", goal.ID, err)
		http.Error(w, "error, failed to update goal", http.StatusInternalServerError)
		return
	}

	updateRespJson, err := json.Marshal(UpdateGoalResponse{
		UpdatedID: goal.ID,
	})
	if err != nil {
		log.Errorf("failed to marshal update response: %s", err)
		http.Error(w, "failed to marshal update response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(updateRespJson))
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
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

	if err := handler.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, "goal not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete goal %d: %s", id, err)
		http.Error(w, "goal not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteGoalResponse{
		DeletedID: id,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
