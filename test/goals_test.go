package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/trainpulse/internal/goals"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllGoals(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM goal")
	require.NoError(s.T(), err)
}

func (s *IntegrationTestSuite) newGoalRequest(ctx context.Context, goal goals.Goal, token string) goals.Goal {
	goalJson, err := json.Marshal(goal)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/goals", serverEndpoint),
		bytes.NewReader(goalJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedGoal goals.Goal
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedGoal))

	return addedGoal
}

func (s *IntegrationTestSuite) TestGoals() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllGoals(ctx)
	token := s.doLogin(ctx)

	// no goals yet, active goal lookup comes back empty-handed
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/goals/active", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	now := time.Now()
	nearRace := s.newGoalRequest(ctx, goals.Goal{
		Type:           "race",
		Title:          "City Half Marathon",
		TargetDate:     now.AddDate(0, 0, 30),
		TargetDistance: "half marathon",
		TargetTime:     "1:45:00",
	}, token)
	require.NotZero(t, nearRace.ID)

	farRace := s.newGoalRequest(ctx, goals.Goal{
		Type:           "race",
		Title:          "Autumn Marathon",
		TargetDate:     now.AddDate(0, 0, 120),
		TargetDistance: "marathon",
	}, token)
	require.NotZero(t, farRace.ID)

	// the active goal is the one with the nearest future target date
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/goals/active", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var activeGoal goals.Goal
	require.NoError(t, json.Unmarshal(respBytes, &activeGoal))
	assert.Equal(t, nearRace.ID, activeGoal.ID)
	assert.Equal(t, "City Half Marathon", activeGoal.Title)

	// list all
	req, err = http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/goals", serverEndpoint), nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var listResponse goals.ListResponse
	require.NoError(t, json.Unmarshal(respBytes, &listResponse))
	assert.Len(t, listResponse.Goals, 2)

	// update the nearer one
	nearRace.TargetTime = "1:40:00"
	updateJson, err := json.Marshal(nearRace)
	require.NoError(t, err)
	req, err = http.NewRequestWithContext(
		ctx,
		"PUT", fmt.Sprintf("%s/goals", serverEndpoint),
		bytes.NewReader(updateJson),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var updateResp goals.UpdateGoalResponse
	require.NoError(t, json.Unmarshal(respBytes, &updateResp))
	assert.Equal(t, nearRace.ID, updateResp.UpdatedID)

	// delete the far one
	req, err = http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/goals/%d", serverEndpoint, farRace.ID),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var deleteResp goals.DeleteGoalResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(t, farRace.ID, deleteResp.DeletedID)
}
