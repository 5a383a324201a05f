package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/2beens/trainpulse/internal/activities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) deleteAllActivities(ctx context.Context) {
	_, err := s.dbPool.Exec(ctx, "DELETE FROM activity")
	require.NoError(s.T(), err)
}

// newActivityRequest adds an activity through the mobile app auth path,
// i.e. with the app secret instead of a session token
func (s *IntegrationTestSuite) newActivityRequest(
	ctx context.Context,
	activity activities.Activity,
) activities.AddActivityResponse {
	activityJson, err := json.Marshal(activity)
	require.NoError(s.T(), err)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST", fmt.Sprintf("%s/activities", serverEndpoint),
		bytes.NewReader(activityJson),
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "TrainPulse/1.0")
	req.Header.Set("Authorization", testAppSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var addedActivity activities.AddActivityResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &addedActivity))

	return addedActivity
}

func (s *IntegrationTestSuite) getActivityRequest(ctx context.Context, id int, token string) activities.Activity {
	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/activities/%d", serverEndpoint, id),
		nil,
	)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var activity activities.Activity
	require.NoError(s.T(), json.Unmarshal(respBytes, &activity))

	return activity
}

func (s *IntegrationTestSuite) listActivitiesRequest(
	ctx context.Context,
	page, size int,
	activityType string,
	token string,
) activities.ListResponse {
	listUrl := fmt.Sprintf("%s/activities/list/page/%d/size/%d", serverEndpoint, page, size)
	if activityType != "" {
		listUrl += "?type=" + activityType
	}

	req, err := http.NewRequestWithContext(ctx, "GET", listUrl, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	var listResponse activities.ListResponse
	require.NoError(s.T(), json.Unmarshal(respBytes, &listResponse))

	return listResponse
}

func (s *IntegrationTestSuite) TestActivities() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllActivities(ctx)
	token := s.doLogin(ctx)

	now := time.Now()
	added := s.newActivityRequest(ctx, activities.Activity{
		Type:                "Easy Run",
		DistanceKm:          10,
		DurationSeconds:     3600,
		AvgHeartRate:        145,
		ElevationGainMeters: 120,
		Notes:               "morning shakeout",
		CreatedAt:           now,
	})
	require.NotZero(t, added.ID)
	assert.Greater(t, added.Load, 0.0)

	s.newActivityRequest(ctx, activities.Activity{
		Type:            "Bike Ride",
		DistanceKm:      40,
		DurationSeconds: 5400,
		CreatedAt:       now.Add(-24 * time.Hour),
	})

	// get it back through the API
	fetched := s.getActivityRequest(ctx, added.ID, token)
	assert.Equal(t, added.ID, fetched.ID)
	assert.Equal(t, "Easy Run", fetched.Type)
	assert.Equal(t, 10.0, fetched.DistanceKm)
	assert.Equal(t, 145, fetched.AvgHeartRate)

	// list all
	listResponse := s.listActivitiesRequest(ctx, 1, 10, "", token)
	assert.Equal(t, 2, listResponse.Total)
	require.Len(t, listResponse.Activities, 2)

	// list filtered by type
	listResponse = s.listActivitiesRequest(ctx, 1, 10, "run", token)
	assert.Equal(t, 1, listResponse.Total)
	require.Len(t, listResponse.Activities, 1)
	assert.Equal(t, "Easy Run", listResponse.Activities[0].Type)

	// update
	fetched.Notes = "morning shakeout, felt great"
	fetched.PerceivedExertion = 3
	updateJson, err := json.Marshal(fetched)
	require.NoError(t, err)
	req, err := http.NewRequestWithContext(
		ctx,
		"PUT", fmt.Sprintf("%s/activities", serverEndpoint),
		bytes.NewReader(updateJson),
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	updated := s.getActivityRequest(ctx, added.ID, token)
	assert.Equal(t, "morning shakeout, felt great", updated.Notes)
	assert.Equal(t, 3, updated.PerceivedExertion)

	// delete
	req, err = http.NewRequestWithContext(
		ctx,
		"DELETE", fmt.Sprintf("%s/activities/%d", serverEndpoint, added.ID),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var deleteResp activities.DeleteActivityResponse
	require.NoError(t, json.Unmarshal(respBytes, &deleteResp))
	assert.Equal(t, added.ID, deleteResp.DeletedID)

	listResponse = s.listActivitiesRequest(ctx, 1, 10, "", token)
	assert.Equal(t, 1, listResponse.Total)
}

func (s *IntegrationTestSuite) TestActivities_Unauthorized() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/activities/1", serverEndpoint),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// wrong app secret is rejected too
	req, err = http.NewRequestWithContext(
		ctx,
		"GET", fmt.Sprintf("%s/activities/1", serverEndpoint),
		nil,
	)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "TrainPulse/1.0")
	req.Header.Set("Authorization", "bogus-secret")

	resp, err = s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
