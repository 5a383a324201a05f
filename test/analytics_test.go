package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/2beens/trainpulse/internal/activities"
	"github.com/2beens/trainpulse/internal/analytics"
	"github.com/2beens/trainpulse/internal/goals"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) getAnalytics(ctx context.Context, path, token string) (*http.Response, []byte) {
	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+path, nil)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set("X-TRAINPULSE-TOKEN", token)

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)

	return resp, respBytes
}

func (s *IntegrationTestSuite) TestAnalytics() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.deleteAllActivities(ctx)
	s.deleteAllGoals(ctx)
	token := s.doLogin(ctx)

	// a week of daily easy runs
	now := time.Now()
	for i := 0; i < 7; i++ {
		s.newActivityRequest(ctx, activities.Activity{
			Type:            "Easy Run",
			DistanceKm:      8,
			DurationSeconds: 2700,
			Notes:           gofakeit.Sentence(6),
			CreatedAt:       now.AddDate(0, 0, -i),
		})
	}

	resp, respBytes := s.getAnalytics(ctx, "/analytics/load", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loadResponse analytics.LoadResponse
	require.NoError(t, json.Unmarshal(respBytes, &loadResponse))
	assert.Equal(t, 42, loadResponse.WindowDays)
	require.Len(t, loadResponse.DailyLoads, 42)
	assert.Greater(t, loadResponse.DailyLoads[41], 0.0)
	assert.Greater(t, loadResponse.Metrics.AcuteLoad, 0.0)
	// a fresh week of training means acute load runs ahead of chronic
	assert.Greater(t, loadResponse.Metrics.FatigueRatio, 1.0)

	resp, respBytes = s.getAnalytics(ctx, "/analytics/load?days=14", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(respBytes, &loadResponse))
	assert.Equal(t, 14, loadResponse.WindowDays)

	resp, _ = s.getAnalytics(ctx, "/analytics/load?days=13", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, respBytes = s.getAnalytics(ctx, "/analytics/recommendation?energy=20", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recommendationResponse analytics.RecommendationResponse
	require.NoError(t, json.Unmarshal(respBytes, &recommendationResponse))
	assert.NotEmpty(t, recommendationResponse.Recommendation.RecommendedIntensity)
	assert.NotEmpty(t, recommendationResponse.Recommendation.SuggestedWorkouts)

	resp, _ = s.getAnalytics(ctx, "/analytics/recommendation?energy=180", token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// readiness needs an active goal
	resp, _ = s.getAnalytics(ctx, "/analytics/readiness", token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	s.newGoalRequest(ctx, goals.Goal{
		Type:           "race",
		Title:          "Spring 10k",
		TargetDate:     now.AddDate(0, 0, 35),
		TargetDistance: "10k",
		TargetTime:     "45:00",
	}, token)

	resp, respBytes = s.getAnalytics(ctx, "/analytics/readiness", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var readinessResponse analytics.ReadinessResponse
	require.NoError(t, json.Unmarshal(respBytes, &readinessResponse))
	assert.Equal(t, "Spring 10k", readinessResponse.Goal.Title)
	assert.GreaterOrEqual(t, readinessResponse.Report.Score, 0)
	assert.LessOrEqual(t, readinessResponse.Report.Score, 100)
	require.NotEmpty(t, readinessResponse.Report.SubScores)
	assert.Contains(t, readinessResponse.Report.SubScores, "long runs")
	assert.Contains(t, readinessResponse.Report.SubScores, "weekly volume")

	// a second call right away serves the cached report
	resp, respBytes = s.getAnalytics(ctx, "/analytics/readiness", token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var readinessResponse2 analytics.ReadinessResponse
	require.NoError(t, json.Unmarshal(respBytes, &readinessResponse2))
	assert.Equal(t, readinessResponse.Report.Score, readinessResponse2.Report.Score)
}
