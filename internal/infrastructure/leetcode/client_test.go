package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/portfolio-backend/internal/config"
	"github.com/portfolio-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statsBody = `{"data":{"matchedUser":{
	"profile":{"ranking":123456},
	"submitStatsGlobal":{"acSubmissionNum":[
		{"difficulty":"All","count":250},
		{"difficulty":"Easy","count":120},
		{"difficulty":"Medium","count":100},
		{"difficulty":"Hard","count":30}
	]}
}}}`

func TestFetchStats_HappyPath(t *testing.T) {
	var got gqlRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statsBody))
	}))
	defer srv.Close()

	c := NewClient(&config.Config{LeetCodeAPIURL: srv.URL})
	stats, raw, err := c.FetchStats(context.Background(), "someuser")
	require.NoError(t, err)

	assert.Equal(t, "someuser", got.Variables["username"])
	assert.Equal(t, "someuser", stats.Username)
	assert.Equal(t, 123456, stats.Ranking)
	assert.Equal(t, 250, stats.Total)
	assert.Equal(t, 120, stats.Easy)
	assert.Equal(t, 100, stats.Medium)
	assert.Equal(t, 30, stats.Hard)
	assert.JSONEq(t, statsBody, string(raw))
}

func TestFetchStats_UnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"matchedUser":null}}`))
	}))
	defer srv.Close()

	c := NewClient(&config.Config{LeetCodeAPIURL: srv.URL})
	_, _, err := c.FetchStats(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestFetchStats_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(&config.Config{LeetCodeAPIURL: srv.URL})
	_, _, err := c.FetchStats(context.Background(), "someuser")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
