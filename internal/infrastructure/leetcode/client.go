// Package leetcode fetches public solve statistics from the LeetCode GraphQL API.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/portfolio-backend/internal/config"
	"github.com/portfolio-backend/internal/domain"
)

const statsQuery = `query userStats($username: String!) {
  matchedUser(username: $username) {
    profile { ranking }
    submitStatsGlobal {
      acSubmissionNum { difficulty count }
    }
  }
}`

// Client calls the LeetCode GraphQL endpoint.
type Client struct {
	apiURL string
	http   *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiURL: cfg.LeetCodeAPIURL,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

type gqlRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type gqlResponse struct {
	Data struct {
		MatchedUser *struct {
			Profile struct {
				Ranking int `json:"ranking"`
			} `json:"profile"`
			SubmitStatsGlobal struct {
				ACSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	} `json:"data"`
}

// FetchStats retrieves solve counts for username. It returns the parsed stats
// together with the raw response body so callers can archive the upstream payload.
func (c *Client) FetchStats(ctx context.Context, username string) (*domain.LeetCodeStats, []byte, error) {
	body, err := json.Marshal(gqlRequest{
		Query:     statsQuery,
		Variables: map[string]string{"username": username},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("leetcode api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("leetcode api returned %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	var parsed gqlResponse
	if err := json.NewDecoder(io.TeeReader(resp.Body, &buf)).Decode(&parsed); err != nil {
		return nil, nil, fmt.Errorf("decode leetcode response: %w", err)
	}
	if parsed.Data.MatchedUser == nil {
		return nil, nil, fmt.Errorf("leetcode user %s: %w", username, domain.ErrNotFound)
	}

	stats := &domain.LeetCodeStats{
		Username: username,
		Ranking:  parsed.Data.MatchedUser.Profile.Ranking,
	}
	for _, n := range parsed.Data.MatchedUser.SubmitStatsGlobal.ACSubmissionNum {
		switch n.Difficulty {
		case "All":
			stats.Total = n.Count
		case "Easy":
			stats.Easy = n.Count
		case "Medium":
			stats.Medium = n.Count
		case "Hard":
			stats.Hard = n.Count
		}
	}
	return stats, buf.Bytes(), nil
}
