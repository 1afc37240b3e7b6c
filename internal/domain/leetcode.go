package domain

import "time"

// LeetCodeStats holds the solve counts synced from LeetCode for one profile.
// PK: username.
type LeetCodeStats struct {
	Username string    `dynamodbav:"username" json:"username"`
	Ranking  int       `dynamodbav:"ranking" json:"ranking"`
	Easy     int       `dynamodbav:"easy" json:"easy"`
	Medium   int       `dynamodbav:"medium" json:"medium"`
	Hard     int       `dynamodbav:"hard" json:"hard"`
	Total    int       `dynamodbav:"total" json:"total"`
	SyncedAt time.Time `dynamodbav:"synced_at" json:"synced_at"`
}
