package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/portfolio-backend/internal/domain"
)

// LeetCodeStatsRepo persists synced LeetCode solve counts.
// PK: username.
type LeetCodeStatsRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewLeetCodeStatsRepo(client *dynamodb.Client, tableName string) *LeetCodeStatsRepo {
	return &LeetCodeStatsRepo{client: client, tableName: tableName}
}

func (r *LeetCodeStatsRepo) Put(ctx context.Context, s *domain.LeetCodeStats) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal leetcode stats: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *LeetCodeStatsRepo) Get(ctx context.Context, username string) (*domain.LeetCodeStats, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("username", username),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("stats for %s not found: %w", username, domain.ErrNotFound)
	}
	var s domain.LeetCodeStats
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
