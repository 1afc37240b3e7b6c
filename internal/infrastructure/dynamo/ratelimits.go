package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/portfolio-backend/internal/domain"
)

// rateLimitAPI is the slice of the DynamoDB API the repo needs. *dynamodb.Client satisfies it.
type rateLimitAPI interface {
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// RateLimitRepo throttles OTP sends per recipient.
// PK: recipient. Rows carry a TTL so DynamoDB reclaims them after the window.
type RateLimitRepo struct {
	client    rateLimitAPI
	tableName string
}

func NewRateLimitRepo(client rateLimitAPI, tableName string) *RateLimitRepo {
	return &RateLimitRepo{client: client, tableName: tableName}
}

// Reserve atomically claims one send attempt for recipient. It either
// increments the counter inside an active window (attempts < maxAttempts),
// or resets it to 1 when the window has elapsed or no row exists. When the
// window is active and the counter is exhausted it returns domain.ErrRateLimited.
// Both writes are conditional, so concurrent sends for the same recipient
// cannot lose increments the way a read-then-write counter would.
func (r *RateLimitRepo) Reserve(ctx context.Context, recipient string, now time.Time, window time.Duration, maxAttempts int) error {
	cutoff := now.Add(-window).Unix()

	// Increment within an active, non-exhausted window.
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("recipient", recipient),
		UpdateExpression:    aws.String("SET attempts = attempts + :one, last_attempt = :now, expires_at = :exp"),
		ConditionExpression: aws.String("attribute_exists(recipient) AND last_attempt > :cutoff AND attempts < :max"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":    numAttr(1),
			":now":    numAttr(now.Unix()),
			":exp":    numAttr(now.Add(window).Unix()),
			":cutoff": numAttr(cutoff),
			":max":    numAttr(int64(maxAttempts)),
		},
	})
	if err == nil {
		return nil
	}
	var ccf *types.ConditionalCheckFailedException
	if !errors.As(err, &ccf) {
		return fmt.Errorf("increment rate limit: %w", err)
	}

	// No row, or the window has elapsed: start a fresh one.
	rec := domain.RateLimitRecord{
		Recipient:   recipient,
		Attempts:    1,
		LastAttempt: now.Unix(),
		ExpiresAt:   now.Add(window).Unix(),
	}
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal rate limit record: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(recipient) OR last_attempt <= :cutoff"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cutoff": numAttr(cutoff),
		},
	})
	if err == nil {
		return nil
	}
	if errors.As(err, &ccf) {
		// Window active and attempts exhausted.
		return fmt.Errorf("recipient %s: %w", recipient, domain.ErrRateLimited)
	}
	return fmt.Errorf("reset rate limit: %w", err)
}
