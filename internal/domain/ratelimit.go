package domain

// RateLimitRecord tracks OTP send attempts per recipient.
// PK: recipient (email address or phone number).
type RateLimitRecord struct {
	Recipient   string `dynamodbav:"recipient" json:"recipient"`
	Attempts    int    `dynamodbav:"attempts" json:"attempts"`
	LastAttempt int64  `dynamodbav:"last_attempt" json:"last_attempt"`
	// ExpiresAt drives the DynamoDB TTL that reclaims stale rows.
	ExpiresAt int64 `dynamodbav:"expires_at" json:"-"`
}
