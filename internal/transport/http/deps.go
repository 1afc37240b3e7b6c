package http

import (
	"github.com/portfolio-backend/internal/infrastructure/dynamo"
	jwtinfra "github.com/portfolio-backend/internal/infrastructure/jwt"
	"github.com/portfolio-backend/internal/infrastructure/leetcode"
	"github.com/portfolio-backend/internal/infrastructure/resend"
	s3infra "github.com/portfolio-backend/internal/infrastructure/s3"
	"github.com/portfolio-backend/internal/infrastructure/sns"
)

// Deps holds all infrastructure dependencies for the router.
// SMSSender, SnapshotStore and JWTProvider are optional: a nil value disables
// the SMS channel, snapshot archiving and verification access tokens
// respectively, without affecting the rest of the service.
type Deps struct {
	RateLimitRepo  *dynamo.RateLimitRepo
	StatsRepo      *dynamo.LeetCodeStatsRepo
	LeetCodeClient *leetcode.Client
	Mailer         resend.Mailer
	SMSSender      sns.SMSSender
	SnapshotStore  *s3infra.Store
	JWTProvider    *jwtinfra.Provider
}
