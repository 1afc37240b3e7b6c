package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/portfolio-backend/internal/application/otp"
	"github.com/portfolio-backend/internal/application/stats"
	"github.com/portfolio-backend/internal/config"
	"github.com/portfolio-backend/internal/transport/http/handler"
	appmiddleware "github.com/portfolio-backend/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(appmiddleware.Recover)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     cfg.AllowedOrigins,
		AllowedMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:     []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		AllowCredentials:   false,
		MaxAge:             300,
		OptionsPassthrough: true, // preflights fall through to the "ok" handler
	}))

	otpDeps := otp.ServiceDeps{
		RateLimits:        deps.RateLimitRepo,
		Mailer:            deps.Mailer,
		SMSSender:         deps.SMSSender,
		Secret:            cfg.OTPSecret,
		AllowedRecipients: cfg.OTPAllowedRecipients,
		TokenTTL:          cfg.OTPTokenTTL,
		RateWindow:        cfg.OTPRateWindow,
		MaxAttempts:       cfg.OTPMaxAttempts,
	}
	if deps.JWTProvider != nil {
		otpDeps.Issuer = deps.JWTProvider
	}
	otpSvc := otp.NewService(otpDeps)

	var snapshots stats.SnapshotStore
	if deps.SnapshotStore != nil {
		snapshots = deps.SnapshotStore
	}
	statsSvc := stats.NewService(deps.LeetCodeClient, deps.StatsRepo, snapshots)

	healthH := handler.NewHealthHandler(cfg.Validate)
	otpH := handler.NewOTPHandler(otpSvc)
	leetcodeH := handler.NewLeetCodeHandler(statsSvc, cfg.LeetCodeUsername)

	// 5 requests/second with a burst of 10, sitting in front of the
	// per-recipient throttle.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.With(sensitiveRL.Limit).Post("/otp", otpH.Action)
		r.Options("/otp", otpH.Preflight)

		r.Post("/leetcode/sync", leetcodeH.Sync)
		r.Get("/leetcode/stats/{username}", leetcodeH.Get)
	})

	return r
}
