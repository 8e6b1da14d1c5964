package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"stride/internal/app"
	"stride/internal/handler"
	"stride/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	goal := handler.NewGoalHandler(app.GoalService)
	settings := handler.NewSettingsHandler(app.SettingsService)
	celebration := handler.NewCelebrationHandler(app.CelebrationService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	// Token Verifications
	mux.HandleFunc("GET /auth/verify-email/{token}", auth.VerifyEmail)

	// Auth Actions
	mux.HandleFunc("POST /auth/signup", rateLimiter(auth.Signup))
	mux.HandleFunc("POST /auth/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /auth/forgot-password", rateLimiter(auth.ForgotPassword))
	mux.HandleFunc("POST /auth/reset-password", rateLimiter(auth.ResetPassword))
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/me", middleware.RequireAuth(auth.Me))

	// ============================================================================
	// PROTECTED ROUTES (/app/*)
	// ============================================================================

	// Goals
	mux.HandleFunc("GET /app/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("GET /app/goals/export", middleware.RequireAuth(goal.Export))
	mux.HandleFunc("GET /app/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("POST /app/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PATCH /app/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /app/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Steps
	mux.HandleFunc("POST /app/goals/{id}/steps", middleware.RequireAuth(goal.AddStep))
	mux.HandleFunc("PATCH /app/goals/{id}/steps/{stepID}", middleware.RequireAuth(goal.UpdateStep))
	mux.HandleFunc("POST /app/goals/{id}/steps/{stepID}/toggle", middleware.RequireAuth(goal.ToggleStep))
	mux.HandleFunc("DELETE /app/goals/{id}/steps/{stepID}", middleware.RequireAuth(goal.DeleteStep))

	// Celebration overlay state
	mux.HandleFunc("GET /app/celebration", middleware.RequireAuth(celebration.Current))

	// Settings
	mux.HandleFunc("GET /app/settings", middleware.RequireAuth(settings.Get))
	mux.HandleFunc("PUT /app/settings", middleware.RequireAuth(settings.Put))
	mux.HandleFunc("POST /app/settings/reset", middleware.RequireAuth(settings.Reset))

	// Account
	mux.HandleFunc("DELETE /app/account", middleware.RequireAuth(auth.DeleteAccount))

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (CSRF and auth cookies read APP_ENV from it)
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.Metrics(mux),
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.WithURLPath,
	)

	return handler
}
