package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter wires every endpoint. The locale middleware runs on all routes so
// even unauthenticated error responses are localized; everything except the
// health check and session minting sits behind the JWT guard.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger, lookup middleware.CountryLookup) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	r.Use(middleware.I18N(cfg.DefaultLocale, lookup))

	r.Get("/healthz", app.Healthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/session", app.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))

			r.Route("/me", func(r chi.Router) {
				r.Get("/profile", app.GetProfile)
				r.Put("/profile", app.PutProfile)
				r.Get("/workouts", app.ListWorkouts)
				r.Post("/workouts", app.LogWorkout)
			})

			r.Route("/plans", func(r chi.Router) {
				r.Post("/", app.GeneratePlan)
				r.Get("/", app.ListPlans)
				r.Get("/{planID}", app.GetPlan)
				r.Delete("/{planID}", app.DeletePlan)
				r.Post("/{planID}/activate", app.ActivatePlan)
				r.Post("/{planID}/days/{day}/regenerate", app.RegenerateDay)
			})

			r.Post("/nutrition", app.GenerateNutritionPlan)
			r.Post("/bioscan", app.BioScan)

			r.Route("/exercises", func(r chi.Router) {
				r.Get("/", app.ListExercises)
				r.Post("/discover", app.DiscoverExercise)
				r.Post("/regenerate", app.RegenerateExercise)
				r.Get("/{exerciseID}", app.GetExercise)
			})

			r.Route("/chat", func(r chi.Router) {
				r.Post("/", app.Chat)
				r.Get("/history", app.ChatHistory)
				r.Delete("/history", app.ClearChat)
			})

			r.Route("/images", func(r chi.Router) {
				r.Post("/", app.GenerateImage)
				r.Post("/edit", app.EditImage)
			})

			r.Route("/videos", func(r chi.Router) {
				r.Post("/", app.SubmitVideo)
				r.Get("/", app.ListVideoJobs)
				r.Get("/{jobID}", app.GetVideoJob)
			})

			r.Get("/assets/{assetID}", app.ServeAsset)

			r.Route("/store", func(r chi.Router) {
				r.Get("/products", app.ListProducts)
				r.Get("/orders", app.ListOrders)
				r.Post("/orders", app.CreateOrder)
				r.Put("/orders/{orderID}/status", app.UpdateOrderStatus)
			})

			r.Route("/credentials", func(r chi.Router) {
				r.Get("/", app.CredentialStatus)
				r.Put("/", app.SetCredential)
				r.Delete("/", app.InvalidateCredential)
			})
		})
	})

	return r
}
