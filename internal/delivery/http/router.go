package http

import (
	"log/slog"
	"net/http"

	"eventpay/internal/delivery/http/controllers"
	"eventpay/internal/delivery/http/helpers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the HTTP controllers mounted by NewRouter.
type Controllers struct {
	Participation *controllers.ParticipationController
	Reviews       *controllers.ReviewController
	Host          *controllers.HostController
	Webhooks      *controllers.WebhookController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	user := middleware.RequireAuth(verifier, logger, domain.RoleUser)
	host := middleware.RequireAuth(verifier, logger, domain.RoleHost)

	// Participants
	mux.HandleFunc("POST /participant/events/{eventID}/join", user(c.Participation.Join))
	mux.HandleFunc("GET /participant/reservations", user(c.Participation.ListMyReservations))
	mux.HandleFunc("POST /participant/events/{eventID}/reviews", user(c.Reviews.AddReview))
	mux.HandleFunc("GET /reviews/me", middleware.RequireAuth(verifier, logger, domain.RoleUser, domain.RoleHost)(c.Reviews.ListMyReviews))

	// Hosts
	mux.HandleFunc("POST /host/events", host(c.Host.CreateEvent))
	mux.HandleFunc("PATCH /host/events/{eventID}/status", middleware.RequireAuth(verifier, logger, domain.RoleHost, domain.RoleAdmin)(c.Host.UpdateEventStatus))
	mux.HandleFunc("GET /host/payments/overview", host(c.Host.PaymentOverview))

	// Gateway callbacks authenticate by signature, not by bearer token.
	mux.HandleFunc("POST /webhooks/stripe", c.Webhooks.Stripe)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
