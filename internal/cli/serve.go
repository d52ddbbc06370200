package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "eventpay/docs"
	"eventpay/internal/adapters/auth"
	"eventpay/internal/adapters/email"
	"eventpay/internal/adapters/stripe"
	"eventpay/internal/clock"
	httpdelivery "eventpay/internal/delivery/http"
	"eventpay/internal/delivery/http/controllers"
	"eventpay/internal/delivery/http/middleware"
	"eventpay/internal/repository/postgres"
	"eventpay/internal/services"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, migrate bool) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.db.Close()
	cfg, logger, db := e.cfg, e.logger, e.db

	if err := cfg.ValidateServe(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if migrate {
		if err := applyMigrations(ctx, e); err != nil {
			return err
		}
	}

	clk := clock.NewSystem()

	// Repositories
	tx := postgres.NewTransactor(db)
	eventRepo := postgres.NewEventRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Adapters
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	gateway := stripe.NewCheckoutGateway(stripe.CheckoutConfig{
		SecretKey:  cfg.StripeSecretKey,
		Currency:   cfg.CheckoutCurrency,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
		APIURL:     cfg.StripeAPIURL,
	})
	webhookVerifier := stripe.NewWebhookVerifier(cfg.StripeWebhookSecret, 0)
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.AWSRegion,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretKey,
			Endpoint:        cfg.SESEndpoint,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	// Services
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	participationService := services.NewParticipationService(tx, eventRepo, eventRepo, reservationRepo, paymentRepo, userRepo, gateway, clk, logger, cfg.RequestTimeout)
	paymentService := services.NewPaymentService(tx, webhookVerifier, reservationRepo, paymentRepo, eventRepo, userRepo, emailService, logger, cfg.RequestTimeout)
	reviewService := services.NewReviewService(eventRepo, reservationRepo, reviewRepo, clk, cfg.RequestTimeout)
	hostService := services.NewHostService(eventRepo, clk, logger, cfg.RequestTimeout)

	router := httpdelivery.NewRouter(httpdelivery.Controllers{
		Participation: controllers.NewParticipationController(logger, participationService),
		Reviews:       controllers.NewReviewController(logger, reviewService),
		Host:          controllers.NewHostController(logger, hostService, paymentService),
		Webhooks:      controllers.NewWebhookController(logger, paymentService),
	}, verifier, logger)

	var handler http.Handler = router
	if len(cfg.CORSOrigins) > 0 {
		handler = middleware.CORS(cfg.CORSOrigins, handler)
	}
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
