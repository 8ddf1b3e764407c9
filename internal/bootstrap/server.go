package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Korolev2000/flightbooking/api"
	"github.com/Korolev2000/flightbooking/config"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/Korolev2000/flightbooking/internal/service/auth"
	"github.com/Korolev2000/flightbooking/internal/service/booking"
	"github.com/Korolev2000/flightbooking/internal/service/flights"
	"github.com/Korolev2000/flightbooking/internal/service/reviews"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Services collects everything the HTTP layer is built from.
type Services struct {
	Auth    auth.AuthUseCase
	Flights flights.FlightUseCase
	Booking booking.BookingUseCase
	Reviews reviews.ReviewUseCase
	Users   repository.UserRepository
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger, svc Services) error {
	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, log, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	log.Info().Str("address", cfg.HTTP.Address).Msg("http server started")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, log zerolog.Logger, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(log))

	requireAuth := api.RequireAuth(svc.Auth, cfg.Auth.TokenHeader)
	requireAdmin := api.RequireAdmin()

	api.NewAuthHandler(svc.Auth).Register(router, requireAuth)
	api.NewFlightHandler(svc.Flights).Register(router, requireAuth, requireAdmin)
	api.NewBookingHandler(svc.Booking).Register(router, requireAuth)
	api.NewReviewHandler(svc.Reviews).Register(router, requireAuth, requireAdmin)
	api.NewUserHandler(svc.Users).Register(router)

	if cfg.HTTP.SwaggerDir != "" {
		router.Static("/swagger", cfg.HTTP.SwaggerDir)
		router.GET("/docs", func(c *gin.Context) {
			renderSwaggerUI(c.Writer, "/swagger/flightbooking.swagger.json")
		})
	}

	return router
}

func renderSwaggerUI(w http.ResponseWriter, jsonURL string) {
	html := fmt.Sprintf(`<!DOCTYPE html>
    <html>
    <head>
        <title>API Docs</title>
        <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css">
    </head>
    <body>
        <div id="swagger-ui"></div>
        <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
        <script>
            window.onload = function() {
                window.ui = SwaggerUIBundle({
                    url: "%s",
                    dom_id: '#swagger-ui'
                });
            };
        </script>
    </body>
    </html>`, jsonURL)

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(html))
}
