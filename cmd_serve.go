package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"diabetes-risk/pkg/api"
	"diabetes-risk/pkg/clients/prediction"
	"diabetes-risk/pkg/models"
	"diabetes-risk/pkg/services"
	"diabetes-risk/pkg/sessions"
	"diabetes-risk/pkg/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the survey web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	gin.SetMode(cfg.GinMode)

	// Initialize the prediction client and per-session controllers
	tel := telemetry.NewTelemetry()
	client := prediction.NewClient(cfg.PredictionAPIURL, cfg.PredictionTimeout)
	store := sessions.NewStore(cfg.SessionTTL, func() services.FormController {
		return services.NewFormController(client, tel)
	}, tel)

	router := api.NewRouter(api.NewHandlers(store, tel), cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("error shutting down server", zap.Error(err))
		}
	}()

	zap.L().Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("prediction_api", cfg.PredictionAPIURL),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	zap.L().Info("server stopped", servedSummary(tel, store)...)
	return nil
}

// servedSummary reports what the server handled over its lifetime
func servedSummary(tel *telemetry.Telemetry, store *sessions.Store) []zap.Field {
	return []zap.Field{
		zap.Int64("submissions", tel.Count(telemetry.SubmissionsCount)),
		zap.Int64("ignored", tel.Count(telemetry.SubmissionsIgnoredCount)),
		zap.Int64("succeeded", tel.Count(telemetry.PredictionsSucceeded)),
		zap.Int64("failed_transport", tel.Count(telemetry.PredictionsFailedPrefix+string(models.ErrorKindTransport))),
		zap.Int64("failed_unknown", tel.Count(telemetry.PredictionsFailedPrefix+string(models.ErrorKindUnknown))),
		zap.Int("sessions", store.Len()),
	}
}
