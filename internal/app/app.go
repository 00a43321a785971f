package app

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/astra-capstone/astra-backend/internal/http"
	httpH "github.com/astra-capstone/astra-backend/internal/http/handlers"
	"github.com/astra-capstone/astra-backend/internal/observability"
	"github.com/astra-capstone/astra-backend/internal/platform/envutil"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/realtime"
	"github.com/astra-capstone/astra-backend/internal/services"
	"github.com/astra-capstone/astra-backend/internal/store"
)

const serviceVersion = "0.2.0"

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Store  *store.Store
	Hub    *realtime.Hub
	Router *gin.Engine

	tracingShutdown func(context.Context) error
}

func New() (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development", nil))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	tracingShutdown := observability.InitTracing(context.Background(), log, observability.Config{
		ServiceName: "astra-backend",
		Version:     serviceVersion,
	})

	st := store.New()
	hub := realtime.NewHub(log)
	notifier := services.NewHubNotifier(hub)

	sessionSvc := services.NewSessionService(st, log)
	noteSvc := services.NewNoteService(st, log, notifier)
	telemetrySvc := services.NewTelemetryService(st, log)
	sttSvc := services.NewSTTService(st, log, notifier)

	router := http.NewRouter(http.RouterConfig{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Tracing:     observability.Enabled(),

		HealthHandler:    httpH.NewHealthHandler(),
		SessionHandler:   httpH.NewSessionHandler(log, sessionSvc),
		NoteHandler:      httpH.NewNoteHandler(log, noteSvc),
		TelemetryHandler: httpH.NewTelemetryHandler(log, telemetrySvc),
		STTHandler:       httpH.NewSTTHandler(log, sttSvc),
		WSHandler:        httpH.NewWSHandler(log, hub, sessionSvc),
	})

	return &App{
		Log:             log,
		Cfg:             cfg,
		Store:           st,
		Hub:             hub,
		Router:          router,
		tracingShutdown: tracingShutdown,
	}, nil
}

// Run serves until ctx is cancelled, then drains with a grace period.
func (a *App) Run(ctx context.Context) error {
	srv := &nethttp.Server{
		Addr:    ":" + a.Cfg.Port,
		Handler: a.Router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.tracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.tracingShutdown(ctx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
