package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/astra-capstone/astra-backend/internal/http/handlers"
	httpMW "github.com/astra-capstone/astra-backend/internal/http/middleware"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	CORSOrigins []string
	Tracing     bool

	HealthHandler    *httpH.HealthHandler
	SessionHandler   *httpH.SessionHandler
	NoteHandler      *httpH.NoteHandler
	TelemetryHandler *httpH.TelemetryHandler
	STTHandler       *httpH.STTHandler
	WSHandler        *httpH.WSHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.Tracing {
		r.Use(otelgin.Middleware("astra-backend"))
	}

	if cfg.HealthHandler != nil {
		r.GET("/", cfg.HealthHandler.Root)
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	sessions := api.Group("/sessions")
	{
		if cfg.SessionHandler != nil {
			sessions.POST("", cfg.SessionHandler.Create)
			sessions.GET("", cfg.SessionHandler.List)
			sessions.GET("/:sid", cfg.SessionHandler.Get)
			sessions.PATCH("/:sid", cfg.SessionHandler.Update)
		}

		if cfg.NoteHandler != nil {
			sessions.POST("/:sid/notes", cfg.NoteHandler.Create)
			sessions.GET("/:sid/notes", cfg.NoteHandler.List)
			sessions.GET("/:sid/notes/export", cfg.NoteHandler.Export)
			sessions.GET("/:sid/notes/:note_id", cfg.NoteHandler.Get)
			sessions.PUT("/:sid/notes/:note_id", cfg.NoteHandler.Update)
			sessions.DELETE("/:sid/notes/:note_id", cfg.NoteHandler.Delete)
		}

		if cfg.TelemetryHandler != nil {
			sessions.POST("/:sid/telemetry", cfg.TelemetryHandler.Create)
			sessions.POST("/:sid/telemetry/batch", cfg.TelemetryHandler.CreateBatch)
			sessions.GET("/:sid/telemetry", cfg.TelemetryHandler.List)
			sessions.GET("/:sid/telemetry/latest", cfg.TelemetryHandler.Latest)
			sessions.GET("/:sid/telemetry/channels", cfg.TelemetryHandler.Channels)
		}

		if cfg.STTHandler != nil {
			sessions.POST("/:sid/stt/tasks", cfg.STTHandler.Create)
			sessions.GET("/:sid/stt/tasks", cfg.STTHandler.List)
			sessions.GET("/:sid/stt/tasks/:tid", cfg.STTHandler.Get)
			sessions.PUT("/:sid/stt/tasks/:tid", cfg.STTHandler.Update)
		}
	}

	if cfg.WSHandler != nil {
		r.GET("/ws/sessions/:sid", cfg.WSHandler.Subscribe)
	}

	return r
}
