package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astra-capstone/astra-backend/internal/http/response"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/services"
)

type TelemetryHandler struct {
	log       *logger.Logger
	telemetry services.TelemetryService
}

func NewTelemetryHandler(log *logger.Logger, telemetry services.TelemetryService) *TelemetryHandler {
	return &TelemetryHandler{
		log:       log.With("handler", "TelemetryHandler"),
		telemetry: telemetry,
	}
}

// POST /api/sessions/:sid/telemetry
func (h *TelemetryHandler) Create(c *gin.Context) {
	var in services.TelemetryCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	sample, err := h.telemetry.Create(c.Param("sid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sample)
}

// POST /api/sessions/:sid/telemetry/batch
func (h *TelemetryHandler) CreateBatch(c *gin.Context) {
	var in services.TelemetryBatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	created, err := h.telemetry.CreateBatch(c.Param("sid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"created": created})
}

// GET /api/sessions/:sid/telemetry?channel=&from=&to=&limit=
func (h *TelemetryHandler) List(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	to, err := queryTime(c, "to")
	if err != nil {
		response.Detail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.Detail(c, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
	}

	samples, err := h.telemetry.List(c.Param("sid"), services.TelemetryListFilter{
		Channel: c.Query("channel"),
		From:    from,
		To:      to,
		Limit:   limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, samples)
}

// GET /api/sessions/:sid/telemetry/latest?channel=
func (h *TelemetryHandler) Latest(c *gin.Context) {
	channel := c.Query("channel")
	if channel == "" {
		response.Detail(c, http.StatusUnprocessableEntity, "channel query parameter is required")
		return
	}
	sample, err := h.telemetry.Latest(c.Param("sid"), channel)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sample)
}

// GET /api/sessions/:sid/telemetry/channels
func (h *TelemetryHandler) Channels(c *gin.Context) {
	channels, err := h.telemetry.Channels(c.Param("sid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"channels": channels})
}
