package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astra-capstone/astra-backend/internal/http/response"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/services"
)

type STTHandler struct {
	log *logger.Logger
	stt services.STTService
}

func NewSTTHandler(log *logger.Logger, stt services.STTService) *STTHandler {
	return &STTHandler{
		log: log.With("handler", "STTHandler"),
		stt: stt,
	}
}

// POST /api/sessions/:sid/stt/tasks
func (h *STTHandler) Create(c *gin.Context) {
	var in services.STTTaskCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	task, err := h.stt.Create(c.Param("sid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GET /api/sessions/:sid/stt/tasks
func (h *STTHandler) List(c *gin.Context) {
	tasks, err := h.stt.List(c.Param("sid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, tasks)
}

// GET /api/sessions/:sid/stt/tasks/:tid
func (h *STTHandler) Get(c *gin.Context) {
	task, err := h.stt.Get(c.Param("sid"), c.Param("tid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, task)
}

// PUT /api/sessions/:sid/stt/tasks/:tid
func (h *STTHandler) Update(c *gin.Context) {
	var in services.STTTaskUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	task, err := h.stt.Update(c.Param("sid"), c.Param("tid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, task)
}
