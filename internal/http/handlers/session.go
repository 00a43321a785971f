package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/astra-capstone/astra-backend/internal/http/response"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/services"
)

type SessionHandler struct {
	log      *logger.Logger
	sessions services.SessionService
}

func NewSessionHandler(log *logger.Logger, sessions services.SessionService) *SessionHandler {
	return &SessionHandler{
		log:      log.With("handler", "SessionHandler"),
		sessions: sessions,
	}
}

// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var in services.SessionCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	sess, err := h.sessions.Create(in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

// GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	response.RespondOK(c, h.sessions.List())
}

// GET /api/sessions/:sid
func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.sessions.Get(c.Param("sid"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sess)
}

// PATCH /api/sessions/:sid
func (h *SessionHandler) Update(c *gin.Context) {
	var in services.SessionUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	sess, err := h.sessions.Update(c.Param("sid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, sess)
}
