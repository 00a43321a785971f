package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astra-capstone/astra-backend/internal/domain"
	"github.com/astra-capstone/astra-backend/internal/http/response"
	"github.com/astra-capstone/astra-backend/internal/platform/logger"
	"github.com/astra-capstone/astra-backend/internal/services"
)

type NoteHandler struct {
	log   *logger.Logger
	notes services.NoteService
}

func NewNoteHandler(log *logger.Logger, notes services.NoteService) *NoteHandler {
	return &NoteHandler{
		log:   log.With("handler", "NoteHandler"),
		notes: notes,
	}
}

// POST /api/sessions/:sid/notes
func (h *NoteHandler) Create(c *gin.Context) {
	var in services.NoteCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	note, err := h.notes.Create(c.Param("sid"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// GET /api/sessions/:sid/notes?speaker=&type=&from=&to=
func (h *NoteHandler) List(c *gin.Context) {
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
	noteType := domain.NoteType(c.Query("type"))
	switch noteType {
	case "", domain.NoteTypeObservation, domain.NoteTypeCommand, domain.NoteTypeSystem:
	default:
		response.Detail(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid note type: %s", noteType))
		return
	}

	notes, err := h.notes.List(c.Param("sid"), services.NoteListFilter{
		Speaker: c.Query("speaker"),
		Type:    noteType,
		From:    from,
		To:      to,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, notes)
}

// GET /api/sessions/:sid/notes/export?format=markdown|json
func (h *NoteHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "markdown")
	body, contentType, err := h.notes.Export(c.Param("sid"), format)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}

// GET /api/sessions/:sid/notes/:note_id
func (h *NoteHandler) Get(c *gin.Context) {
	note, err := h.notes.Get(c.Param("sid"), c.Param("note_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// PUT /api/sessions/:sid/notes/:note_id
func (h *NoteHandler) Update(c *gin.Context) {
	var in services.NoteUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Validation(c, err)
		return
	}
	note, err := h.notes.Update(c.Param("sid"), c.Param("note_id"), in)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, note)
}

// DELETE /api/sessions/:sid/notes/:note_id
func (h *NoteHandler) Delete(c *gin.Context) {
	noteID := c.Param("note_id")
	if err := h.notes.Delete(c.Param("sid"), noteID); err != nil {
		response.FromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": fmt.Sprintf("Note %s deleted", noteID)})
}
