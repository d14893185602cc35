package delivery

import (
	"net/http"

	"taskpro-backend/internal/apperror"
	"taskpro-backend/internal/help/dto"
	"taskpro-backend/internal/help/usecase"

	"github.com/gin-gonic/gin"
)

type HelpHandler struct {
	helpUsecase usecase.HelpUsecase
}

func NewHelpHandler(helpUsecase usecase.HelpUsecase) *HelpHandler {
	return &HelpHandler{helpUsecase: helpUsecase}
}

// SendHelpRequest
// POST /api/help
func (h *HelpHandler) SendHelpRequest(c *gin.Context) {
	var req dto.HelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("Invalid request body").Wrap(err))
		return
	}

	if err := h.helpUsecase.Send(c.Request.Context(), &req); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Your request has been sent"})
}
