package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ChienNQuang/nextuni-portal-api/internal/service"
	appErrors "github.com/ChienNQuang/nextuni-portal-api/pkg/errors"
	"github.com/ChienNQuang/nextuni-portal-api/pkg/response"
)

// ChatbotHandler exposes the public counselling chatbot.
type ChatbotHandler struct {
	chatbot *service.ChatbotService
}

// NewChatbotHandler constructs ChatbotHandler.
func NewChatbotHandler(chatbot *service.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbot: chatbot}
}

type chatRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask godoc
// @Summary Ask the counselling chatbot a question
// @Tags Chatbot
// @Accept json
// @Produce json
// @Param payload body chatRequest true "Question"
// @Success 200 {object} response.Envelope
// @Router /chatbot/ask [post]
func (h *ChatbotHandler) Ask(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reply, err := h.chatbot.Ask(req.Question)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reply, nil)
}
