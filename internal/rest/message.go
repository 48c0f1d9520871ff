package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/rest/request"
	"github.com/Guyuepp/go-clean-forum/internal/rest/response"
)

type MessageHandler struct {
	Service domain.MessageUsecase
}

func NewMessageHandler(svc domain.MessageUsecase) *MessageHandler {
	return &MessageHandler{Service: svc}
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	msgs, err := h.Service.Inbox(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewMessageListFromDomain(msgs))
}

func (h *MessageHandler) Outbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	msgs, err := h.Service.Outbox(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewMessageListFromDomain(msgs))
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req request.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	msg, err := h.Service.Send(c.Request.Context(), req.ToDomain(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewMessageFromDomain(msg, true))
}

func (h *MessageHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	msg, err := h.Service.Get(c.Request.Context(), c.Param("short_id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewMessageFromDomain(&msg, true))
}

func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), c.Param("short_id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
