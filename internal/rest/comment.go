package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/rest/request"
	"github.com/Guyuepp/go-clean-forum/internal/rest/response"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// Get user ID from context (set by authentication middleware)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comment, err := h.Service.Create(c.Request.Context(), req.ToDomain(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewSingleCommentFromDomain(comment))
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), c.Param("short_url"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *commentHandler) VoteComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	voted, err := h.Service.ToggleVote(c.Request.Context(), c.Param("short_url"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"voted": voted})
}

func (h *commentHandler) GetComment(c *gin.Context) {
	comment, err := h.Service.GetByShortURL(c.Request.Context(), c.Param("short_url"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewSingleCommentFromDomain(&comment))
}

// FetchRecent lists the newest comments site-wide
func (h *commentHandler) FetchRecent(c *gin.Context) {
	comments, nextCursor, err := h.Service.FetchRecent(c.Request.Context(), c.Query("cursor"), queryInt(c, "num"))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]*response.Comment, len(comments))
	for i := range comments {
		res[i] = response.NewSingleCommentFromDomain(&comments[i])
	}
	c.Header("X-cursor", nextCursor)
	c.JSON(http.StatusOK, res)
}
