package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/rest/request"
	"github.com/Guyuepp/go-clean-forum/internal/rest/response"
)

// StoryHandler represent the httphandler for stories
type StoryHandler struct {
	Service domain.StoryUsecase
}

func NewStoryHandler(svc domain.StoryUsecase) *StoryHandler {
	return &StoryHandler{
		Service: svc,
	}
}

func queryInt(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func (h *StoryHandler) fetch(c *gin.Context, q domain.StoryQuery) {
	q.Page = queryInt(c, "page")
	q.Cursor = c.Query("cursor")
	q.Num = queryInt(c, "num")

	stories, next, err := h.Service.Fetch(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-cursor", next)
	c.JSON(http.StatusOK, response.NewStoryListFromDomain(stories))
}

// FetchHottest serves both / and /hottest
func (h *StoryHandler) FetchHottest(c *gin.Context) {
	h.fetch(c, domain.StoryQuery{Order: domain.StoryOrderHottest})
}

func (h *StoryHandler) FetchNewest(c *gin.Context) {
	h.fetch(c, domain.StoryQuery{Order: domain.StoryOrderNewest})
}

// FetchTagged lists the hottest stories of one tag; ?order=newest switches ordering.
func (h *StoryHandler) FetchTagged(c *gin.Context) {
	h.fetch(c, domain.StoryQuery{Order: c.DefaultQuery("order", domain.StoryOrderHottest), Tag: c.Param("tag")})
}

// GetByShortURL returns the story with its sorted comment tree
func (h *StoryHandler) GetByShortURL(c *gin.Context) {
	detail, err := h.Service.GetByShortURL(c.Request.Context(), c.Param("short_url"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewStoryDetailFromDomain(&detail))
}

// Submit will store the story by given request body
func (h *StoryHandler) Submit(c *gin.Context) {
	var req request.Story
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	st, err := h.Service.Submit(c.Request.Context(), req.ToDomain(userID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewStoryFromDomain(st))
}

func (h *StoryHandler) Delete(c *gin.Context) {
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

// Vote toggles the caller's vote
func (h *StoryHandler) Vote(c *gin.Context) {
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
