package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/go-clean-forum/domain"
	"github.com/Guyuepp/go-clean-forum/internal/rest/middleware"
)

// Services bundles the usecases the HTTP layer serves.
type Services struct {
	Stories  domain.StoryUsecase
	Comments domain.CommentUsecase
	Users    domain.UserUsecase
	Tags     domain.TagUsecase
	Messages domain.MessageUsecase
}

// RegisterRoutes mounts every endpoint. Reads identify the viewer when a token is sent; writes require one.
func RegisterRoutes(route gin.IRouter, svc Services, tokens middleware.TokenParser) {
	storyHandler := NewStoryHandler(svc.Stories)
	commentHandler := NewCommentHandler(svc.Comments)
	userHandler := NewUserHandler(svc.Users)
	tagHandler := NewTagHandler(svc.Tags)
	messageHandler := NewMessageHandler(svc.Messages)

	route.POST("/register", userHandler.Register)
	route.POST("/login", userHandler.Login)

	public := route.Group("/")
	public.Use(middleware.OptionalAuth(tokens))
	{
		public.GET("/", storyHandler.FetchHottest)
		public.GET("/hottest", storyHandler.FetchHottest)
		public.GET("/newest", storyHandler.FetchNewest)
		public.GET("/t/:tag", storyHandler.FetchTagged)
		public.GET("/tags", tagHandler.Fetch)
		public.GET("/s/:short_url", storyHandler.GetByShortURL)
		public.GET("/comments", commentHandler.FetchRecent)
		public.GET("/c/:short_url", commentHandler.GetComment)
		public.GET("/u/:username", userHandler.Profile)
	}

	authorized := route.Group("/")
	authorized.Use(middleware.AuthMiddleware(tokens))
	{
		authorized.POST("/s", storyHandler.Submit)
		authorized.DELETE("/s/:short_url", storyHandler.Delete)
		authorized.POST("/s/:short_url/vote", storyHandler.Vote)

		authorized.POST("/c", commentHandler.CreateComment)
		authorized.POST("/c/:short_url/vote", commentHandler.VoteComment)
		authorized.DELETE("/c/:short_url", commentHandler.DeleteComment)

		authorized.GET("/messages", messageHandler.Inbox)
		authorized.GET("/messages/sent", messageHandler.Outbox)
		authorized.POST("/messages", messageHandler.Send)
		authorized.GET("/messages/:short_id", messageHandler.Get)
		authorized.DELETE("/messages/:short_id", messageHandler.Delete)
	}
}
