package server

import (
	"github.com/gin-gonic/gin"

	"github.com/c3pio89/Board/internal/auth"
	"github.com/c3pio89/Board/internal/comment"
	"github.com/c3pio89/Board/internal/confirmation"
	"github.com/c3pio89/Board/internal/news"
	"github.com/c3pio89/Board/internal/newsletter"
	"github.com/c3pio89/Board/internal/user"
)

// Server — корневая точка HTTP API, сюда внедряются хранилища
type Server struct {
	NewsStore         news.NewsStorage
	CommentStore      comment.CommentStorage
	UserStore         user.UserStorage
	NewsletterStore   newsletter.NewsletterStorage
	ConfirmationStore confirmation.ConfirmationStorage
}

func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(auth.Middleware())

	router.POST("/signup", s.handleSignup)
	router.POST("/login", s.handleLogin)
	router.POST("/confirm", s.handleConfirm)

	router.GET("/news", s.handleListNews)
	router.GET("/news/:id", s.handleGetNews)
	router.POST("/news", s.handleCreateNews)
	router.PUT("/news/:id", s.handleUpdateNews)
	router.DELETE("/news/:id", s.handleDeleteNews)

	router.GET("/news/:id/comments", s.handleListAcceptedComments)
	router.POST("/news/:id/comments", s.handleCreateComment)

	// очередь модерации автора
	router.GET("/comments", s.handleSearchComments)
	router.POST("/comments/:id/accept", s.handleAcceptComment)
	router.DELETE("/comments/:id", s.handleDeleteComment)

	router.POST("/newsletters", s.handleCreateNewsletter)

	return router
}
