package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/c3pio89/Board/internal/comment"
	"github.com/c3pio89/Board/internal/model"
)

type signupRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type confirmRequest struct {
	Code string `json:"code" binding:"required"`
}

type newsRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Upload   string `json:"upload"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type newsletterRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func (s *Server) handleSignup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userResult, err := s.UserStore.RegisterUser(req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, userResult)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.UserStore.LoginUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// handleConfirm сохраняет введенный код, затем сверка и установка
// user_status выполняются отдельным шагом — контракт хранилища кодов
func (s *Server) handleConfirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	code, err := s.ConfirmationStore.SubmitCode(ctx, req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	if !code.Matches() {
		c.JSON(http.StatusOK, gin.H{"verified": false})
		return
	}

	code, err = s.ConfirmationStore.MarkVerified(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": code.UserStatus})
}

func (s *Server) handleListNews(c *gin.Context) {
	page := pageParam(c)

	result, err := s.NewsStore.ListNews(page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetNews(c *gin.Context) {
	result, err := s.NewsStore.GetNewsById(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.NewsStore.CreateNews(c.Request.Context(), req.Category, req.Title, req.Text, req.Upload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleUpdateNews(c *gin.Context) {
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.NewsStore.UpdateNews(c.Request.Context(), c.Param("id"), req.Category, req.Title, req.Text, req.Upload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleDeleteNews(c *gin.Context) {
	err := s.NewsStore.DeleteNewsById(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) handleCreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.CommentStore.CreateComment(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleListAcceptedComments(c *gin.Context) {
	result, err := s.CommentStore.ListAcceptedComments(c.Request.Context(), c.Param("id"), pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSearchComments(c *gin.Context) {
	var filter comment.Filter

	if after := c.Query("added_after"); after != "" {
		t, err := time.Parse(time.RFC3339, after)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "added_after must be RFC3339"})
			return
		}
		filter.CreatedAfter = &t
	}
	filter.TextContains = c.Query("text")

	result, err := s.CommentStore.SearchComments(c.Request.Context(), filter, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleAcceptComment(c *gin.Context) {
	result, err := s.CommentStore.AcceptComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleDeleteComment(c *gin.Context) {
	result, err := s.CommentStore.DeleteCommentById(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCreateNewsletter(c *gin.Context) {
	var req newsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.NewsletterStore.CreateNewsletter(c.Request.Context(), req.Title, req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// writeError переводит таксономию ошибок хранилищ в HTTP статусы
func writeError(c *gin.Context, err error) {
	var validationErr *model.ValidationError

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.As(err, &validationErr),
		errors.Is(err, model.ErrUnknownCategory),
		errors.Is(err, model.ErrCodeMismatch):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
