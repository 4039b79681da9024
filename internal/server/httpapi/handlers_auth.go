package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *HTTPServer) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	user, err := s.svc.Users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	tokens, err := s.svc.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (s *HTTPServer) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	if req.RefreshToken == "" {
		badRequest(c, "refresh_token is required")
		return
	}

	tokens, err := s.svc.Users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (s *HTTPServer) logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	if req.RefreshToken == "" {
		badRequest(c, "refresh_token is required")
		return
	}

	if err := s.svc.Users.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *HTTPServer) profile(c *gin.Context) {
	user, err := s.svc.Users.Profile(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *HTTPServer) dashboardStats(c *gin.Context) {
	stats, err := s.svc.Stats.Dashboard(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
