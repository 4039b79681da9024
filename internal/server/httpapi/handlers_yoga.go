package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/nutricare/internal/common"
	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/gin-gonic/gin"
)

type saveYogaRequest struct {
	Poses *[]models.YogaPose `json:"poses"`
}

func (s *HTTPServer) yogaPoses(c *gin.Context) {
	doc, err := s.svc.Yoga.Poses(c.Request.Context(), c.Query("mode"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *HTTPServer) saveYoga(c *gin.Context) {
	var req saveYogaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}
	if req.Poses == nil {
		s.writeError(c, &common.MissingFieldError{Field: "poses"})
		return
	}

	n, err := s.svc.Yoga.Save(c.Request.Context(), *req.Poses)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "yoga poses cached", "count": n})
}

func (s *HTTPServer) yogaHistory(c *gin.Context) {
	poses, err := s.svc.Yoga.History(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"poses": poses})
}
