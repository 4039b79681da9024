package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/nutricare/internal/server/services"
	"github.com/gin-gonic/gin"
)

type searchRequest struct {
	Food   string `json:"food"`
	UseAPI bool   `json:"use_api"`
}

func (s *HTTPServer) searchNutrition(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	res, err := s.svc.Nutrition.Search(c.Request.Context(), req.Food, req.UseAPI)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *HTTPServer) saveNutrition(c *gin.Context) {
	var req services.NutritionEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	rec, err := s.svc.Nutrition.Save(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "nutrition data saved", "record": rec})
}

func (s *HTTPServer) nutritionHistory(c *gin.Context) {
	items, err := s.svc.Nutrition.History(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": items})
}

func (s *HTTPServer) deleteNutrition(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "record")
		return
	}

	deleted, err := s.svc.Nutrition.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !deleted {
		notFound(c, "record")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "record deleted"})
}
