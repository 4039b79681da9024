package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/nutricare/internal/server/models"
	"github.com/gin-gonic/gin"
)

// pathID parses the :id segment. Malformed ids answer 404, the same as an
// id that does not exist.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *HTTPServer) listReminders(c *gin.Context) {
	items, err := s.svc.Reminders.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reminders": items})
}

func (s *HTTPServer) createReminder(c *gin.Context) {
	var req models.Reminder
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	r, err := s.svc.Reminders.Create(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reminder": r})
}

func (s *HTTPServer) deleteReminder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		notFound(c, "reminder")
		return
	}

	deleted, err := s.svc.Reminders.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !deleted {
		notFound(c, "reminder")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}
