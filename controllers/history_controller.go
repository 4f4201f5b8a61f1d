package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itz-me-mohammed/CalTrack/middlewares"
	"github.com/itz-me-mohammed/CalTrack/services"
)

type HistoryController struct {
	history *services.HistoryService
}

func NewHistoryController(history *services.HistoryService) *HistoryController {
	return &HistoryController{history: history}
}

// GET /meals/history?period=week|month|all
func (hc *HistoryController) History(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	period := services.ParsePeriod(c.Query("period"))

	days, err := hc.history.History(c.Request.Context(), sess.UserID, period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"period": period, "days": days})
}

// GET /meals/dashboard
func (hc *HistoryController) Dashboard(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	stats, meals, err := hc.history.Dashboard(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"today": stats, "meals": meals})
}
