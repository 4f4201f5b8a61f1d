package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itz-me-mohammed/CalTrack/middlewares"
	"github.com/itz-me-mohammed/CalTrack/services"
)

type MealController struct {
	meals *services.MealService
}

func NewMealController(meals *services.MealService) *MealController {
	return &MealController{meals: meals}
}

type PhotoLogInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /meals/photo
func (mc *MealController) LogMealPhoto(c *gin.Context) {
	var input PhotoLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	sess := middlewares.CurrentSession(c)
	result, err := mc.meals.LogFromPhoto(c.Request.Context(), sess.UserID, input.ImageBase64)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(statusForResult(result), result)
}

type TextLogInput struct {
	Query string `json:"query" binding:"required"`
}

// POST /meals/text
func (mc *MealController) LogMealText(c *gin.Context) {
	var input TextLogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	sess := middlewares.CurrentSession(c)
	result, err := mc.meals.LogFromText(c.Request.Context(), sess.UserID, input.Query)
	if err != nil {
		respondPipelineError(c, err)
		return
	}
	c.JSON(statusForResult(result), result)
}

// DELETE /meals/:id
func (mc *MealController) DeleteMeal(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meal id"})
		return
	}

	sess := middlewares.CurrentSession(c)
	if err := mc.meals.Delete(c.Request.Context(), sess.UserID, mealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "meal deleted"})
}

func statusForResult(r *services.LogResult) int {
	if r.Status == services.StatusSaved {
		return http.StatusCreated
	}
	return http.StatusOK
}

// respondPipelineError maps the service error taxonomy onto HTTP statuses.
// External failures carry a fallback hint so the client can switch the user
// to manual entry instead of treating the capture as dead.
func respondPipelineError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var externalErr *services.ExternalServiceError
	var persistErr *services.PersistenceError

	switch {
	case errors.Is(err, services.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &externalErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": externalErr.Error(), "fallback": "manual"})
	case errors.As(err, &persistErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": persistErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
