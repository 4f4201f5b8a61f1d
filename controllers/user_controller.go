package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itz-me-mohammed/CalTrack/middlewares"
	"github.com/itz-me-mohammed/CalTrack/services"
)

type UserController struct {
	auth *services.AuthService
}

func NewUserController(auth *services.AuthService) *UserController {
	return &UserController{auth: auth}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	sess := middlewares.CurrentSession(c)

	user, err := uc.auth.FindUserByID(sess.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type ProfileInput struct {
	DisplayName string `json:"display_name" binding:"required"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := middlewares.CurrentSession(c)
	user, err := uc.auth.UpdateProfile(sess.UserID, input.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
