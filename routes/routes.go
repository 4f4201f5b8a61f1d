package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/itz-me-mohammed/CalTrack/controllers"
	"github.com/itz-me-mohammed/CalTrack/middlewares"
)

type Controllers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Meal     *controllers.MealController
	History  *controllers.HistoryController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", ctrl.User.GetProfile)
		user.PUT("/profile", ctrl.User.UpdateProfile)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("/photo", ctrl.Meal.LogMealPhoto)
		meals.POST("/text", ctrl.Meal.LogMealText)
		meals.GET("/history", ctrl.History.History)
		meals.GET("/dashboard", ctrl.History.Dashboard)
		meals.DELETE("/:id", ctrl.Meal.DeleteMeal)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/meals", ctrl.Realtime.MealEventsWS)
	}

	return r
}
