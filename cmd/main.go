package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/itz-me-mohammed/CalTrack/config"
	"github.com/itz-me-mohammed/CalTrack/controllers"
	"github.com/itz-me-mohammed/CalTrack/routes"
	"github.com/itz-me-mohammed/CalTrack/services"
	"github.com/itz-me-mohammed/CalTrack/utils"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	db := config.InitDB()

	var photos services.PhotoStore
	if os.Getenv("S3_BUCKET") != "" {
		store, err := utils.NewS3Store(context.Background())
		if err != nil {
			log.Fatalf("failed to init S3: %v", err)
		}
		photos = store
	} else {
		sugar.Warnw("S3_BUCKET not set, meal photos will not be stored")
	}

	hub := services.NewRealtimeHub()
	authSvc := services.NewAuthService(db)
	mealSvc := services.NewMealService(db,
		services.NewClarifaiService(),
		services.NewNutritionixService(),
		photos, hub, sugar,
	)
	historySvc := services.NewHistoryService(db)

	r := routes.SetupRouter(routes.Controllers{
		Auth:     controllers.NewAuthController(authSvc),
		User:     controllers.NewUserController(authSvc),
		Meal:     controllers.NewMealController(mealSvc),
		History:  controllers.NewHistoryController(historySvc),
		Realtime: controllers.NewRealtimeController(hub),
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	sugar.Infow("starting server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
