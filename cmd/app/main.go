package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"roamio/cmd/fx/cache_fx"
	"roamio/cmd/fx/controllers_fx"
	"roamio/cmd/fx/db_fx"
	"roamio/cmd/fx/discovery_fx"
	"roamio/cmd/fx/providers_fx"
	"roamio/cmd/fx/quota_fx"
	"roamio/cmd/fx/scoring_fx"
	"roamio/internal/api/controllers"
	"roamio/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		quota_fx.Module,
		providers_fx.Module,
		scoring_fx.Module,
		discovery_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	placesController *controllers.PlacesController,
	recommendationsController *controllers.RecommendationsController,
	opsController *controllers.OpsController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, placesController, recommendationsController, opsController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	placesController *controllers.PlacesController,
	recommendationsController *controllers.RecommendationsController,
	opsController *controllers.OpsController) {

	placesGroup := r.Group("/places")
	placesGroup.GET("/search", placesController.SearchPlaces)

	recommendationsGroup := r.Group("/recommendations")
	recommendationsGroup.Use(middleware.JWTAuthMiddleware())
	recommendationsGroup.GET("", recommendationsController.GetRecommendations)

	opsGroup := r.Group("/ops")
	opsGroup.GET("/usage", opsController.GetUsage)
}
