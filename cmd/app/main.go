package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"toursync/cmd/fx/arctic_fx"
	"toursync/cmd/fx/controllers_fx"
	"toursync/cmd/fx/db_fx"
	"toursync/cmd/fx/outline_fx"
	"toursync/cmd/fx/sync_fx"
	"toursync/cmd/fx/tours_fx"
	"toursync/internal/api/controllers"
	"toursync/internal/services"
	"toursync/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading config from environment")
	}

	app := fx.New(
		db_fx.Module,
		outline_fx.Module,
		arctic_fx.Module,
		tours_fx.Module,
		sync_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.Invoke(StartScheduler),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
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

func StartScheduler(lc fx.Lifecycle, scheduler *services.SyncScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

func ProvideRouter(
	toursController *controllers.ToursController,
	syncController *controllers.SyncController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, toursController, syncController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	toursController *controllers.ToursController,
	syncController *controllers.SyncController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	toursGroup := r.Group("/tours")
	toursGroup.GET("", toursController.ListTours)
	toursGroup.GET("/:code", toursController.GetTour)
	toursGroup.GET("/:code/availability", toursController.GetAvailability)
	toursGroup.GET("/:code/pricing", toursController.GetPricing)

	r.GET("/sync-status", syncController.SyncStatus)
	r.POST("/sync-now",
		middleware.SyncAuthMiddleware(os.Getenv("SYNC_TOKEN_HASH")),
		syncController.SyncNow)
}
