package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minorebarber/booking-api/internal/config"
	dbpkg "github.com/minorebarber/booking-api/internal/db"
	"github.com/minorebarber/booking-api/internal/middleware"
	"github.com/minorebarber/booking-api/internal/routes"
	"github.com/minorebarber/booking-api/internal/sweeper"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	dbpkg.Seed(db, cfg)

	deps := routes.NewDeps(db, cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestIDMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, deps)

	sweeper.New(deps.Sweep, deps.Exporter, cfg.SweepHour).Start(context.Background())

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
