package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tnqbao/gau-sequia-service/config"
	"github.com/tnqbao/gau-sequia-service/http/controller"
	"github.com/tnqbao/gau-sequia-service/http/route"
	infraPkg "github.com/tnqbao/gau-sequia-service/infra"
	"github.com/tnqbao/gau-sequia-service/repository"
	"github.com/tnqbao/gau-sequia-service/service"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	if err := cfg.EnvConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.EnvConfig.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	infra := infraPkg.InitInfra(cfg)
	if err := repository.AutoMigrate(infra.Database.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	repo := repository.InitRepository(infra)
	svc := service.InitService(repo)
	ctrl := controller.NewController(cfg, infra, repo, svc)

	router := routes.SetupRouter(ctrl)

	server := &http.Server{
		Addr:              cfg.EnvConfig.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("HTTP Server started on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown: %v", err)
	}
	if err := infra.Close(shutdownCtx); err != nil {
		log.Printf("Infra shutdown: %v", err)
	}
}
