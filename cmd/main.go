package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/pathwise/compass/internal/api/v1/handlers"
	"github.com/pathwise/compass/internal/api/v1/middleware"
	"github.com/pathwise/compass/internal/config"
	"github.com/pathwise/compass/internal/connections"
	"github.com/pathwise/compass/internal/logger"
	"github.com/pathwise/compass/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	logger.Init()

	svc, err := services.InitializeServices()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}
	defer svc.Close()

	manager := connections.NewManager(connections.DefaultTimeouts)
	router := setupRouter(svc, manager)

	server := &http.Server{
		Addr:              config.GetListenAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Int("open_sockets", manager.Count()).Msg("Shutting down")
	manager.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func setupRouter(svc *services.Services, manager *connections.Manager) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS(config.GetAllowedOrigins()))
	r.Use(middleware.RateLimit("global"))
	r.HandleFunc("/healthz", handlers.HandleHealth).Methods("GET")
	handlers.RegisterV1Routes(r, svc, manager)
	return r
}
