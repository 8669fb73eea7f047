package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brewlog/internal/ai"
	"brewlog/internal/handlers"
	"brewlog/internal/logger"
	"brewlog/internal/repository"
	"brewlog/internal/server"
	"brewlog/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// load config.yml first so the log level comes from it
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// uploads directory for brew photos
	uploadsDir := viper.GetString("uploads.dir")
	if uploadsDir != "" {
		if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
			log.Fatalw("failed to create uploads dir", "dir", uploadsDir, "err", err)
		}
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, newVisionClient(log), viper.GetString("auth.signing_key"))
	apiHandler := handlers.NewHandler(services, log, uploadsDir)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "brewlog.db")
		dbPath = "brewlog.db"
	}
	return repository.InitDB(dbPath)
}

// newVisionClient builds the AI client when a key is configured; bag
// scanning stays disabled otherwise.
func newVisionClient(log *logger.Logger) *ai.Client {
	apiKey := viper.GetString("ai.api_key")
	if apiKey == "" {
		log.Infow("ai.api_key not set; bag scanning disabled")
		return nil
	}
	client, err := ai.NewClient(ai.Config{
		APIKey:  apiKey,
		Model:   viper.GetString("ai.model"),
		BaseURL: viper.GetString("ai.base_url"),
	})
	if err != nil {
		log.Fatalw("failed to init vision client", "err", err)
	}
	return client
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
