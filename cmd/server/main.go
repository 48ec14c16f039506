// Package main initializes and starts the departamento-del-agua API server,
// setting up configuration, logging, database connections, repositories,
// services and handlers.
package main

import (
	"fmt"

	nethttp "net/http"

	"github.com/santi-esquerre/departamento-del-agua-api/internal/config"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/db"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/logger"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/repository"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/server/handler/http"
	"github.com/santi-esquerre/departamento-del-agua-api/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is required (flag -s or JWT_SECRET)")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	personalRepo := repository.NewPostgresPersonalRepository(postgresDB)
	archivoRepo := repository.NewPostgresArchivoRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, []byte(options.JWTSecret))
	personalService := service.NewPersonalService(personalRepo)
	archivoService, err := service.NewArchivoService(archivoRepo, options.UploadDir)
	if err != nil {
		zapLogger.Fatal("cannot init upload storage", zap.Error(err))
	}

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	personalHandler := &http.PersonalHandler{PersonalService: personalService}
	archivoHandler := &http.ArchivoHandler{ArchivoService: archivoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, personalHandler, archivoHandler,
		authService, options.UploadDir, zapLogger)

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := nethttp.ListenAndServe(options.Port, router); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// orDefault returns s if non-empty, otherwise def. It stands in for
// cmp.Or, which requires Go 1.22; the build toolchain is Go 1.21.
func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
