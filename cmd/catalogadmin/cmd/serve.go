package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nhalm/pgxkit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourorg/catalogadmin/internal/api"
	"github.com/yourorg/catalogadmin/internal/auth"
	"github.com/yourorg/catalogadmin/internal/repository"
	"github.com/yourorg/catalogadmin/internal/service"
	"github.com/yourorg/catalogadmin/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the server on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind the server to")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("HOST", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogger()

	addr := fmt.Sprintf("%s:%d", viper.GetString("HOST"), viper.GetInt("PORT"))

	databaseURL := viper.GetString("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	verifier, err := auth.NewVerifier(viper.GetString("JWT_SECRET"))
	if err != nil {
		return fmt.Errorf("JWT_SECRET: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	storageCfg := storageConfig()
	images, err := storage.New(ctx, storageCfg)
	if err != nil {
		return fmt.Errorf("failed to configure image storage: %w", err)
	}

	db := pgxkit.NewDB()
	if err := db.Connect(ctx, databaseURL); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Shutdown(context.Background()) }()

	// Repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// Services
	productSvc := service.NewProductService(productRepo, categoryRepo, images)
	categorySvc := service.NewCategoryService(categoryRepo)

	// Handler
	handler := api.NewHandler(productSvc, categorySvc)

	routeConfig := api.RouteConfig{
		ReadRPS:        viper.GetInt("RATE_LIMIT_READ_RPS"),
		WriteRPS:       viper.GetInt("RATE_LIMIT_WRITE_RPS"),
		MaxBodyBytes:   viper.GetInt64("MAX_REQUEST_BODY_BYTES"),
		AllowedOrigins: api.ParseAllowedOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		Verifier:       verifier,
	}
	if storageCfg.Driver == "local" {
		routeConfig.UploadsDir = storageCfg.LocalDir
		routeConfig.UploadsURLPrefix = storageCfg.LocalURLPrefix
	}

	if routeConfig.ReadRPS == 0 {
		routeConfig.ReadRPS = 100
	}
	if routeConfig.WriteRPS == 0 {
		routeConfig.WriteRPS = 20
	}
	if routeConfig.MaxBodyBytes == 0 {
		routeConfig.MaxBodyBytes = 10 << 20
	}

	srv := &http.Server{
		Addr:           addr,
		Handler:        handler.RoutesWithConfig(routeConfig),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1048576,
	}

	go func() {
		slog.Info("server starting", "addr", addr, "storage", storageCfg.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func storageConfig() storage.Config {
	return storage.Config{
		Driver:          viper.GetString("STORAGE_DRIVER"),
		LocalDir:        viper.GetString("LOCAL_UPLOAD_DIR"),
		LocalURLPrefix:  viper.GetString("LOCAL_UPLOAD_URL_PREFIX"),
		S3Region:        viper.GetString("S3_REGION"),
		S3Bucket:        viper.GetString("S3_BUCKET"),
		S3Prefix:        viper.GetString("S3_PREFIX"),
		S3PublicBaseURL: viper.GetString("S3_PUBLIC_BASE_URL"),
	}
}
