package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shoppingsystem/catalog/app"
	"github.com/shoppingsystem/catalog/app/categories"
	"github.com/shoppingsystem/catalog/app/products"
	"github.com/shoppingsystem/catalog/app/web"
	"github.com/shoppingsystem/catalog/models"
	"github.com/shoppingsystem/catalog/pkg/config"
	"github.com/shoppingsystem/catalog/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Product and category administration backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the category and product tables",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command failed", "command", os.Args[1:], "error", err)
		os.Exit(1)
	}
}

// setup loads config, starts logging and opens the database. The returned
// func closes the connection pool.
func setup() (*config.Config, *gorm.DB, func(), error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := models.NewDatabase(models.DatabaseConfig{
		Driver:   cfg.DB.Driver,
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		Path:     cfg.DB.Path,
		Debug:    !cfg.IsProduction() && cfg.Log.Level == "debug",
	})
	if err != nil {
		return nil, nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}
	return cfg, db, closeDB, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, db, closeDB, err := setup()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Database migrated", "driver", cfg.DB.Driver)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, db, closeDB, err := setup()
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.DB.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	categoryRepo := models.NewCategoriesRepository(db)
	productRepo := models.NewProductsRepository(db)

	view := web.JSONRenderer{}
	flash := web.NewCookieFlash(cfg.Flash.Secret, cfg.Flash.TTL, cfg.IsProduction())

	handler := app.NewRouter(
		categories.NewCategoryHandler(categoryRepo, productRepo, flash, view),
		products.NewProductHandler(productRepo, categoryRepo, flash, view),
		app.NewHealthHandler(sqlDB),
		view,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "name", cfg.App.Name, "addr", srv.Addr, "env", cfg.App.Env)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
