package main

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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"uidkit/cmd"
	httpadapter "uidkit/internal/adapters/in/http"
	"uidkit/internal/adapters/out/postgres/issuancerepo"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := newLogger(configs)

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func newLogger(configs cmd.Config) *slog.Logger {
	level, _ := configs.SlogLevel()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&issuancerepo.IssuanceDTO{}); err != nil {
		return nil, fmt.Errorf("migrate issuances: %w", err)
	}

	return db, nil
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	httpadapter.RegisterHandlers(e, app.CreateHTTPServer())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}
