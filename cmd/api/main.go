package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/app"
	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	log.Info("services initialized",
		zap.Strings("strategies", a.Screener.Strategies()),
		zap.String("default_strategy", a.Screener.DefaultStrategy()),
	)

	a.Janitor.Start(ctx)
	defer a.Janitor.Stop()

	server := fiber.New(fiber.Config{
		AppName:               "Resume Screener",
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          2 * time.Minute,
		BodyLimit:             bodyLimit(cfg),
		ErrorHandler:          handlers.NewErrorHandler(log),
		DisableStartupMessage: cfg.IsProduction(),
	})

	server.Use(recover.New())
	server.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     os.Stderr,
	}))
	server.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	screenings, pages := a.Handlers()
	handlers.Register(server, screenings, pages)

	go func() {
		<-ctx.Done()
		log.Info("shutting down server")
		if err := server.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := server.Listen(addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// bodyLimit fits a full batch of maximum-size files plus form overhead.
func bodyLimit(cfg *config.Config) int {
	const formOverhead = 1 << 20
	return int(cfg.Upload.MaxFileSize)*cfg.Upload.MaxFiles + formOverhead
}
