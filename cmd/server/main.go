package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/feb_ecommerce/internal/config"
	"github.com/Skotchmaster/feb_ecommerce/internal/db"
	"github.com/Skotchmaster/feb_ecommerce/internal/httpserver"
	"github.com/Skotchmaster/feb_ecommerce/internal/logging"
	loggingmw "github.com/Skotchmaster/feb_ecommerce/internal/middleware/logging"
	"github.com/Skotchmaster/feb_ecommerce/internal/mykafka"
	"github.com/Skotchmaster/feb_ecommerce/internal/repo"
	"github.com/Skotchmaster/feb_ecommerce/internal/service"
	"github.com/Skotchmaster/feb_ecommerce/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var publisher service.Publisher = mykafka.Nop{}
	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		topicCtx, topicCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := mykafka.EnsureTopics(topicCtx, cfg.KafkaBrokers[0], mykafka.Topics...); err != nil {
			logger.Warn("kafka_topics_failed", "brokers", cfg.KafkaBrokers, "error", err)
		}
		topicCancel()

		producer = mykafka.NewProducer(cfg.KafkaBrokers)
		publisher = producer
	} else {
		logger.Info("kafka disabled, events are dropped")
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Repo:      r,
		Tokens:    tokens.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Publisher: publisher,
	}
	productSvc := &service.ProductService{
		Repo:      r,
		Admins:    authSvc,
		Publisher: publisher,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: productSvc},
		JWTSecret:      cfg.JWTSecret,
		DB:             gdb,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka close", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db close", "error", err)
	}

	logger.Info("shutdown complete")
}
