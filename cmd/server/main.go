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

	"github.com/Vovarama1992/go-utils/logger"
	"go.uber.org/zap"

	"github.com/Vovarama1992/receipt_uploader/internal/config"
	"github.com/Vovarama1992/receipt_uploader/internal/delivery"
	"github.com/Vovarama1992/receipt_uploader/internal/domain"
	"github.com/Vovarama1992/receipt_uploader/internal/error_notificator"
	"github.com/Vovarama1992/receipt_uploader/internal/infra"
)

const shutdownTimeout = 10 * time.Second

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store := infra.NewObjectStore(cfg.S3)

	notifyInfra, err := error_notificator.NewTelegramInfra(cfg.TelegramToken, cfg.TelegramAdminChat)
	if err != nil {
		log.Fatalf("failed to init notifier: %v", err)
	}
	errService := error_notificator.NewService(notifyInfra)

	// =========================================================================
	// DOMAIN / HTTP
	// =========================================================================

	receiptService := domain.NewReceiptService(store, config.EnvBucket(), errService, zl)

	validator, err := delivery.NewOrderValidator()
	if err != nil {
		log.Fatalf("order schema: %v", err)
	}

	r := delivery.NewRouter(
		delivery.NewReceiptHandler(receiptService, validator, zl),
		cfg.RateLimitPerMinute,
	)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at " + addr,
			Service: "receipt_uploader",
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
