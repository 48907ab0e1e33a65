package main

import (
	"log"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/Vovarama1992/receipt_uploader/internal/config"
	"github.com/Vovarama1992/receipt_uploader/internal/delivery"
	"github.com/Vovarama1992/receipt_uploader/internal/domain"
	"github.com/Vovarama1992/receipt_uploader/internal/error_notificator"
	"github.com/Vovarama1992/receipt_uploader/internal/infra"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// клиент создаётся лениво и живёт между вызовами одного инстанса
	store := infra.NewObjectStore(cfg.S3)

	notifyInfra, err := error_notificator.NewTelegramInfra(cfg.TelegramToken, cfg.TelegramAdminChat)
	if err != nil {
		log.Fatalf("failed to init notifier: %v", err)
	}

	receiptService := domain.NewReceiptService(
		store,
		config.EnvBucket(),
		error_notificator.NewService(notifyInfra),
		zl,
	)

	validator, err := delivery.NewOrderValidator()
	if err != nil {
		log.Fatalf("order schema: %v", err)
	}

	lambda.Start(delivery.NewLambdaHandler(receiptService, validator, zl).Handle)
}
