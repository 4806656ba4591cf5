package main

import (
	"context"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	stripegw "app/internal/gateway/stripe"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/notify"
	"app/internal/redisx"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

func main() {
	// .envは無ければ無いでいい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.ProductSku{},
		&model.Order{},
		&model.OrderItem{},
		&model.StripePayment{},
		&model.StockAdjustment{},
	); err != nil {
		panic(err)
	}

	//ステータスキャッシュ
	rdb := redisx.New(cfg.RedisAddr)
	cache := redisx.NewStatusCache(rdb)

	//通知イベントの発行側
	producer := notify.NewProducer(cfg.KafkaBrokers, cfg.NoticeTopic, 256)
	producer.Start(context.Background())
	notifier := notify.NewPublisher(producer, "order-api")

	//Stripe（ネットワーク呼び出しはタイムアウトつき）
	gateway := stripegw.New(cfg.StripeSecretKey, 10*time.Second)

	//Repository（GORM実装）生成
	txm := infraRepo.NewTxManagerGorm(gormDB)
	paymentRepo := infraRepo.NewPaymentGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)

	idGen := &uuidGenerator{}

	//Server（loggerをusecaseにも渡す）
	e := server.New()

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txm, cache, idGen)
	lifecycleUC := usecase.NewLifecycleUsecase(txm, cache, e.Logger)
	paymentUC := usecase.NewPaymentUsecase(txm, paymentRepo, gateway)
	webhookUC := usecase.NewWebhookUsecase(paymentRepo, lifecycleUC, notifier, e.Logger)
	stockUC := usecase.NewStockUsecase(txm)

	//時間枠切れ注文の掃除
	sweeper := usecase.NewTimeoutSweeper(orderRepo, lifecycleUC, e.Logger)
	sweeper.Start(context.Background(), time.Minute)

	//Handler生成
	orderH := handler.NewOrderHandler(orderUC, lifecycleUC)
	paymentH := handler.NewPaymentHandler(paymentUC, webhookUC)
	stockH := handler.NewStockHandler(stockUC)

	server.RegisterRoutes(e, orderH, paymentH, stockH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
