package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/SergeyBogomolovv/exchange-ledger/docs"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/app"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/config"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/events"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/handler"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/postgres"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/repo"
	"github.com/SergeyBogomolovv/exchange-ledger/internal/service"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/cache"
	"github.com/SergeyBogomolovv/exchange-ledger/pkg/trm"

	"github.com/joho/godotenv"
)

// ledgerStore реализуют оба хранилища, postgres и memory
type ledgerStore interface {
	service.OrderRepo
	service.BidRepo
	service.StatsRepo
}

// @title           Exchange Ledger API
// @version         1.0
// @description     Документация HTTP API
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var (
		store     ledgerStore
		txManager trm.Manager
	)
	switch conf.Storage {
	case config.StorageMemory:
		mem := repo.NewMemoryRepo(repo.WithLockTimeout(conf.Postgres.LockTimeout))
		store, txManager = mem, mem
		logger.Warn("using in-memory storage, data will be lost on restart")
	default:
		db, err := postgres.New(ctx, conf.Postgres)
		panicIfErr("failed to connect to db", err)
		defer db.Close()
		logger.Info("postgres connected")

		store = repo.NewPostgresRepo(db, conf.Postgres.LockTimeout)
		txManager = trm.NewManager(db)
	}

	orderCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	var publisher service.EventPublisher = service.NopPublisher{}
	application := app.New(logger, conf)

	if conf.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(logger, conf.Kafka)
		publisher = kafkaPublisher
		application.SetClosers(kafkaPublisher)
	}

	orderService := service.NewOrderService(logger, txManager, store, store, orderCache, publisher)
	bidService := service.NewBidService(logger, txManager, store, store, publisher)
	matchingEngine := service.NewMatchingEngine(logger, txManager, store, store, orderCache, publisher)
	viewService := service.NewViewService(store, store, store)

	handler.RegisterMetrics()
	httpHandler := handler.NewHTTPHandler(logger, orderService, bidService, matchingEngine, viewService)
	application.SetHTTPHandlers(httpHandler)

	if conf.Kafka.Enabled {
		kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService, bidService, matchingEngine)
		application.SetConsumers(kafkaHandler)
	}

	application.SetStarters(orderCache, cacheWarmUpAdapter{svc: orderService, count: conf.Cache.Capacity})

	panicIfErr("failed to start app", application.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", application.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type warmUpper interface {
	WarmUpCache(ctx context.Context, count int) error
}

type cacheWarmUpAdapter struct {
	svc   warmUpper
	count int
}

func (a cacheWarmUpAdapter) Start(ctx context.Context) error {
	return a.svc.WarmUpCache(ctx, a.count)
}
