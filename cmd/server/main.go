package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"order-processor/internal/config"
	"order-processor/internal/controllers/http"
	"order-processor/internal/infra"
	"order-processor/internal/infra/kafka"
	mmysql "order-processor/internal/infra/mysql"
	"order-processor/internal/infra/rabbitmq"
	"order-processor/internal/logger"
	"order-processor/internal/repository"
	firestorerepo "order-processor/internal/repository/firestore"
	memoryrepo "order-processor/internal/repository/memory"
	mysqlrepo "order-processor/internal/repository/mysql"
	redisrepo "order-processor/internal/repository/redis"
	"order-processor/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.LogMode); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("order service stopped", "err", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	repo, closeRepo, err := newRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("store %s: %w", cfg.Store, err)
	}
	defer closeRepo()

	publisher, closePublisher, err := newPublisher(cfg)
	if err != nil {
		return fmt.Errorf("events %s: %w", cfg.Events, err)
	}
	defer closePublisher()

	s := services.NewOrderService(repo, services.NewRandomIDGenerator(), publisher)

	gin.SetMode(gin.ReleaseMode)
	r := http.NewRouter(http.NewHandler(s, cfg.IsLocal()))

	srv := &nethttp.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting order service", "port", cfg.HTTPPort, "store", cfg.Store, "events", cfg.Events)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down order service")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newRepository(ctx context.Context, cfg *config.Config) (repository.OrderRepository, func(), error) {
	switch cfg.Store {
	case config.StoreFirestore:
		repo, err := firestorerepo.NewOrderRepository(ctx, firestorerepo.Config{
			ProjectID:  cfg.FirestoreProject,
			Collection: cfg.FirestoreCollection,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, closer("firestore", repo), nil

	case config.StoreMySQL:
		db, err := mmysql.NewMySQL(cfg.MySQL)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.NewOrderRepository(db), closer("mysql", sqlDB), nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return redisrepo.NewOrderRepository(client, cfg.RedisKeyPrefix), closer("redis", client), nil

	default:
		logger.Warn("no managed store configured, orders are kept in memory only")
		return memoryrepo.NewOrderRepository(), func() {}, nil
	}
}

func newPublisher(cfg *config.Config) (infra.EventPublisher, func(), error) {
	switch cfg.Events {
	case config.EventsRabbitMQ:
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, nil, err
		}
		return p, closer("rabbitmq", p), nil

	case config.EventsKafka:
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, closer("kafka", p), nil

	default:
		return infra.NopPublisher{}, func() {}, nil
	}
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "component", name, "err", err)
		}
	}
}
