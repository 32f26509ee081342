package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adboard/internal/ad"
	"adboard/internal/app"
	"adboard/internal/category"
	elastic "adboard/internal/elastic_search"
	"adboard/internal/etl"
	handlersAd "adboard/internal/handlers/ad"
	handlersCategory "adboard/internal/handlers/category"
	handlersUser "adboard/internal/handlers/user"
	"adboard/internal/kafka"
	"adboard/internal/middleware"
	"adboard/internal/session"
	"adboard/internal/storage"
	"adboard/internal/user"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v8"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	_ "github.com/lib/pq"
)

const (
	cfgPath         = "config/config.yaml"
	shutdownTimeout = 10 * time.Second
)

func main() {
	// init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	logger := zapLogger.Sugar()
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			logger.Warnf("error to sync logger: %v", err)
		}
	}()

	// парсим конфиг
	c, err := app.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("error to parsing config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// init db
	db, err := sql.Open("postgres", c.CfgDB.DSN())
	if err != nil {
		logger.Fatalf("error to database start: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(c.MaxOpenConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Infof("Failed to get response to ping: %v", err)
	}

	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     c.CfgRedis.Addr,
		Password: c.CfgRedis.Password,
		DB:       c.CfgRedis.DB,
	})
	defer redisClient.Close()

	// init elasticsearch
	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: c.CfgES.Addresses,
	})
	if err != nil {
		logger.Fatalf("error to create elasticsearch client: %v", err)
	}
	searchService := elastic.NewService(esClient, logger, c.CfgES.Index)

	esCtx, esCancel := context.WithTimeout(ctx, 15*time.Second)
	if err := searchService.EnsureIndex(esCtx); err != nil {
		logger.Warnf("failed to ensure search index: %v", err)
	}
	esCancel()

	// init s3
	imageStorage, err := storage.NewS3Storage(c.CfgS3, logger)
	if err != nil {
		logger.Fatalf("error to create s3 storage: %v", err)
	}

	// init kafka, без брокеров события просто не отправляются
	var events kafka.EventProducer
	if len(c.CfgKafka.Brokers) > 0 {
		producer := kafka.NewProducer(c.CfgKafka.Brokers, c.CfgKafka.Topic, logger)
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warnf("error to close kafka producer: %v", err)
			}
		}()
		events = producer
	}

	// init repository
	userRepository := user.NewUserDBRepository(db, logger)
	sessionRepository := session.NewSessionRepository(redisClient, logger, c.Secret, c.SessionDuration)
	adRepository := ad.NewAdDBRepository(db, logger)
	categoryRepository := category.NewCategoryDBRepository(db, logger)

	// init etl
	pipeline := etl.NewPipeline(
		etl.NewPostgresExtractor(db, logger),
		etl.NewTransformer(logger),
		etl.NewElasticLoader(searchService, logger, db),
		logger,
		c.ETLInterval,
	)

	// init handlers
	userHandlers := handlersUser.NewUserHandler(logger, userRepository, sessionRepository)
	categoryHandlers := handlersCategory.NewCategoryHandler(logger, categoryRepository)
	adHandlers := handlersAd.NewAdHandler(
		logger,
		adRepository,
		imageStorage,
		events,
		searchService,
		c.PageSize,
		c.MaxImageSize,
	)

	// init router
	r := newRouter(routeDeps{
		Ads:          adHandlers,
		Categories:   categoryHandlers,
		Users:        userHandlers,
		Sessions:     sessionRepository,
		ExtendWithin: c.SessionDuration / 2,
		Logger:       logger,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: c.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	chain := alice.New(
		middleware.RecoverPanic(logger),
		middleware.LogRequest(logger),
		middleware.SecureHeaders,
		corsHandler.Handler,
	)

	srv := &http.Server{
		Addr:         c.ServerPort,
		Handler:      chain.Then(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ln, err := net.Listen("tcp", c.ServerPort)
	if err != nil {
		logger.Fatalf("can't listen on %s: %v", c.ServerPort, err)
	}
	if c.MaxConns > 0 {
		ln = netutil.LimitListener(ln, c.MaxConns)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infow("starting server",
			"type", "START",
			"addr", c.ServerPort,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		pipeline.Run(gCtx)
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Infow("shutting down server", "type", "STOP")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("server stopped with error: %v", err)
	}
}
