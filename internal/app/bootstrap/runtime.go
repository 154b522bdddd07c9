package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	cacheadapter "github.com/viralforge/marketplace/internal/adapters/cache"
	eventadapter "github.com/viralforge/marketplace/internal/adapters/events"
	httpadapter "github.com/viralforge/marketplace/internal/adapters/http"
	"github.com/viralforge/marketplace/internal/adapters/marketclient"
	"github.com/viralforge/marketplace/internal/adapters/memory"
	"github.com/viralforge/marketplace/internal/adapters/postgres"
	"github.com/viralforge/marketplace/internal/adapters/security"
	"github.com/viralforge/marketplace/internal/application"
	"github.com/viralforge/marketplace/internal/ports"
	"github.com/viralforge/marketplace/internal/reports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	outbox     *eventadapter.OutboxWorker
	cleanupFn  func(context.Context)
}

// NewRuntime assembles the marketplace process. With no postgres URL the
// engine runs on the in-memory store, with no redis URL report caching runs
// in process, and with no kafka brokers outbox delivery goes to the logging
// publisher. That keeps a single binary usable from laptop to production.
func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var closers []io.Closer

	var (
		userRepo    ports.UserRepository
		productRepo ports.ProductRepository
		orderRepo   ports.OrderRepository
		outboxRepo  ports.OutboxRepository
	)
	if cfg.DatabaseURL != "" {
		db, dbErr := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if dbErr != nil {
			return nil, dbErr
		}
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, dbErr
		}
		if dbErr := postgres.RunMigrations(ctx, db); dbErr != nil {
			_ = sqlDB.Close()
			return nil, dbErr
		}
		closers = append(closers, sqlDB)
		repos := postgres.NewRepositories(db)
		userRepo, productRepo, orderRepo, outboxRepo = repos.Users, repos.Products, repos.Orders, repos.Outbox
	} else {
		logger.InfoContext(ctx, "no postgres url configured, using in-memory store")
		store := memory.NewStore()
		userRepo, productRepo, orderRepo = store.Users(), store.Products(), store.Orders()
		outboxRepo = memory.NewOutboxRepository()
	}

	service := application.NewService(application.Dependencies{
		Config:   application.Config{ServiceName: cfg.ServiceID},
		Users:    userRepo,
		Products: productRepo,
		Orders:   orderRepo,
		Outbox:   outboxRepo,
	})

	var reportCache ports.Cache
	if cfg.RedisURL != "" {
		redisClient, redisErr := cacheadapter.Connect(ctx, cfg.RedisURL)
		if redisErr != nil {
			cleanup(closers)
			return nil, redisErr
		}
		closers = append(closers, redisClient)
		reportCache = cacheadapter.NewRedisCache(redisClient)
	} else {
		reportCache = cacheadapter.NewMemoryCache()
	}

	var readPort ports.MarketReadPort = service
	upstream := "in-process"
	if cfg.ReportsUpstream != "" {
		readPort = marketclient.New(cfg.ReportsUpstream)
		upstream = cfg.ReportsUpstream
	}
	reportsSvc := reports.NewService(reports.Config{
		Upstream: upstream,
		CacheTTL: cfg.ReportCacheTTL,
	}, readPort, reportCache)

	verifier, err := security.NewJWTVerifier(cfg.JWTSecret)
	if err != nil {
		cleanup(closers)
		return nil, err
	}

	handler := httpadapter.NewHandler(logger, service, reportsSvc, verifier)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		cleanup(closers)
		return nil, err
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"marketplace.role_changed":      cfg.KafkaTopicRoleChanged,
			"marketplace.product_published": cfg.KafkaTopicProductPublished,
			"marketplace.buyer_rated":       cfg.KafkaTopicBuyerRated,
			"marketplace.seller_rated":      cfg.KafkaTopicSellerRated,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, outboxRepo, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		outbox:     outbox,
		cleanupFn: func(context.Context) {
			cleanup(closers)
		},
	}, nil
}

func cleanup(closers []io.Closer) {
	for _, closer := range closers {
		_ = closer.Close()
	}
}

// RunAPI serves HTTP and gRPC health alongside the outbox delivery loop
// until the context is cancelled or a signal arrives.
func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 3)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()
	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	r.cleanupFn(shutdownCtx)
	return nil
}

// RunWorker runs outbox delivery only, for deployments that split the
// delivery loop out of the API process.
func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := r.outbox.Run(ctx)
	r.cleanupFn(context.Background())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
