package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"surety/internal/callertoken"
	"surety/internal/events"
	"surety/internal/events/outbox"
	eventsmemory "surety/internal/events/store/memory"
	eventspostgres "surety/internal/events/store/postgres"
	"surety/internal/platform/config"
	"surety/internal/platform/httpserver"
	"surety/internal/platform/kafka/producer"
	"surety/internal/platform/logger"
	httpmetrics "surety/internal/platform/metrics"
	"surety/internal/platform/postgres"
	"surety/internal/platform/redis"
	"surety/internal/ratelimit"
	"surety/internal/surety/handler"
	suretymetrics "surety/internal/surety/metrics"
	"surety/internal/surety/models"
	"surety/internal/surety/opstatus"
	"surety/internal/surety/ports"
	"surety/internal/surety/service"
	"surety/internal/surety/store"
	httptransport "surety/internal/transport/http"
	"surety/pkg/platform/circuit"
)

type infra struct {
	db    *sql.DB
	redis *redis.Client
}

func (i *infra) close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("surety exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	inf, err := openInfra(ctx, cfg)
	if err != nil {
		return err
	}
	defer inf.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ledger, eventLog := buildLedger(cfg, inf)
	statusStore := buildStatusStore(cfg, inf, log)

	owner, err := models.ParseAddress(cfg.Registry.Owner)
	if err != nil {
		return fmt.Errorf("owner address: %w", err)
	}
	genesis, err := models.ParseAddress(cfg.Registry.Genesis)
	if err != nil {
		return fmt.Errorf("genesis address: %w", err)
	}
	status, err := opstatus.New(owner, statusStore)
	if err != nil {
		return err
	}

	svc, err := service.New(ledger, status, eventLog,
		service.WithLogger(log),
		service.WithMetrics(suretymetrics.New(reg)),
		service.WithTracerProvider(otel.GetTracerProvider()),
		service.WithFundingThreshold(models.Amount(cfg.Registry.FundingThreshold)),
		service.WithConsensusThreshold(cfg.Registry.ConsensusThreshold),
	)
	if err != nil {
		return err
	}
	if err := svc.Bootstrap(ctx, genesis); err != nil {
		return fmt.Errorf("bootstrap genesis airline: %w", err)
	}

	tokens := callertoken.New(cfg.JWTSigningKey, cfg.JWTIssuer)
	routerCfg := httptransport.Config{
		Logger:   log,
		Metrics:  httpmetrics.New(reg),
		Gatherer: reg,
		Checks:   map[string]httptransport.HealthCheck{},
		Gauges: map[string]func(context.Context) (int, error){
			"operational": func(ctx context.Context) (int, error) {
				ok, err := svc.IsOperational(ctx)
				if err != nil || !ok {
					return 0, err
				}
				return 1, nil
			},
		},
	}
	if inf.db != nil {
		routerCfg.Checks["postgres"] = inf.db.PingContext
		routerCfg.Gauges["outbox_pending"] = outbox.NewPostgresStore(inf.db).Pending
	}
	if inf.redis != nil {
		routerCfg.Checks["redis"] = inf.redis.Health
	}
	var handlerOpts []handler.Option
	if cfg.RateLimit.Requests > 0 {
		var limiter ratelimit.Limiter = ratelimit.NewMemoryStore()
		if cfg.RateLimit.Backend == config.StatusBackendRedis {
			limiter = ratelimit.NewRedisStore(inf.redis, "")
		}
		handlerOpts = append(handlerOpts, handler.WithMutationLimit(
			ratelimit.PerCaller(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window, log)))
	}
	router := httptransport.NewRouter(routerCfg, handler.New(svc, tokens, log, handlerOpts...))
	srv := httpserver.New(cfg.Addr, router, httpserver.Timeouts{Read: cfg.ReadTimeout, Write: cfg.WriteTimeout})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting surety", "addr", cfg.Addr, "genesis", genesis.String(), "status_backend", cfg.Registry.StatusBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if len(cfg.Kafka.Brokers) > 0 {
		relay, closeRelay, err := buildRelay(ctx, cfg, inf.db, log)
		if err != nil {
			return err
		}
		defer closeRelay()
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay: %w", err)
			}
			return nil
		})
	}
	return g.Wait()
}

func openInfra(ctx context.Context, cfg config.Server) (*infra, error) {
	inf := &infra{}
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		inf.db = db
		if cfg.Database.Migrate {
			if err := store.Migrate(ctx, db); err != nil {
				inf.close()
				return nil, err
			}
		}
	}
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		inf.close()
		return nil, err
	}
	inf.redis = client
	return inf, nil
}

func buildLedger(cfg config.Server, inf *infra) (ports.Ledger, events.Log) {
	if inf.db == nil {
		return store.NewMemoryLedger(), eventsmemory.NewInMemoryStore()
	}
	return store.NewPostgresLedger(inf.db, store.WithTxTimeout(cfg.Database.TxTimeout)), eventspostgres.New(inf.db)
}

func buildStatusStore(cfg config.Server, inf *infra, log *slog.Logger) opstatus.Store {
	switch cfg.Registry.StatusBackend {
	case config.StatusBackendPostgres:
		return opstatus.NewPostgresStore(inf.db)
	case config.StatusBackendRedis:
		breaker := circuit.New("redis-operational-status",
			circuit.WithFailureThreshold(cfg.Redis.BreakerFailures),
			circuit.WithSuccessThreshold(cfg.Redis.BreakerSuccesses),
		)
		return opstatus.NewFallbackStore(opstatus.NewRedisStore(inf.redis, cfg.Redis.Key), breaker, log)
	default:
		return opstatus.NewMemoryStore()
	}
}

func buildRelay(ctx context.Context, cfg config.Server, db *sql.DB, log *slog.Logger) (*outbox.Relay, func(), error) {
	p, err := producer.New(ctx, producer.Config{
		Brokers:           cfg.Kafka.Brokers,
		Topic:             cfg.Kafka.Topic,
		ClientID:          cfg.Kafka.ClientID,
		Partitions:        cfg.Kafka.Partitions,
		ReplicationFactor: cfg.Kafka.ReplicationFactor,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := p.EnsureTopic(ctx, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor); err != nil {
		p.Close()
		return nil, nil, err
	}
	relay, err := outbox.New(outbox.NewPostgresStore(db), outbox.NewKafkaPublisher(p),
		outbox.WithLogger(log),
		outbox.WithInterval(cfg.Kafka.PollInterval),
		outbox.WithBatchSize(cfg.Kafka.BatchSize),
	)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return relay, p.Close, nil
}
