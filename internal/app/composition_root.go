package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"

	"demo/foodorders/internal/cache"
	"demo/foodorders/internal/config"
	"demo/foodorders/internal/events"
	"demo/foodorders/internal/httpapi"
	"demo/foodorders/internal/service"
	"demo/foodorders/internal/store"
)

// CompositionRoot owns every long-lived dependency of a running process.
type CompositionRoot struct {
	cfg     config.Config
	logger  *slog.Logger
	repo    store.Repository
	service *service.Service
	handler http.Handler
	closers []io.Closer
}

func NewCompositionRoot(ctx context.Context, cfg config.Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	repo, err := c.openStore(ctx)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	if cfg.RedisAddr != "" {
		rc := cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		c.closers = append(c.closers, rc)
		if err := rc.Ping(ctx); err != nil {
			logger.WarnContext(ctx, "redis unreachable, cache will fall through", "addr", cfg.RedisAddr, "error", err)
		}
		repo = store.NewCached(repo, rc, cfg.CacheTTL, logger)
		logger.InfoContext(ctx, "order cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}
	c.repo = repo

	var pub events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.ServiceName, logger)
		c.closers = append(c.closers, kp)
		pub = kp
		logger.InfoContext(ctx, "order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	c.service = service.New(repo, pub, logger)
	c.handler = httpapi.NewRouter(httpapi.NewHandler(c.service, cfg.CORS), cfg.CORS, logger)
	return c, nil
}

func (c *CompositionRoot) Handler() http.Handler { return c.handler }

func (c *CompositionRoot) Service() *service.Service { return c.service }

// Close releases resources in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) openStore(ctx context.Context) (store.Repository, error) {
	switch c.cfg.StoreBackend {
	case config.BackendMemory:
		c.logger.WarnContext(ctx, "using in-memory order store; data is lost on restart")
		return store.NewMemory(), nil

	case config.BackendPostgres:
		if err := store.Migrate(c.cfg.DBDSN); err != nil {
			return nil, fmt.Errorf("schema: %w", err)
		}
		pool, err := pgxpool.New(ctx, c.cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		c.closers = append(c.closers, closerFunc(func() error { pool.Close(); return nil }))
		if err := pool.Ping(ctx); err != nil {
			return nil, fmt.Errorf("db ping: %w", err)
		}
		return store.New(pool), nil

	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		return store.NewDynamo(dynamodb.NewFromConfig(awsCfg), c.cfg.DynamoTable), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", c.cfg.StoreBackend)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
