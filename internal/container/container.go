package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"labequip/storefront/internal/api"
	"labequip/storefront/internal/catalog"
	"labequip/storefront/internal/config"
	"labequip/storefront/internal/content"
	"labequip/storefront/internal/endpoint"
	"labequip/storefront/internal/feed"
	"labequip/storefront/internal/intake"
	"labequip/storefront/internal/metrics"
	"labequip/storefront/internal/queue"
	"labequip/storefront/internal/repository"
	"labequip/storefront/internal/rfq"
	"labequip/storefront/internal/service"
	"labequip/storefront/internal/taxonomy"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const sweepInterval = time.Minute

// Storefront is the read-only part of the site: taxonomy, catalog and editorial content
type Storefront struct {
	Taxonomy *taxonomy.Taxonomy
	Catalog  *catalog.Catalog
	Content  *content.Content
}

// LoadStorefront loads the content feed and refuses a catalog that disagrees with its taxonomy
func LoadStorefront(cfg config.CatalogConfig) (*Storefront, error) {
	f, err := feed.Load(cfg.FeedDir)
	if err != nil {
		return nil, err
	}

	tax := taxonomy.New(f.Categories, f.Types)
	if err := catalog.Validate(f.Products, tax); err != nil {
		return nil, err
	}

	posts, err := content.New(f.Posts, f.Resources)
	if err != nil {
		return nil, err
	}

	log.Infof("✅ Loaded %d categories, %d equipment types, %d products, %d posts, %d resources",
		len(f.Categories), len(f.Types), len(f.Products), len(f.Posts), len(f.Resources))

	return &Storefront{
		Taxonomy: tax,
		Catalog:  catalog.New(f.Products),
		Content:  posts,
	}, nil
}

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Storefront *Storefront
	Sessions   *rfq.Sessions
	Repository repository.LeadRepository
	Queue      queue.Queue
	Client     intake.Client

	Service *service.LeadService
	Server  *api.Server

	memoryStore *rfq.MemoryStore
	db          *pgxpool.Pool
	redis       *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	storefront, err := LoadStorefront(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load storefront: %w", err)
	}
	container.Storefront = storefront

	// Initialize repository
	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	container.db = db
	container.Repository = repository.NewLeadRepository(db)

	log.Info("✅ Connected to PostgreSQL successfully")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		container.Close()
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	container.redis = rdb

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Queue = redisQueue

	container.Sessions = rfq.NewSessions(container.sessionStore(), metrics.CartChanged)

	if len(cfg.Intake.Endpoints) == 0 {
		log.Warn("⚠️ No intake endpoints configured, quote requests will be stored but not delivered")
	}
	endpoints := endpoint.NewSupplier(ctx, cfg.Intake.Endpoints, cfg.Intake.ProbeOnStart)
	container.Client = intake.NewClient(cfg.Intake, endpoints)

	container.Service = service.NewLeadService(
		container.Repository,
		container.Client,
		redisQueue,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
		cfg.Intake.MaxAttempts,
		time.Duration(cfg.Intake.RetryDelay)*time.Second,
	)

	container.Server = api.NewServer(api.Deps{
		Taxonomy: storefront.Taxonomy,
		Catalog:  storefront.Catalog,
		Content:  storefront.Content,
		Sessions: container.Sessions,
		Leads:    container.Service,
		Session:  cfg.Session,
	})

	return container, nil
}

func (c *Container) sessionStore() rfq.SessionStore {
	ttl := time.Duration(c.Config.Session.TTL) * time.Minute

	if c.Config.Session.Driver == "redis" {
		log.Infof("🛒 RFQ sessions stored in Redis (ttl %v)", ttl)
		return rfq.NewRedisStore(c.redis, ttl)
	}

	log.Infof("🛒 RFQ sessions stored in memory (ttl %v)", ttl)
	c.memoryStore = rfq.NewMemoryStore(ttl)
	return c.memoryStore
}

// Run serves HTTP and processes lead deliveries until ctx is cancelled
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              c.Config.Server.Addr(),
		Handler:           c.Server,
		ReadTimeout:       time.Duration(c.Config.Server.ReadTimeout) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		log.Infof("🚀 HTTP server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(),
			time.Duration(c.Config.Server.ShutdownTimeout)*time.Second)
		defer cancel()

		log.Info("🛑 Shutting down HTTP server...")
		return server.Shutdown(shutdownCtx)
	})

	// Run workers to deliver leads
	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Intake.MaxWorkers)
	})

	if c.memoryStore != nil {
		g.Go(func() error {
			return c.memoryStore.Run(ctx, sweepInterval)
		})
	}

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("failed to close redis client: %w", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
