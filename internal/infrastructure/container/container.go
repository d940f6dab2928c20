package container

import (
	"context"
	"fmt"
	"path/filepath"

	"cloud.google.com/go/firestore"
	"github.com/glosscard/glosscard-backend/internal/config"
	"github.com/glosscard/glosscard-backend/internal/delivery/http"
	"github.com/glosscard/glosscard-backend/internal/delivery/http/handler"
	"github.com/glosscard/glosscard-backend/internal/delivery/http/web"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/analytics"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/database"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/gemini"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/netstatus"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/qrcode"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/server"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/storage"
	"github.com/glosscard/glosscard-backend/internal/repository"
	"github.com/glosscard/glosscard-backend/internal/repository/cache"
	fsrepo "github.com/glosscard/glosscard-backend/internal/repository/firestore"
	"github.com/glosscard/glosscard-backend/internal/repository/mongodb"
	"github.com/glosscard/glosscard-backend/internal/repository/postgres"
	"github.com/glosscard/glosscard-backend/internal/usecase/cardform"
	"github.com/glosscard/glosscard-backend/internal/usecase/dashboard"
	"github.com/glosscard/glosscard-backend/internal/usecase/payment"
	"github.com/glosscard/glosscard-backend/internal/usecase/profile"
	"github.com/glosscard/glosscard-backend/internal/usecase/upload"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Log       *zap.Logger
	DB        *sqlx.DB
	Mongo     *mongo.Client
	Firestore *firestore.Client
	Redis     *redis.Client
	Storage   storage.Storage
	Analytics *analytics.Service
	Monitor   *netstatus.Monitor
	Gemini    *gemini.GeminiClient
	Server    *server.Server
}

type stores struct {
	profiles repository.ProfileRepository
	payments repository.PaymentRepository
	pinger   repository.Pinger
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	st, err := c.openStore()
	if err != nil {
		c.Close()
		return nil, err
	}

	if cfg.Redis.Enabled {
		c.Redis, err = database.NewRedisClient(&cfg.Redis)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		st.profiles = cache.NewProfileRepository(st.profiles, c.Redis, cfg.Redis.CacheTTL, log)
		st.payments = cache.NewPaymentRepository(st.payments, c.Redis, cfg.Redis.CacheTTL, log)
	}

	var sink analytics.Sink = analytics.NewLogSink(log)
	if cfg.Analytics.Sink == config.SinkRedis {
		sink = analytics.NewRedisStreamSink(c.Redis, cfg.Analytics.Stream)
	}
	c.Analytics = analytics.NewService(sink, cfg.Analytics.BufferSize, cfg.Analytics.Enabled, log)

	c.Storage, err = storage.NewStorage(context.Background(), &cfg.Storage)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// A nil interface, not a typed nil, disables bio suggestions.
	var bios profile.BioGenerator
	if cfg.Gemini.APIKey != "" {
		c.Gemini, err = gemini.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn("gemini client unavailable, bio suggestions disabled", zap.Error(err))
		} else {
			bios = c.Gemini
		}
	}

	c.Monitor = netstatus.NewMonitor(st.pinger, cfg.Database.HealthInterval, log)
	c.Monitor.Start()

	templates, err := web.Templates()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize use cases
	uploadUseCase := upload.NewUploadUseCase(c.Storage, cfg.Storage.MaxUploadBytes, c.Analytics)
	profileUseCase := profile.NewProfileUseCase(
		st.profiles,
		c.Monitor,
		qrcode.NewGenerator(),
		bios,
		c.Analytics,
		cfg.Server.PublicURL,
	)
	paymentUseCase := payment.NewPaymentUseCase(st.payments, c.Monitor)
	cardFormUseCase := cardform.NewCardFormUseCase(profileUseCase, uploadUseCase, c.Analytics)
	dashboardUseCase := dashboard.NewDashboardUseCase(cfg.Server.PublicURL)

	var uploadsDir string
	if cfg.Storage.Type == config.StorageLocal {
		uploadsDir = filepath.Join(cfg.Storage.BasePath, "uploads")
	}

	router := http.NewRouter(
		handler.NewUploadHandler(uploadUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewPaymentHandler(paymentUseCase),
		handler.NewEventHandler(c.Analytics),
		handler.NewDashboardHandler(dashboardUseCase),
		handler.NewPageHandler(profileUseCase, paymentUseCase, cardFormUseCase, dashboardUseCase, c.Analytics, cfg.Storage.MaxUploadBytes),
		handler.NewHealthHandler(c.Monitor),
		templates,
		uploadsDir,
		log,
	)

	c.Server = server.NewServer(&cfg.Server, router.Setup(), log)
	return c, nil
}

// openStore connects the configured document store and builds its
// repositories.
func (c *Container) openStore() (*stores, error) {
	cfg := c.Config

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(&cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
		}
		c.Mongo = client
		db := client.Database(cfg.Mongo.Database)
		return &stores{
			profiles: mongodb.NewProfileRepository(db),
			payments: mongodb.NewPaymentRepository(db),
			pinger:   repository.PingerFunc(func(ctx context.Context) error { return client.Ping(ctx, nil) }),
		}, nil

	case config.DriverFirestore:
		client, err := database.NewFirestoreClient(&cfg.Firestore)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize firestore: %w", err)
		}
		c.Firestore = client
		return &stores{
			profiles: fsrepo.NewProfileRepository(client),
			payments: fsrepo.NewPaymentRepository(client),
			pinger:   repository.PingerFunc(database.PingFirestore(client)),
		}, nil

	default:
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		c.DB = db
		return &stores{
			profiles: postgres.NewProfileRepository(db),
			payments: postgres.NewPaymentRepository(db),
			pinger:   repository.PingerFunc(db.PingContext),
		}, nil
	}
}

// Close releases everything the container opened. It is safe to call on a
// partially built container.
func (c *Container) Close() {
	if c.Monitor != nil {
		c.Monitor.Stop()
	}
	if c.Analytics != nil {
		c.Analytics.Close()
	}
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil {
			c.Log.Warn("failed to close storage", zap.Error(err))
		}
	}
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			c.Log.Warn("failed to close gemini client", zap.Error(err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn("failed to close redis", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Log.Warn("failed to close database", zap.Error(err))
		}
	}
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := c.Mongo.Disconnect(ctx); err != nil {
			c.Log.Warn("failed to disconnect mongodb", zap.Error(err))
		}
	}
	if c.Firestore != nil {
		if err := c.Firestore.Close(); err != nil {
			c.Log.Warn("failed to close firestore", zap.Error(err))
		}
	}
}
