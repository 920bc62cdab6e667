package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carrybid/carrybid/internal/domain/acceptance"
	"github.com/carrybid/carrybid/internal/domain/audit"
	"github.com/carrybid/carrybid/internal/domain/bids"
	"github.com/carrybid/carrybid/internal/domain/conversations"
	"github.com/carrybid/carrybid/internal/domain/listings"
	"github.com/carrybid/carrybid/internal/domain/locations"
	"github.com/carrybid/carrybid/internal/domain/media"
	"github.com/carrybid/carrybid/internal/domain/moderation"
	"github.com/carrybid/carrybid/internal/domain/notifications"
	"github.com/carrybid/carrybid/internal/domain/reviews"
	"github.com/carrybid/carrybid/internal/domain/users"
	"github.com/carrybid/carrybid/internal/feed"
	"github.com/carrybid/carrybid/internal/gateways/database/repositories"
	"github.com/carrybid/carrybid/internal/gateways/memory"
	"github.com/carrybid/carrybid/internal/gateways/mongodb"
	"github.com/carrybid/carrybid/marketplace/database"
	"github.com/carrybid/carrybid/marketplace/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds every service of a running marketplace.
type App struct {
	Config *Config
	Hub    *feed.Hub
	DB     *database.DB
	Mongo  *mongo.Client
	Blobs  media.Store
	Trail  audit.Trail

	Posts         listings.Service
	Bids          bids.Service
	Conversations conversations.Service
	Users         users.Service
	Reviews       reviews.Service
	Locations     *locations.Service
	Moderation    moderation.Service
	Acceptance    *acceptance.Service
	Notifications *notifications.Registry

	// MemoryBlobs is set when uploads are kept in process memory.
	MemoryBlobs *memory.BlobStore

	stopListen context.CancelFunc
	stopReaper context.CancelFunc
}

const reapInterval = 10 * time.Minute

type stores struct {
	posts         listings.Repository
	bids          bids.Repository
	conversations conversations.Repository
	users         users.Repository
	reviews       reviews.Repository
	archive       moderation.Repository
}

// NewMemory builds an App on the in-memory gateway.
func NewMemory(ctx context.Context, cfg *Config) (*App, error) {
	hub := feed.NewHub(cfg.Market.FeedBuffer)
	store := memory.New(hub)
	app := &App{Config: cfg, Hub: hub}
	if err := app.wire(ctx, stores{
		posts:         store.Posts(),
		bids:          store.Bids(),
		conversations: store.Conversations(),
		users:         store.Users(),
		reviews:       store.Reviews(),
		archive:       store.Archive(),
	}); err != nil {
		return nil, err
	}
	slog.Info("Using in-memory gateway", slog.String("type", "sys"))
	return app, nil
}

// New connects to PostgreSQL, initialises the schema and builds an App on
// the bun repositories.
func New(ctx context.Context, cfg *Config) (*App, error) {
	start := time.Now()
	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(start)))

	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	bunDB := db.BunDB()
	app := &App{Config: cfg, Hub: feed.NewHub(cfg.Market.FeedBuffer), DB: db}
	if err := app.wire(ctx, stores{
		posts:         repositories.NewPostRepository(bunDB),
		bids:          repositories.NewBidRepository(bunDB),
		conversations: repositories.NewConversationRepository(bunDB),
		users:         repositories.NewUserRepository(bunDB),
		reviews:       repositories.NewReviewRepository(bunDB),
		archive:       repositories.NewArchiveRepository(bunDB),
	}); err != nil {
		app.Close()
		return nil, err
	}

	listenCtx, cancel := context.WithCancel(context.Background())
	app.stopListen = cancel
	go db.Listen(listenCtx, app.Hub, repositories.NewLoader(bunDB))
	return app, nil
}

func (a *App) wire(ctx context.Context, s stores) error {
	cfg := a.Config

	if cfg.Spaces.Enabled() {
		spaces, err := services.NewSpacesService(ctx, cfg.Spaces)
		if err != nil {
			return err
		}
		a.Blobs = spaces
	} else {
		a.MemoryBlobs = memory.NewBlobStore(cfg.Web.PublicURL + "/uploads")
		a.Blobs = a.MemoryBlobs
	}

	if cfg.Mongo.URI != "" {
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return err
		}
		trail := mongodb.NewTrail(client, cfg.Mongo.Database)
		if err := trail.EnsureIndexes(ctx); err != nil {
			slog.Warn("Audit indexes not created", slog.String("type", "db"), slog.Any("error", err))
		}
		a.Mongo = client
		a.Trail = trail
	} else {
		a.Trail = memory.NewAuditLog()
	}

	a.Posts = listings.NewService(s.posts)
	a.Bids = bids.NewService(s.bids, s.posts, a.Trail, bids.WithSelfBid(cfg.Market.SelfBid()))
	a.Conversations = conversations.NewService(s.conversations)
	a.Users = users.NewService(s.users, a.Blobs,
		users.WithAdmins(cfg.Auth.Admins...),
		users.WithCacheSize(cfg.Market.CacheSize))
	a.Reviews = reviews.NewService(s.reviews, s.bids)
	a.Locations = locations.NewService(cfg.Market.CityList(), cfg.Market.CacheSize)
	a.Moderation = moderation.NewService(s.archive, a.Users, a.Bids, a.Trail)
	a.Notifications = notifications.NewRegistry(a.Hub, s.bids, s.conversations)
	reapCtx, cancel := context.WithCancel(context.Background())
	a.stopReaper = cancel
	a.Notifications.StartReaper(reapCtx, reapInterval, cfg.Market.WatcherIdle())
	a.Acceptance = acceptance.NewService(a.Bids, a.Conversations, a.Notifications, cfg.Market.AcceptSeed)
	return nil
}

// Close stops watchers and releases connections.
func (a *App) Close() {
	if a.stopListen != nil {
		a.stopListen()
	}
	if a.stopReaper != nil {
		a.stopReaper()
	}
	if a.Notifications != nil {
		a.Notifications.Close()
	}
	if a.Hub != nil {
		a.Hub.Close()
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			slog.Error("Failed to disconnect mongo", slog.String("type", "error"), slog.Any("error", err))
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
