package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"emberarena/internal/catalog"
	"emberarena/internal/config"
	"emberarena/internal/database"
	"emberarena/internal/handlers"
	"emberarena/internal/memstore"
	"emberarena/internal/repository"
	"emberarena/internal/service"
	"emberarena/internal/session"
	"emberarena/internal/store"
)

// documentStores is the durable half of persistence, MySQL or in-memory.
type documentStores struct {
	users     store.UserStore
	duels     store.DuelStore
	friends   store.FriendStore
	inventory store.InventoryStore
	history   store.HistoryStore
}

func openMySQLStores(ctx context.Context, cfg *config.Config) documentStores {
	db, err := database.OpenMySQL(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate MySQL: %v", err)
	}
	return documentStores{
		users:     repository.NewUserRepository(db),
		duels:     repository.NewDuelRepository(db),
		friends:   repository.NewFriendshipRepository(db),
		inventory: repository.NewInventoryRepository(db),
		history:   repository.NewHistoryRepository(db),
	}
}

func openMemoryStores() documentStores {
	db := memstore.New()
	return documentStores{users: db, duels: db, friends: db, inventory: db, history: db}
}

func openRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Store == config.StoreMemory {
		mr, err := miniredis.Run()
		if err != nil {
			log.Fatalf("Failed to start embedded Redis: %v", err)
		}
		log.Printf("Using embedded Redis at %s", mr.Addr())
		return redis.NewClient(&redis.Options{Addr: mr.Addr()})
	}
	client, err := database.OpenRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	return client
}

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()

	// 1. Initialize our external connections
	var stores documentStores
	if cfg.Store == config.StoreMemory {
		log.Println("STORE=memory: data is lost on restart")
		stores = openMemoryStores()
	} else {
		stores = openMySQLStores(ctx, cfg)
	}
	rdb := openRedis(ctx, cfg)

	// 2. Initialize repos, services, and handlers
	leaderboardRepo := repository.NewLeaderboardRepository(rdb)
	profileCacheRepo := repository.NewProfileCacheRepository(rdb)
	playSessionRepo := repository.NewPlaySessionRepository(rdb)
	authSessionRepo := repository.NewAuthSessionRepository(rdb)
	resetTokenRepo := repository.NewResetTokenRepository(rdb)

	cat := catalog.Default()
	userService := service.NewUserService(stores.users, stores.history, profileCacheRepo, leaderboardRepo)
	trialService := service.NewTrialService(cat, stores.users, playSessionRepo, userService)
	duelService := service.NewDuelService(cat, stores.users, stores.duels, stores.friends, trialService, userService, cfg.TieRule)
	friendService := service.NewFriendService(stores.users, stores.friends)
	shopService := service.NewShopService(cat, stores.users, stores.inventory, userService)
	leaderboardService := service.NewLeaderboardService(stores.users, stores.friends, leaderboardRepo)
	if err := leaderboardService.Warm(ctx); err != nil {
		log.Printf("Leaderboard warm-up failed: %v", err)
	}
	adminService := service.NewAdminService(stores.users, stores.duels, leaderboardRepo)
	authService := service.NewAuthService(
		stores.users,
		authSessionRepo,
		resetTokenRepo,
		session.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		service.LogMailer{},
		userService,
	)

	h := handlers.NewHandlers(userService, trialService, duelService, friendService, shopService, leaderboardService, adminService, authService)

	// 3. Create a new Fiber instance
	app := fiber.New(fiber.Config{
		AppName: "EmberArena_v1",
	})

	// 4. Middleware for better observability
	app.Use(logger.New())  // Logs every request to console
	app.Use(recover.New()) // Prevents the app from crashing on panics

	// 4.1 Simple middleware to track app-side latency
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start).Microseconds()
		c.Response().Header.Set("X-App-Latency-US", fmt.Sprintf("%d", duration))
		return err
	})

	// 5. Route Definitions, rate limited per user (or IP before sign-in)
	h.Register(app, handlers.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))

	// 6. Start the server
	log.Printf("Ember Arena listening on :%s (store=%s, tie rule=%s)", cfg.Port, cfg.Store, cfg.TieRule)
	log.Fatal(app.Listen(":" + cfg.Port))
}
