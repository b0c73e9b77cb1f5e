package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/waste3d/vod-platform/config"
	"github.com/waste3d/vod-platform/internal/application/usecase"
	"github.com/waste3d/vod-platform/internal/infrastructure/cache"
	"github.com/waste3d/vod-platform/internal/infrastructure/database"
	"github.com/waste3d/vod-platform/internal/infrastructure/repository"
	"github.com/waste3d/vod-platform/internal/infrastructure/security"
	"github.com/waste3d/vod-platform/internal/infrastructure/seed"
	"github.com/waste3d/vod-platform/internal/infrastructure/store"
	"github.com/waste3d/vod-platform/internal/middleware"
	"github.com/waste3d/vod-platform/internal/platform/logger"
	grpc_server "github.com/waste3d/vod-platform/internal/transport/grpc"
	handlers "github.com/waste3d/vod-platform/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logg.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		logg.Fatal("DB connect failed", "driver", cfg.DBDriver, "error", err)
	}

	registry, err := store.NewRegistry(store.Entities()...)
	if err != nil {
		logg.Fatal("Invalid entity registry", "error", err)
	}
	st := store.New(db, registry)

	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		logg.Fatal("Migration failed", "error", err)
	}

	if cfg.SeedDemo {
		seeded, err := seed.Apply(ctx, st, seed.Demo())
		if err != nil {
			logg.Fatal("Seeding failed", "error", err)
		}
		if seeded {
			logg.Info("DB seeded with demo catalog")
		}
	}

	var rdb *redis.Client
	var courseCache cache.CourseCache = cache.Nop{}
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.Fatal("Failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		}
		logg.Info("Connected to Redis", "addr", cfg.RedisAddr)
		courseCache = cache.NewRedisCourseCache(rdb, cfg.CacheTTL)
	}

	var readRepo repository.ReadRepository
	switch cfg.ReadRepository {
	case "mock":
		readRepo = repository.NewMockReadRepository(seed.Demo())
	default:
		readRepo = repository.NewSQLReadRepository(st, courseCache, logg)
	}
	logg.Info("Read repository selected", "kind", cfg.ReadRepository)

	tokens := security.NewTokenManager(cfg.AccessSecret)
	if cfg.SeedDemo && cfg.Env == "local" {
		if token, err := tokens.Generate(seed.DemoUserID, security.RoleAdmin, 24*time.Hour); err == nil {
			logg.Debug("Demo access token", "user_id", seed.DemoUserID, "token", token)
		}
	}

	router, err := handlers.NewRouter(handlers.RouterDeps{
		Membership: handlers.NewMembershipHandler(usecase.NewMembershipUseCase(readRepo), cfg.RevealForbidden),
		Admin:      handlers.NewAdminHandler(usecase.NewAdminUseCase(st, courseCache, logg)),
		Tokens:     tokens,
		Limiter:    middleware.NewRateLimiter(rdb),
		Log:        logg,
		Origins:    cfg.Origins(),
		Ready: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	if err != nil {
		logg.Fatal("Router init failed", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logg.Info("HTTP server running", "addr", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("HTTP server failed", "error", err)
		}
	}()

	var healthSrv *grpc_server.HealthServer
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", cfg.GRPCPort)
		if err != nil {
			logg.Fatal("Failed to listen", "addr", cfg.GRPCPort, "error", err)
		}
		healthSrv = grpc_server.NewHealthServer(logg)
		healthSrv.SetServing(true)
		go func() {
			if err := healthSrv.Serve(lis); err != nil {
				logg.Fatal("gRPC server failed", "error", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logg.Info("Shutting down server...")
	if healthSrv != nil {
		healthSrv.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("HTTP shutdown failed", "error", err)
	}
	if healthSrv != nil {
		healthSrv.Stop()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
