package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/docgen"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ayush/inkpress/internal/auth"
	"github.com/ayush/inkpress/internal/config"
	"github.com/ayush/inkpress/internal/server"
	"github.com/ayush/inkpress/internal/session"
	"github.com/ayush/inkpress/internal/store"
	"github.com/ayush/inkpress/internal/upload"
)

func main() {
	routes := flag.Bool("routes", false, "print route documentation and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		sugar.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	mongoStore := store.NewMongoStore(mongoClient.Database(cfg.MongoDB))
	if err := mongoStore.EnsureIndexes(ctx); err != nil {
		sugar.Warnw("mongo indexes not created", "error", err)
	}

	// ── Users: MongoDB unless PostgreSQL is configured ───────
	var users auth.UserStore = mongoStore
	if cfg.PostgresDSN != "" {
		pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			sugar.Fatalf("postgres connect: %v", err)
		}
		defer pgPool.Close()
		pgStore := store.NewPostgresStore(pgPool)
		if err := pgStore.Migrate(ctx); err != nil {
			sugar.Fatalf("postgres migrate: %v", err)
		}
		users = pgStore
		sugar.Infow("using postgres user store")
	}

	// ── Sessions ─────────────────────────────────────────────
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			sugar.Fatalf("redis connect: %v", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb)
	} else {
		sugar.Warnw("REDIS_ADDR not set, keeping sessions in memory")
		sessions = session.NewMemoryStore()
	}

	// ── Thumbnails: MinIO bucket or local upload dir ─────────
	var blobs upload.BlobStore = store.NewDiskStore(cfg.UploadDir)
	var thumbs upload.BlobSource
	if cfg.MinioEndpoint != "" {
		minioStore, err := store.NewMinioStore(
			ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		if err != nil {
			sugar.Fatalf("minio connect: %v", err)
		}
		blobs = minioStore
		thumbs = minioStore
	}

	// ── Router ───────────────────────────────────────────────
	r, err := server.NewRouter(server.Deps{
		Log:            sugar,
		Codec:          session.NewCodec(cfg.SecretKey),
		Sessions:       sessions,
		Users:          users,
		Articles:       mongoStore,
		Blobs:          blobs,
		Thumbnails:     thumbs,
		StaticDir:      cfg.StaticDir,
		AllowedOrigins: cfg.AllowedOrigins,
		RequireAuth:    cfg.RequireAuth,
	})
	if err != nil {
		sugar.Fatalf("router: %v", err)
	}

	if *routes {
		fmt.Println(docgen.MarkdownRoutesDoc(r, docgen.MarkdownOpts{
			ProjectPath: "github.com/ayush/inkpress",
			Intro:       "inkpress HTTP routes.",
		}))
		return
	}

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sugar.Infow("listening", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		sugar.Errorw("shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
