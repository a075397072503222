// Package app wires configuration, storage and usecases for the commands.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/fardannozami/ecoplay/internal/app/usecase"
	"github.com/fardannozami/ecoplay/internal/config"
	"github.com/fardannozami/ecoplay/internal/domain"
	"github.com/fardannozami/ecoplay/internal/infra/httpapi"
	"github.com/fardannozami/ecoplay/internal/infra/memory"
	"github.com/fardannozami/ecoplay/internal/infra/redis"
	"github.com/fardannozami/ecoplay/internal/infra/sqlite"
	"github.com/fardannozami/ecoplay/internal/session"
	"github.com/fardannozami/ecoplay/internal/store"
)

type App struct {
	Config config.Config
	Log    *zap.Logger
	Store  *store.Store

	// DB is set for the sqlite backend; the bot also resolves LIDs through it.
	DB *sql.DB

	Auth        *usecase.AuthUsecase
	Watering    *usecase.SubmitWateringUsecase
	Quiz        *usecase.SubmitQuizAttemptUsecase
	Activity    *usecase.SubmitActivityUsecase
	Redeem      *usecase.RedeemRewardUsecase
	JoinEvent   *usecase.JoinEventUsecase
	Admin       *usecase.AdminUsecase
	Leaderboard *usecase.GetLeaderboardUsecase
	Profile     *usecase.GetProfileUsecase
	Catalog     *usecase.CatalogUsecase

	closers []func() error
}

// New opens the configured backend, seeds missing collections and builds
// every usecase.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	backend, err := a.openBackend(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Store = store.New(backend, log.Named("store"))
	if err := a.Store.Init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	d := usecase.Deps{
		Store:    a.Store,
		Log:      log.Named("usecase"),
		Location: cfg.Location,
	}
	a.Auth = usecase.NewAuthUsecase(d, session.NewRegistry(cfg.SessionTTL), cfg.AdminPassword)
	a.Watering = usecase.NewSubmitWateringUsecase(d)
	a.Quiz = usecase.NewSubmitQuizAttemptUsecase(d)
	a.Activity = usecase.NewSubmitActivityUsecase(d)
	a.Redeem = usecase.NewRedeemRewardUsecase(d)
	a.JoinEvent = usecase.NewJoinEventUsecase(d)
	a.Admin = usecase.NewAdminUsecase(d)
	a.Leaderboard = usecase.NewGetLeaderboardUsecase(d)
	a.Profile = usecase.NewGetProfileUsecase(d)
	a.Catalog = usecase.NewCatalogUsecase(d)

	return a, nil
}

func (a *App) openBackend(ctx context.Context) (domain.CollectionBackend, error) {
	cfg := a.Config
	switch cfg.StoreBackend {
	case "memory":
		a.Log.Warn("store_backend_memory", zap.String("note", "data is lost on exit"))
		return memory.NewCollectionBackend(), nil

	case "redis":
		client, err := redis.NewClient(ctx, redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, a.Log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		return redis.NewCollectionBackend(client, cfg.RedisPrefix), nil

	case "sqlite", "":
		db, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.closers = append(a.closers, db.Close)

		backend := sqlite.NewCollectionBackend(db)
		if err := backend.InitTable(ctx); err != nil {
			return nil, fmt.Errorf("init collections table: %w", err)
		}
		a.Log.Info("store_backend_sqlite", zap.String("path", cfg.SQLitePath))
		return backend, nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

// OpenSQLite opens path with WAL and a busy timeout to avoid "database is
// locked" errors when whatsmeow shares the file.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

func (a *App) ChatHandler() *usecase.HandleMessageUsecase {
	return usecase.NewHandleMessageUsecase(usecase.ChatUsecases{
		Auth:        a.Auth,
		Watering:    a.Watering,
		Quiz:        a.Quiz,
		Activity:    a.Activity,
		Redeem:      a.Redeem,
		JoinEvent:   a.JoinEvent,
		Leaderboard: a.Leaderboard,
		Profile:     a.Profile,
		Catalog:     a.Catalog,
	}, a.Log.Named("chat"))
}

func (a *App) HTTPServices() httpapi.Services {
	return httpapi.Services{
		Auth:        a.Auth,
		Watering:    a.Watering,
		Quiz:        a.Quiz,
		Activity:    a.Activity,
		Redeem:      a.Redeem,
		JoinEvent:   a.JoinEvent,
		Admin:       a.Admin,
		Leaderboard: a.Leaderboard,
		Profile:     a.Profile,
		Catalog:     a.Catalog,
	}
}

// Close releases backends in reverse order of opening.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
