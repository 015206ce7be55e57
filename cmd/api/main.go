package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/todo-service/internal/api/http"
	"github.com/spec-kit/todo-service/internal/api/http/handlers"
	"github.com/spec-kit/todo-service/internal/audit"
	"github.com/spec-kit/todo-service/internal/auth"
	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/events"
	"github.com/spec-kit/todo-service/internal/observability"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/repository/memory"
	"github.com/spec-kit/todo-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}

	userRepo, todoRepo, commentRepo, managerRepo := newRepositories(pg, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)
	service.NewNotificationService(dispatcher, logger).RegisterHandlers()

	var trail audit.Store = audit.NewMemorySink(1000)
	if cfg.Audit.RedisEnabled {
		trail = audit.NewRedisSink(redis.Client, cfg.Audit.Stream, cfg.Audit.StreamMaxLen)
	}
	recorder := audit.NewRecorder(logger, audit.WithSink(trail))

	metrics := observability.NewMetrics()
	policy := auth.RoutePolicy{ExemptPrefix: cfg.Auth.ExemptPrefix, AdminPrefix: cfg.Auth.AdminPrefix}
	gate := auth.NewGate(tokens, policy, logger.Named("auth"), auth.WithMetrics(metrics))

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Policy:   policy,
		Gate:     gate,
		Recorder: recorder,
		Auth:     handlers.NewAuthHandler(service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)),
		Users:    handlers.NewUsersHandler(service.NewUserService(userRepo, cfg.Auth.BcryptCost)),
		Todos:    handlers.NewTodosHandler(service.NewTodoService(todoRepo)),
		Comments: handlers.NewCommentsHandler(service.NewCommentService(commentRepo, todoRepo)),
		Managers: handlers.NewManagersHandler(service.NewManagerService(managerRepo, userRepo, todoRepo, dispatcher)),
		Admin: handlers.NewAdminHandler(
			service.NewUserAdminService(userRepo, dispatcher),
			service.NewCommentAdminService(commentRepo, dispatcher),
			trail,
		),
	})

	probe := fiber.New(fiber.Config{AppName: cfg.App.Name + "-probe", DisableStartupMessage: true})
	httptransport.RegisterProbeRoutes(probe, handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version,
		readinessDeps(pg, redis), metrics))

	go func() {
		if err := probe.Listen(cfg.App.ProbeAddr()); err != nil {
			logger.Fatal("probe listen", zap.Error(err))
		}
	}()
	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	_ = probe.Shutdown()
}

// readinessDeps lists the backends /health/ready pings. Postgres is left out
// when no pool is configured and the in-memory repositories serve requests.
func readinessDeps(pg *persistence.Postgres, redis *persistence.Redis) map[string]handlers.Pinger {
	deps := map[string]handlers.Pinger{"redis": redis}
	if pg.PoolHandle() != nil {
		deps["postgres"] = pg
	}
	return deps
}

func newRepositories(pg *persistence.Postgres, logger *zap.Logger) (
	repository.UserRepository,
	repository.TodoRepository,
	repository.CommentRepository,
	repository.ManagerRepository,
) {
	pool := pg.PoolHandle()
	if pool == nil {
		logger.Warn("using in-memory repositories; data is lost on restart")
		return memory.NewUsers(), memory.NewTodos(), memory.NewComments(), memory.NewManagers()
	}
	return repository.NewUserRepository(pool),
		repository.NewTodoRepository(pool),
		repository.NewCommentRepository(pool),
		repository.NewManagerRepository(pool)
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
