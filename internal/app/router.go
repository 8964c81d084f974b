package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/das-hr/skillmatrix/internal/auth"
	"github.com/das-hr/skillmatrix/internal/authz"
	"github.com/das-hr/skillmatrix/internal/career"
	"github.com/das-hr/skillmatrix/internal/department"
	"github.com/das-hr/skillmatrix/internal/observability"
	"github.com/das-hr/skillmatrix/internal/skill"
	"github.com/das-hr/skillmatrix/internal/team"
	"github.com/das-hr/skillmatrix/internal/upskill"
	"github.com/das-hr/skillmatrix/internal/users"
	"github.com/das-hr/skillmatrix/jobs"
)

// RouterConfig collects the external dependencies of the HTTP surface.
type RouterConfig struct {
	Logger     *slog.Logger
	Config     *Config
	Pool       *pgxpool.Pool
	Redis      *redis.Client
	Metrics    *observability.Metrics
	JobsClient *jobs.Client
}

// NewRouter assembles the full route tree. Health and metrics stay
// outside the principal resolver, the API group runs behind it.
func NewRouter(cfg RouterConfig) chi.Router {
	validate := validator.New()

	evaluator := authz.NewEvaluator(authz.NewRepository(cfg.Pool))

	tokens := auth.NewTokenManager(cfg.Config.JWTSecret, cfg.Config.AccessTTL)
	refresh := auth.NewRefreshStore(cfg.Redis, cfg.Config.RefreshTTL)
	authRepo := auth.NewRepository(cfg.Pool)
	authService := auth.NewService(authRepo, tokens, refresh)
	authHandler := auth.NewHandler(cfg.Logger, authService, validate)
	resolver := auth.NewResolver(tokens, authRepo, cfg.Logger)

	careerService := career.NewService(career.NewPGRepository(cfg.Pool), cfg.Logger)
	careerHandler := career.NewHandler(cfg.Logger, careerService, validate)

	departmentService := department.NewService(department.NewPGRepository(cfg.Pool), evaluator, cfg.Logger)
	departmentHandler := department.NewHandler(cfg.Logger, departmentService, evaluator, validate)

	teamService := team.NewService(team.NewPGRepository(cfg.Pool), cfg.Logger)
	teamHandler := team.NewHandler(cfg.Logger, teamService, evaluator, validate)

	skillService := skill.NewService(skill.NewPGRepository(cfg.Pool), cfg.Logger)
	skillHandler := skill.NewHandler(cfg.Logger, skillService, validate)

	usersHandler := users.NewHandler(cfg.Logger, users.NewPGRepository(cfg.Pool), evaluator, validate)

	var notifier upskill.Notifier
	if cfg.JobsClient != nil {
		notifier = cfg.JobsClient
	}
	upskillHandler := upskill.NewHandler(cfg.Logger, upskill.NewPGRepository(cfg.Pool), evaluator, validate, notifier)

	r := chi.NewRouter()
	r.Use(MiddlewareStack(MiddlewareConfig{Logger: cfg.Logger, Config: cfg.Config, Metrics: cfg.Metrics})...)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(resolver.Middleware)

		authHandler.MountRoutes(r)
		careerHandler.MountRoutes(r)
		departmentHandler.MountRoutes(r)
		teamHandler.MountRoutes(r)
		skillHandler.MountRoutes(r)
		usersHandler.MountRoutes(r)
		upskillHandler.MountRoutes(r)
	})

	return r
}
