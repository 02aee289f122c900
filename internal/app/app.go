package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/citysports/league-registry/internal/config"
	"github.com/citysports/league-registry/internal/domain/gym"
	"github.com/citysports/league-registry/internal/domain/league"
	"github.com/citysports/league-registry/internal/domain/payment"
	"github.com/citysports/league-registry/internal/domain/skill"
	"github.com/citysports/league-registry/internal/domain/sport"
	"github.com/citysports/league-registry/internal/domain/team"
	"github.com/citysports/league-registry/internal/domain/user"
	"github.com/citysports/league-registry/internal/infrastructure/account/gatekeeper"
	"github.com/citysports/league-registry/internal/infrastructure/billing/localbilling"
	"github.com/citysports/league-registry/internal/infrastructure/billing/stripeapi"
	cacherepo "github.com/citysports/league-registry/internal/infrastructure/repository/cache"
	"github.com/citysports/league-registry/internal/infrastructure/repository/memory"
	"github.com/citysports/league-registry/internal/infrastructure/repository/postgres"
	"github.com/citysports/league-registry/internal/interfaces/httpapi"
	basecache "github.com/citysports/league-registry/internal/platform/cache"
	"github.com/citysports/league-registry/internal/platform/logging"
	"github.com/citysports/league-registry/internal/platform/resilience"
	"github.com/citysports/league-registry/internal/usecase"

	_ "github.com/lib/pq"
)

type repositories struct {
	league  league.Repository
	team    team.Repository
	user    user.Repository
	skill   skill.Repository
	gym     gym.Repository
	sport   sport.Repository
	payment payment.Repository
}

// NewHTTPServer wires configuration into a ready-to-serve HTTP server. The
// returned closer releases the database pool and must be called on shutdown.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, closer, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.skill = cacherepo.NewSkillRepository(repos.skill, store)
		repos.sport = cacherepo.NewSportRepository(repos.sport, store)
		repos.gym = cacherepo.NewGymRepository(repos.gym, store)
	}

	billing := buildBilling(cfg, logger)

	leagueSvc := usecase.NewLeagueService(repos.league, repos.team, repos.sport, repos.skill, repos.gym, billing, logger)
	rosterSvc := usecase.NewRosterService(repos.team, repos.user, repos.payment, logger)
	dashboardSvc := usecase.NewDashboardService(repos.team, repos.user, repos.league, repos.sport, repos.skill, repos.gym, repos.payment, billing, logger)
	profileSvc := usecase.NewProfileService(repos.user, logger)

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		gatekeeper.Config{
			BaseURL:        cfg.GatekeeperBaseURL,
			IntrospectPath: cfg.GatekeeperIntrospectPath,
			CacheTTL:       cfg.GatekeeperCacheTTL,
			CacheMaxToken:  cfg.GatekeeperCacheMaxToken,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GatekeeperCircuitEnabled,
				FailureThreshold: cfg.GatekeeperCircuitFailureCount,
				OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, rosterSvc, dashboardSvc, profileSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closer()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closer, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.DBURL == "" {
		logger.Info("database not configured, using seeded in-memory repositories")

		paymentRepo := memory.NewPaymentRepository(memory.SeedPayments())
		return repositories{
			league:  memory.NewLeagueRepository(memory.SeedLeagues()),
			team:    memory.NewTeamRepository(memory.SeedTeams(), paymentRepo),
			user:    memory.NewUserRepository(memory.SeedUsers()),
			skill:   memory.NewSkillRepository(memory.SeedSkills()),
			gym:     memory.NewGymRepository(memory.SeedGyms()),
			sport:   memory.NewSportRepository(memory.SeedSports()),
			payment: paymentRepo,
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}

	if cfg.DBBootstrapSeed {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	return repositories{
		league:  postgres.NewLeagueRepository(db),
		team:    postgres.NewTeamRepository(db),
		user:    postgres.NewUserRepository(db),
		skill:   postgres.NewSkillRepository(db),
		gym:     postgres.NewGymRepository(db),
		sport:   postgres.NewSportRepository(db),
		payment: postgres.NewPaymentRepository(db),
	}, db.Close, nil
}

func buildBilling(cfg config.Config, logger *logging.Logger) usecase.BillingProvider {
	if !cfg.StripeEnabled {
		logger.Info("billing provider not configured, using local products")
		return localbilling.NewProvider(localbilling.SeedProducts(), localbilling.SeedSubscriptions())
	}

	return stripeapi.NewClient(stripeapi.Config{
		BaseURL:   cfg.StripeBaseURL,
		SecretKey: cfg.StripeSecretKey,
		Retries:   cfg.StripeMaxRetries,
		Timeout:   cfg.StripeTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StripeCircuitEnabled,
			FailureThreshold: cfg.StripeCircuitFailureCount,
			OpenTimeout:      cfg.StripeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StripeCircuitHalfOpenMaxReq,
		},
	}, logger)
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	return otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
}
