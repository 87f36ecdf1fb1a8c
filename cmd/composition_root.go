package cmd

import (
	"context"
	"fmt"
	"time"

	httpadapter "transportconnect/internal/adapters/in/http"
	"transportconnect/internal/adapters/out/bcrypthasher"
	"transportconnect/internal/adapters/out/clock"
	"transportconnect/internal/adapters/out/eventlog"
	"transportconnect/internal/adapters/out/jwttoken"
	"transportconnect/internal/adapters/out/memory"
	"transportconnect/internal/adapters/out/postgres"
	"transportconnect/internal/adapters/out/redisdenylist"
	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/core/application/usecases/queries"
	"transportconnect/internal/core/domain/services"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/jobs"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisPingTimeout = 5 * time.Second

type CompositionRoot struct {
	config    Config
	gormDB    *gorm.DB
	logger    *zap.Logger
	factories commands.Factories
	uow       ports.UnitOfWorkFactory

	clock     ports.Clock
	hasher    *bcrypthasher.Hasher
	tokens    *jwttoken.Service
	denylist  ports.TokenDenylist
	publisher ports.EventPublisher
	policy    services.AccessPolicy

	redisClient *redis.Client
}

// NewCompositionRoot wires adapters for cfg. The token denylist lives in Redis
// when REDIS_ADDR is set and in process memory otherwise.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	systemClock := clock.NewSystemClock()

	tokens, err := jwttoken.New(cfg.Token(), systemClock)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher, err := bcrypthasher.New()
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	uow := postgres.NewGormUnitOfWorkFactory(gormDB)
	root := &CompositionRoot{
		config:    cfg,
		gormDB:    gormDB,
		logger:    logger,
		factories: commands.NewFactories(uow),
		uow:       uow,
		clock:     systemClock,
		hasher:    hasher,
		tokens:    tokens,
		publisher: eventlog.New(logger),
		policy:    services.NewAccessPolicy(),
	}

	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
		root.denylist = memory.NewDenylist(systemClock)
		return root, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	root.redisClient = client
	root.denylist = redisdenylist.New(client, systemClock)
	return root, nil
}

func (c *CompositionRoot) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateRegisterCommandHandler() commands.RegisterCommandHandler {
	return commands.NewRegisterCommandHandler(c.factories.Identity(), c.hasher, c.tokens, c.clock)
}

func (c *CompositionRoot) CreateLoginCommandHandler() commands.LoginCommandHandler {
	return commands.NewLoginCommandHandler(c.factories.Identity(), c.hasher, c.tokens)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.tokens, c.denylist)
}

func (c *CompositionRoot) CreateCreateOfferCommandHandler() commands.CreateOfferCommandHandler {
	return commands.NewCreateOfferCommandHandler(c.factories.Offer(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateDeleteOfferCommandHandler() commands.DeleteOfferCommandHandler {
	return commands.NewDeleteOfferCommandHandler(c.factories.Offer(), c.policy)
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.factories.Request(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateTransitionRequestCommandHandler() commands.TransitionRequestCommandHandler {
	return commands.NewTransitionRequestCommandHandler(c.factories.All(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateSetIdentityActiveCommandHandler() commands.SetIdentityActiveCommandHandler {
	return commands.NewSetIdentityActiveCommandHandler(c.factories.Identity(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateVerifyIdentityCommandHandler() commands.VerifyIdentityCommandHandler {
	return commands.NewVerifyIdentityCommandHandler(c.factories.Identity(), c.policy, c.clock)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.factories.Outbox(), c.publisher, c.clock)
}

func (c *CompositionRoot) CreateAuthenticateQueryHandler() queries.AuthenticateQueryHandler {
	return queries.NewAuthenticateQueryHandler(c.tokens, c.denylist, c.uow)
}

func (c *CompositionRoot) CreateGetMeQueryHandler() queries.GetMeQueryHandler {
	return queries.NewGetMeQueryHandler(c.uow)
}

func (c *CompositionRoot) CreateGetRequestQueryHandler() queries.GetRequestQueryHandler {
	return queries.NewGetRequestQueryHandler(c.uow, c.policy)
}

func (c *CompositionRoot) CreateListOffersQueryHandler() queries.ListOffersQueryHandler {
	return queries.NewListOffersQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateListIdentitiesQueryHandler() queries.ListIdentitiesQueryHandler {
	return queries.NewListIdentitiesQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.gormDB, c.policy)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		Register:          c.CreateRegisterCommandHandler(),
		Login:             c.CreateLoginCommandHandler(),
		Logout:            c.CreateLogoutCommandHandler(),
		CreateOffer:       c.CreateCreateOfferCommandHandler(),
		DeleteOffer:       c.CreateDeleteOfferCommandHandler(),
		CreateRequest:     c.CreateCreateRequestCommandHandler(),
		TransitionRequest: c.CreateTransitionRequestCommandHandler(),
		SetIdentityActive: c.CreateSetIdentityActiveCommandHandler(),
		VerifyIdentity:    c.CreateVerifyIdentityCommandHandler(),
		Authenticate:      c.CreateAuthenticateQueryHandler(),
		GetMe:             c.CreateGetMeQueryHandler(),
		GetRequest:        c.CreateGetRequestQueryHandler(),
		ListOffers:        c.CreateListOffersQueryHandler(),
		ListIdentities:    c.CreateListIdentitiesQueryHandler(),
		GetStatistics:     c.CreateGetStatisticsQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(),
		c.config.OutboxRelaySchedule,
		c.config.OutboxBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}
