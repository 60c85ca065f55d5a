package app

import (
	"context"
	"strings"

	"github.com/humanbelnik/movieparty/internal/config"
	http_catalog "github.com/humanbelnik/movieparty/internal/delivery/http/catalog"
	http_init "github.com/humanbelnik/movieparty/internal/delivery/http/init"
	http_identity_middleware "github.com/humanbelnik/movieparty/internal/delivery/http/middleware/identity"
	http_party "github.com/humanbelnik/movieparty/internal/delivery/http/party"
	http_session "github.com/humanbelnik/movieparty/internal/delivery/http/session"
	ws_party "github.com/humanbelnik/movieparty/internal/delivery/ws/party"
	infra_memory_broker "github.com/humanbelnik/movieparty/internal/infra/memory/broker"
	infra_memory_party "github.com/humanbelnik/movieparty/internal/infra/memory/party"
	infra_pg_init "github.com/humanbelnik/movieparty/internal/infra/postgres/init"
	infra_postgres_party "github.com/humanbelnik/movieparty/internal/infra/postgres/party"
	infra_redis_broker "github.com/humanbelnik/movieparty/internal/infra/redis/broker"
	infra_redis_init "github.com/humanbelnik/movieparty/internal/infra/redis/init"
	infra_tmdb "github.com/humanbelnik/movieparty/internal/infra/tmdb"
	"github.com/humanbelnik/movieparty/internal/logger"
	"github.com/humanbelnik/movieparty/internal/model"
	"github.com/humanbelnik/movieparty/internal/service/identity"
	storage_party "github.com/humanbelnik/movieparty/internal/storage/party"
	usecase_party "github.com/humanbelnik/movieparty/internal/usecase/party"
	usecase_session "github.com/humanbelnik/movieparty/internal/usecase/session"
)

func repository(cfg *config.Config) storage_party.DocumentRepository {
	if cfg.Storage.Backend == config.StoragePostgres {
		return infra_postgres_party.New(infra_pg_init.MustEstablishConn(cfg.Postgres))
	}
	return infra_memory_party.New()
}

func broker(cfg *config.Config) storage_party.Broker {
	if cfg.Broker.Backend == config.BrokerRedis {
		return infra_redis_broker.New(
			infra_redis_init.MustEstablishConn(cfg.Redis),
			infra_redis_broker.WithLogger(logger.Component("redis_broker")),
		)
	}
	return infra_memory_broker.New()
}

// Go serves the party application until ctx is done.
func Go(ctx context.Context, cfg *config.Config) {
	store := storage_party.New(repository(cfg), broker(cfg),
		storage_party.WithLogger(logger.Component("storage")))
	catalog := infra_tmdb.New(cfg.TMDB,
		infra_tmdb.WithLogger(logger.Component("tmdb")))

	hub := ws_party.NewHub(ws_party.WithLogger(logger.Component("ws")))

	registryOpts := []usecase_session.RegistryOption{
		usecase_session.WithRegistryLogger(logger.Component("session")),
		usecase_session.WithIdleTimeout(cfg.Session.IdleTimeout),
		usecase_session.WithListener(hub.SendView),
	}
	if origin := cfg.Party.PublicOrigin; origin != "" {
		registryOpts = append(registryOpts, usecase_session.WithLinkBuilder(func(id model.PartyID) string {
			return usecase_party.ShareLink(origin, id)
		}))
	}
	registry := usecase_session.NewRegistry(store, catalog, registryOpts...)
	go registry.Run(ctx)

	identityMiddleware := http_identity_middleware.New(identity.New(),
		http_identity_middleware.WithLogger(logger.Component("identity")),
		http_identity_middleware.WithSecureCookie(strings.HasPrefix(cfg.Party.PublicOrigin, "https://")),
	)

	partyUC := usecase_party.New(store)

	controllerPool := http_init.NewControllerPool(http_init.WithCORS(cfg.CORS.AllowOrigins))
	controllerPool.Add(http_party.New(partyUC, identityMiddleware,
		http_party.WithPublicOrigin(cfg.Party.PublicOrigin),
		http_party.WithLogger(logger.Component("http_party"))))
	controllerPool.Add(http_session.New(registry, identityMiddleware,
		http_session.WithLogger(logger.Component("http_session"))))
	controllerPool.Add(http_catalog.New(catalog,
		http_catalog.WithLogger(logger.Component("http_catalog"))))
	controllerPool.Add(ws_party.New(registry, hub, identityMiddleware,
		ws_party.WithControllerLogger(logger.Component("ws_party"))))

	controllerPool.Register()
	controllerPool.RunAll(ctx, cfg.HTTP.Host, cfg.HTTP.Port)
}
