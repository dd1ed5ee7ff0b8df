package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/racedayhq/raceday/pkg/backend"
	"github.com/racedayhq/raceday/pkg/config"
	"github.com/racedayhq/raceday/pkg/httpserver"
	"github.com/racedayhq/raceday/pkg/logger"
	"github.com/racedayhq/raceday/pkg/session"
	"github.com/racedayhq/raceday/pkg/webapp"
)

type appConfig struct {
	HTTP    httpserver.Config
	Log     logger.Config
	Session session.Config

	// SessionsURL points at the remote session service. When RedisURL is
	// set the session store is served from redis instead.
	SessionsURL         string        `env:"SESSIONS_URL" envDefault:"http://localhost:5051"`
	RedisURL            string        `env:"REDIS_URL"`
	SessionStoreTimeout time.Duration `env:"SESSION_STORE_TIMEOUT" envDefault:"5s"`

	UsersURL       string        `env:"USERS_URL" envDefault:"http://localhost:5052"`
	RacesURL       string        `env:"RACES_URL" envDefault:"http://localhost:5053"`
	EntrylistURL   string        `env:"ENTRYLIST_URL" envDefault:"http://localhost:5054"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"5s"`

	PasswordPepper string `env:"PASSWORD_PEPPER" envDefault:"raceday-dev-pepper"`
}

func main() {
	_ = config.LoadEnv() // optional .env for local development

	var cfg appConfig
	config.MustLoad(&cfg)

	log, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		slog.Error("configure logger", logger.Error(err))
		os.Exit(1)
	}
	slog.SetDefault(log)

	var store session.Store
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("parse redis url", logger.Error(err))
			os.Exit(1)
		}
		store = session.NewRedisStore(redis.NewClient(opt), cfg.Session.TTL)
	} else {
		store = session.NewHTTPStore(cfg.SessionsURL, session.WithStoreTimeout(cfg.SessionStoreTimeout))
	}

	sessions := session.New(
		session.WithStore(store),
		session.WithConfig(cfg.Session),
		session.WithLogger(log),
	)

	timeout := backend.WithTimeout(cfg.BackendTimeout)
	frontend, err := webapp.New(webapp.Options{
		Logger:   log,
		Sessions: sessions,
		Users:    backend.NewUsers(backend.NewClient(cfg.UsersURL, timeout)),
		Races:    backend.NewRaces(backend.NewClient(cfg.RacesURL, timeout)),
		Entries:  backend.NewEntries(backend.NewClient(cfg.EntrylistURL, timeout)),
		Hasher:   webapp.NewHasher(cfg.PasswordPepper),
	})
	if err != nil {
		log.Error("build frontend", logger.Error(err))
		os.Exit(1)
	}

	srv := httpserver.New(cfg.HTTP, log)
	if err := srv.Run(context.Background(), frontend.Router()); err != nil {
		log.Error("http server", logger.Error(err))
		os.Exit(1)
	}
}
