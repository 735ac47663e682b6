package main

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/catalog"
	"github.com/fjod/go_cart/storefront/internal/config"
	"github.com/fjod/go_cart/storefront/internal/storage"
	"github.com/fjod/go_cart/storefront/internal/store"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// session is one mounted store plus the connections it holds open.
type session struct {
	store   *store.Store
	closers []func() error
}

func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i]()
	}
}

func openSession(ctx context.Context, cfg *config.Config, log *logrus.Entry) (*session, error) {
	sess := &session{}

	dir, err := newDirectory(cfg, sess)
	if err != nil {
		sess.Close()
		return nil, err
	}

	medium := newMedium(ctx, cfg, log, sess)
	adapter := storage.NewAdapter(medium, cfg.StoragePrefix, log)

	sess.store = store.New(adapter, dir, store.WithLogger(log))
	if err := sess.store.Mount(ctx); err != nil {
		sess.Close()
		return nil, err
	}
	return sess, nil
}

func newDirectory(cfg *config.Config, sess *session) (catalog.Directory, error) {
	switch {
	case cfg.CatalogDB != "":
		repo, err := catalog.NewSQLDirectory(cfg.CatalogDB)
		if err != nil {
			return nil, err
		}
		sess.closers = append(sess.closers, repo.Close)
		if err := repo.RunMigrations(); err != nil {
			return nil, errors.Wrap(err, "prepare catalog database")
		}
		return repo, nil
	case cfg.CatalogFile != "":
		return catalog.LoadFile(cfg.CatalogFile)
	default:
		return catalog.Demo(), nil
	}
}

// newMedium never fails: an unreachable backend only means the session will
// not be persisted, so it falls back to memory and logs why.
func newMedium(ctx context.Context, cfg *config.Config, log *logrus.Entry, sess *session) storage.Medium {
	log = log.WithField("backend", cfg.StorageBackend)

	switch cfg.StorageBackend {
	case config.BackendFile:
		return storage.NewFileMedium(cfg.StoragePath)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		sess.closers = append(sess.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, session will not be persisted")
		}
		return storage.NewRedisMedium(client)
	case config.BackendMongo:
		db, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.WithError(err).Warn("mongo unreachable, session will not be persisted")
			return storage.NewMemoryMedium()
		}
		sess.closers = append(sess.closers, func() error {
			return db.Client().Disconnect(context.Background())
		})
		return storage.NewMongoMedium(db)
	default:
		return storage.NewMemoryMedium()
	}
}
