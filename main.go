package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-tracker/api"
	"github.com/carson-networks/budget-tracker/internal/config"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/operator"
	"github.com/carson-networks/budget-tracker/internal/service"
	"github.com/carson-networks/budget-tracker/internal/storage"
	"github.com/carson-networks/budget-tracker/internal/storage/memory"
	"github.com/carson-networks/budget-tracker/internal/suggest"
)

const connectTimeout = 30 * time.Second

func main() {
	app := &cli.App{
		Name:  "budget-tracker",
		Usage: "personal budget tracking server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				EnvVars: []string{"BUDGET_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API (default)",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending Postgres migrations and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("budget-tracker")
	}
}

func setup(c *cli.Context) (*logrus.Logger, *config.Config, error) {
	logger := logging.SetupLogging()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, fmt.Errorf("config.Load: %w", err)
	}

	if err := logging.SetLevel(logger, cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	return logger, cfg, nil
}

func serve(c *cli.Context) error {
	logger, cfg, err := setup(c)
	if err != nil {
		return err
	}
	logger.WithField("storageBackend", cfg.StorageBackend).Info("budget-tracker starting")

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	delegator := operator.NewOperatorDelegator(store, cfg.OperatorWorkers, logger)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(store, delegator, newSuggester(cfg, store, logger))

	httpRest := api.Rest{
		Logger:         logger,
		Port:           cfg.HTTPPort,
		AllowedOrigins: cfg.Origins(),
		Service:        svc,
		Operator:       delegator,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpRest.Serve(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.WithField("cause", context.Cause(gctx)).Info("budget-tracker stopping")
		return nil
	})

	return g.Wait()
}

func migrate(c *cli.Context) error {
	logger, cfg, err := setup(c)
	if err != nil {
		return err
	}

	db, err := connect(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := storage.RunMigrations(db)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("Migration status")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*storage.Storage, func(), error) {
	if cfg.StorageBackend == config.StorageBackendMemory {
		return memory.NewStorage(), func() {}, nil
	}

	db, err := connect(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Warn("db.Close")
		}
	}
	return storage.NewStorage(db), closeDB, nil
}

// connect opens the database and waits for it to accept connections, which
// covers Postgres still starting under docker compose.
func connect(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*sql.DB, error) {
	db, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = connectTimeout

	ping := func() error {
		return db.PingContext(ctx)
	}
	notify := func(err error, wait time.Duration) {
		logger.WithError(err).WithField("retryIn", wait.String()).Warn("db.Ping")
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}

func newSuggester(cfg *config.Config, store *storage.Storage, logger *logrus.Logger) suggest.Suggester {
	if cfg.OpenAIAPIKey == "" {
		logger.Info("no OpenAI API key configured, category suggestions fall back to \"other\"")
		return suggest.Fallback{}
	}

	return suggest.NewOpenAISuggester(suggest.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	}, store.Read().Categories, logger)
}
